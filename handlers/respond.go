package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

// CustomValidator plugs validator/v10 into echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// failure answers with the status that matches err. Store failures are
// logged and reported as "Failed to <action>".
func failure(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	case errors.Is(err, repositories.ErrInquiryNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Inquiry not found"})
	case errors.Is(err, models.ErrInvalidUpdate):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	utils.Logger.WithError(err).WithField("path", c.Path()).Error("failed to " + action)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to " + action})
}
