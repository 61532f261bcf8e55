package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/services"
)

type DashboardController struct {
	service services.DashboardService
}

func NewDashboardController(service services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (dc *DashboardController) Stats(c echo.Context) error {
	stats, err := dc.service.Stats(c.Request().Context())
	if err != nil {
		return failure(c, err, "load dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}
