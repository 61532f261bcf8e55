package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/services"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

type InquiryController struct {
	service services.InquiryService
}

func NewInquiryController(service services.InquiryService) *InquiryController {
	return &InquiryController{service: service}
}

func (ic *InquiryController) CreateInquiry(c echo.Context) error {
	var input models.InquiryInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	inquiry, err := ic.service.CreateInquiry(c.Request().Context(), input)
	if err != nil {
		return failure(c, err, "submit inquiry")
	}
	return c.JSON(http.StatusCreated, inquiry)
}

func (ic *InquiryController) ListInquiries(c echo.Context) error {
	inquiries, err := ic.service.ListInquiries(c.Request().Context())
	if err != nil {
		return failure(c, err, "load inquiries")
	}
	return c.JSON(http.StatusOK, inquiries)
}

type inquiryStatusRequest struct {
	Status models.InquiryStatus `json:"status" validate:"required"`
}

func (ic *InquiryController) UpdateInquiryStatus(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Inquiry not found"})
	}
	var req inquiryStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Status is required"})
	}
	if err := ic.service.UpdateInquiryStatus(c.Request().Context(), id, req.Status); err != nil {
		return failure(c, err, "update inquiry")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Inquiry updated successfully"})
}

func (ic *InquiryController) DeleteInquiry(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Inquiry not found"})
	}
	if err := ic.service.DeleteInquiry(c.Request().Context(), id); err != nil {
		return failure(c, err, "delete inquiry")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Inquiry deleted successfully"})
}
