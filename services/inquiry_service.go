package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

type InquiryService interface {
	// CreateInquiry stores a contact request from the mobile app. The
	// property id is kept as given; it is not checked against the listings.
	CreateInquiry(ctx context.Context, input models.InquiryInput) (*models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
	// UpdateInquiryStatus accepts any of the three statuses from any other.
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error
	DeleteInquiry(ctx context.Context, id string) error
}

type inquiryService struct {
	inquiries repositories.InquiryRepository
}

func NewInquiryService(inquiries repositories.InquiryRepository) InquiryService {
	return &inquiryService{inquiries: inquiries}
}

func (s *inquiryService) CreateInquiry(ctx context.Context, input models.InquiryInput) (*models.Inquiry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	inquiry := input.ToInquiry()
	if err := s.inquiries.Create(ctx, &inquiry); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"inquiry_id":  inquiry.ID,
		"property_id": inquiry.PropertyID,
	}).Info("inquiry received")
	return &inquiry, nil
}

func (s *inquiryService) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *inquiryService) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	if !models.ValidInquiryStatus(status) {
		return fmt.Errorf("%w: status %q", models.ErrInvalidUpdate, status)
	}
	return s.inquiries.UpdateStatus(ctx, id, status)
}

func (s *inquiryService) DeleteInquiry(ctx context.Context, id string) error {
	return s.inquiries.Delete(ctx, id)
}
