package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
)

const recentLimit = 5

type DashboardStats struct {
	TotalProperties     int               `json:"totalProperties"`
	AvailableProperties int               `json:"availableProperties"`
	TotalInquiries      int               `json:"totalInquiries"`
	PendingInquiries    int               `json:"pendingInquiries"`
	RecentProperties    []models.Property `json:"recentProperties"`
	RecentInquiries     []models.Inquiry  `json:"recentInquiries"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	properties repositories.PropertyRepository
	inquiries  repositories.InquiryRepository
}

func NewDashboardService(properties repositories.PropertyRepository, inquiries repositories.InquiryRepository) DashboardService {
	return &dashboardService{properties: properties, inquiries: inquiries}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		properties []models.Property
		inquiries  []models.Inquiry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.properties.List(gctx, repositories.ListQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		inquiries, err = s.inquiries.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProperties:  len(properties),
		TotalInquiries:   len(inquiries),
		RecentProperties: properties[:min(recentLimit, len(properties))],
		RecentInquiries:  inquiries[:min(recentLimit, len(inquiries))],
	}
	for _, p := range properties {
		if p.Status == models.StatusAvailable {
			stats.AvailableProperties++
		}
	}
	for _, i := range inquiries {
		if i.Status == models.InquiryPending {
			stats.PendingInquiries++
		}
	}
	return stats, nil
}
