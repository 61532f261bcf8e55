package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/services"
	"github.com/UShishir5355t/real-estate-mvp/testhelpers"
)

func TestDashboardStats(t *testing.T) {
	properties := testhelpers.NewPropertyRepository()
	inquiries := testhelpers.NewInquiryRepository()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		status := models.StatusAvailable
		if i%3 == 0 {
			status = models.StatusSold
		}
		properties.Put(models.Property{Title: fmt.Sprintf("listing %d", i), Status: status})
	}
	for i := 0; i < 3; i++ {
		in := models.Inquiry{PropertyID: "p", Status: models.InquiryPending}
		if i == 0 {
			in.Status = models.InquiryClosed
		}
		require.NoError(t, inquiries.Create(ctx, &in))
	}

	stats, err := services.NewDashboardService(properties, inquiries).Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalProperties)
	assert.Equal(t, 4, stats.AvailableProperties)
	assert.Equal(t, 3, stats.TotalInquiries)
	assert.Equal(t, 2, stats.PendingInquiries)
	require.Len(t, stats.RecentProperties, 5)
	assert.Equal(t, "listing 6", stats.RecentProperties[0].Title)
	assert.Len(t, stats.RecentInquiries, 3)
}

func TestDashboardStats_PropagatesStoreErrors(t *testing.T) {
	inquiries := testhelpers.NewInquiryRepository()
	inquiries.Errors["List"] = errors.New("connection reset")

	_, err := services.NewDashboardService(testhelpers.NewPropertyRepository(), inquiries).Stats(context.Background())
	assert.EqualError(t, err, "connection reset")
}
