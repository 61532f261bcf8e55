package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/UShishir5355t/real-estate-mvp/handlers"
	"github.com/UShishir5355t/real-estate-mvp/middleware"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

type Controllers struct {
	Properties *handlers.PropertyController
	Listings   *handlers.ListingController
	Inquiries  *handlers.InquiryController
	Auth       *handlers.AuthController
	Dashboard  *handlers.DashboardController
}

type Options struct {
	Tokens             *utils.JWTManager
	LoginRatePerMinute int
	// UploadsDir, when set, is served under /uploads for the local blob store.
	UploadsDir string
}

func RegisterRoutes(e *echo.Echo, ctl Controllers, opts Options) {
	e.GET("/health", handlers.HealthCheck)
	if opts.UploadsDir != "" {
		e.Static("/uploads", opts.UploadsDir)
	}

	api := e.Group("/api/v1")

	// An unset Burst falls back to int(rate), which is zero below 60/min.
	perMinute := max(opts.LoginRatePerMinute, 1)
	loginLimiter := echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: time.Minute,
		}),
		DenyHandler: handlers.TooManyLogins,
	})
	api.POST("/auth/login", ctl.Auth.Login, loginLimiter)

	api.GET("/listings", ctl.Listings.ListListings)
	api.GET("/listings/nearby", ctl.Listings.Nearby)
	api.GET("/listings/:id", ctl.Listings.GetListing)
	api.POST("/inquiries", ctl.Inquiries.CreateInquiry)

	admin := api.Group("/admin", middleware.JWTMiddleware(opts.Tokens), middleware.AdminMiddleware())
	admin.GET("/me", ctl.Auth.Me)
	admin.GET("/dashboard", ctl.Dashboard.Stats)

	admin.GET("/properties", ctl.Properties.ListProperties)
	admin.POST("/properties", ctl.Properties.CreateProperty)
	admin.GET("/properties/:id", ctl.Properties.GetProperty)
	admin.PATCH("/properties/:id", ctl.Properties.UpdateProperty)
	admin.DELETE("/properties/:id", ctl.Properties.DeleteProperty)
	admin.DELETE("/properties/:id/images", ctl.Properties.DeleteImage)

	admin.GET("/inquiries", ctl.Inquiries.ListInquiries)
	admin.PATCH("/inquiries/:id/status", ctl.Inquiries.UpdateInquiryStatus)
	admin.DELETE("/inquiries/:id", ctl.Inquiries.DeleteInquiry)
}
