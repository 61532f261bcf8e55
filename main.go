package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/UShishir5355t/real-estate-mvp/auth"
	"github.com/UShishir5355t/real-estate-mvp/cache"
	"github.com/UShishir5355t/real-estate-mvp/config"
	"github.com/UShishir5355t/real-estate-mvp/events"
	"github.com/UShishir5355t/real-estate-mvp/handlers"
	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
	"github.com/UShishir5355t/real-estate-mvp/routes"
	"github.com/UShishir5355t/real-estate-mvp/services"
	"github.com/UShishir5355t/real-estate-mvp/storage"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.AppName, cfg.LogLevel)

	if err := run(cfg); err != nil {
		utils.Logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDatabase); err != nil {
		return err
	}
	defer config.DisconnectDB(context.Background())

	propertyRepo := repositories.NewPropertyRepository(config.GetCollection(cfg.PropertiesCollection))
	inquiryRepo := repositories.NewInquiryRepository(config.GetCollection(cfg.InquiriesCollection))
	userRepo := repositories.NewUserRepository(config.GetCollection(cfg.UsersCollection))

	tokens, err := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	blobs, uploadsDir, closeBlobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBlobs()

	listingCache := newListingCache(ctx, cfg)
	defer listingCache.Close()

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			utils.Logger.WithError(err).Warn("RabbitMQ unavailable, property events disabled")
		} else {
			publisher = rabbit
			defer rabbit.Close()
		}
	}

	provider, err := newIdentityProvider(ctx, cfg, userRepo, tokens)
	if err != nil {
		return err
	}

	propertyService := services.NewPropertyService(propertyRepo, blobs, listingCache, publisher)
	inquiryService := services.NewInquiryService(inquiryRepo)
	dashboardService := services.NewDashboardService(propertyRepo, inquiryRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := utils.Logger.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
			} else {
				entry.Info("request")
			}
			return nil
		},
	}))

	routes.RegisterRoutes(e, routes.Controllers{
		Properties: handlers.NewPropertyController(propertyService),
		Listings:   handlers.NewListingController(propertyService),
		Inquiries:  handlers.NewInquiryController(inquiryService),
		Auth:       handlers.NewAuthController(provider, tokens),
		Dashboard:  handlers.NewDashboardController(dashboardService),
	}, routes.Options{
		Tokens:             tokens,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		UploadsDir:         uploadsDir,
	})

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, string, func(), error) {
	if cfg.StorageDriver == "gcs" {
		if config.IsPlaceholder(cfg.Firebase.StorageBucket) {
			return nil, "", nil, errors.New("STORAGE_DRIVER=gcs needs FIREBASE_STORAGE_BUCKET")
		}
		gcs, err := storage.NewGCSBlobStore(ctx, cfg.Firebase.StorageBucket)
		if err != nil {
			return nil, "", nil, err
		}
		return gcs, "", func() { gcs.Close() }, nil
	}

	local, err := storage.NewLocalBlobStore(cfg.LocalStorageDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		return nil, "", nil, err
	}
	utils.Logger.WithField("dir", cfg.LocalStorageDir).Info("storing images on local disk")
	return local, cfg.LocalStorageDir, func() {}, nil
}

func newListingCache(ctx context.Context, cfg *config.Config) *cache.TieredCache {
	opts := cache.Options{TTL: cfg.CacheTTL, LocalTTL: cfg.CacheTTL / 5}
	if cfg.RedisAddr == "" {
		return cache.NewTieredCache(nil, opts)
	}
	rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(ctx).Err(); err != nil {
		utils.Logger.WithError(err).Warn("Redis unavailable, using in-process listing cache only")
		rdb.Close()
		return cache.NewTieredCache(nil, opts)
	}
	return cache.NewTieredCache(rdb, opts)
}

// newIdentityProvider uses Firebase accounts when the project is configured
// and the users collection otherwise.
func newIdentityProvider(ctx context.Context, cfg *config.Config, users repositories.UserRepository, tokens *utils.JWTManager) (auth.IdentityProvider, error) {
	if cfg.Firebase.Configured() {
		utils.Logger.WithField("project", cfg.Firebase.ProjectID).Info("signing in through Firebase")
		return auth.NewIdentityToolkitProvider(ctx, cfg.Firebase.APIKey)
	}

	utils.Logger.Warn("Firebase not configured, signing in against the users collection")
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(ctx, users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
	}
	return auth.NewLocalProvider(users, tokens), nil
}

func seedAdmin(ctx context.Context, users repositories.UserRepository, email, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	err = users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, repositories.ErrUserExists) {
		return nil
	}
	if err == nil {
		utils.Logger.WithField("email", email).Info("admin account created")
	}
	return err
}
