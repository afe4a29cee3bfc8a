package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/safezone/internal/config"
	"github.com/xyz-asif/safezone/internal/features/admin"
	"github.com/xyz-asif/safezone/internal/features/alerts"
	"github.com/xyz-asif/safezone/internal/features/auth"
	"github.com/xyz-asif/safezone/internal/features/reports"
	"github.com/xyz-asif/safezone/internal/features/zones"
	"github.com/xyz-asif/safezone/internal/notify"
	"github.com/xyz-asif/safezone/internal/pkg/cloudinary"
	"github.com/xyz-asif/safezone/internal/pkg/logger"
	"github.com/xyz-asif/safezone/internal/pkg/ratelimit"
)

// SetupRoutes wires repositories, the zone engine and the SOS dispatcher into
// the router. The returned sweeper still has to be started by the caller.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) (*alerts.Sweeper, error) {
	// API v1 group
	api := router.Group("/api/v1")

	limiter := ratelimit.New(cfg.RateLimitPerMinute, time.Minute)
	api.Use(ratelimit.Middleware(limiter))

	log := logger.New(logger.INFO)
	if cfg.AppEnv == "production" {
		log.SetLevel(logger.WARN)
	}

	// Shared repositories
	authRepo := auth.NewRepository(db)
	reportsRepo := reports.NewRepository(db)
	zonesRepo := zones.NewRepository(db)
	alertsRepo := alerts.NewRepository(db)

	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	// The reports repository doubles as the engine's report counter
	engine := zones.NewEngine(reportsRepo, zonesRepo, cfg.ReportThreshold, cfg.ZoneRadiusMeters, log)

	channel, err := buildChannel(cfg)
	if err != nil {
		return nil, err
	}
	dispatcher := alerts.NewDispatcher(alertsRepo, channel, cfg.PoliceContact, cfg.SendTimeout, log)
	sweeper := alerts.NewSweeper(dispatcher, cfg.SweepInterval, log)

	// Evidence photo uploads are optional; without Cloudinary credentials the
	// endpoint reports itself unavailable.
	media, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		log.Warn("cloudinary not configured, photo uploads disabled: %v", err)
		media = nil
	}

	// Register feature routes
	auth.RegisterRoutes(api, authRepo, cfg)
	reports.RegisterRoutes(api, reports.NewHandler(reportsRepo, engine, media), authMiddleware)
	alerts.RegisterRoutes(api, alerts.NewHandler(dispatcher, alertsRepo), authMiddleware)
	admin.RegisterRoutes(api, admin.NewHandler(reportsRepo, zonesRepo), authMiddleware)

	return sweeper, nil
}

func buildChannel(cfg *config.Config) (notify.Channel, error) {
	switch cfg.NotifyChannel {
	case "twilio":
		return notify.NewTwilioChannel(cfg.TwilioSID, cfg.TwilioAuthToken, cfg.TwilioPhone, cfg.SendTimeout), nil
	case "fcm":
		return notify.NewFCMChannel(cfg.FirebaseServiceAccountPath, cfg.SendTimeout)
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.NotifyChannel)
	}
}
