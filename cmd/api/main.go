package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reyescuts/booking-api/internal/config"
	dbpkg "github.com/reyescuts/booking-api/internal/db"
	"github.com/reyescuts/booking-api/internal/handlers"
	infraRepo "github.com/reyescuts/booking-api/internal/infra/repository"
	"github.com/reyescuts/booking-api/internal/logging"
	"github.com/reyescuts/booking-api/internal/middleware"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/reminder"
	"github.com/reyescuts/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg, logger)
	handlers.SeedAdmin(db, cfg, logger)

	repo := infraRepo.NewBookingGormRepository(db)
	brevo := notify.NewBrevoClient(cfg.BrevoBaseURL, cfg.BrevoAPIKey, logger)
	sender := notify.NewService(brevo, cfg.ShopName, cfg.ShopEmail, cfg.SMSSender, logger)

	scheduler := reminder.NewScheduler(repo, sender, cfg.ShopTimezone, logger)
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger, repo, sender)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
