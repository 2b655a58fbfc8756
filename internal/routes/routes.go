package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reyescuts/booking-api/internal/config"
	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/handlers"
	"github.com/reyescuts/booking-api/internal/live"
	"github.com/reyescuts/booking-api/internal/middleware"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/ratelimit"
	"github.com/reyescuts/booking-api/internal/storage"
	ucbooking "github.com/reyescuts/booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	repo domain.Repository,
	sender notify.Sender,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	outbox := notify.NewOutbox(logger)
	hub := live.NewHub(logger)
	publisher := live.NewPublisher(repo, hub, logger)
	uploader := storage.NewUploader(cfg)

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter = ratelimit.NewRedisLimiter(rdb, logger)
		logger.Info("rate limiter backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	// ======================================================
	// USE CASES
	// ======================================================
	checkUC := ucbooking.NewCheckAvailability(repo, logger)
	bookedUC := ucbooking.NewBookedTimes(repo)
	createUC := ucbooking.NewCreateAppointment(
		repo,
		checkUC,
		sender,
		outbox,
		publisher,
		cfg.ShopName,
		logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		db, createUC, checkUC, bookedUC, repo, sender, outbox, logger,
	)
	notifyHandler := handlers.NewNotifyHandler(sender, limiter, logger)
	liveHandler := handlers.NewLiveHandler(hub, bookedUC, logger)
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	appointmentHandler := handlers.NewAppointmentHandler(repo, publisher, logger)
	blockedHandler := handlers.NewBlockedTimeHandler(db, repo, publisher, logger)
	barberHandler := handlers.NewBarberHandler(db, uploader, logger)
	messageHandler := handlers.NewMessageHandler(db, sender, logger)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/barbers", publicHandler.ListBarbers)
			public.GET("/availability", publicHandler.Availability)
			public.GET("/booked-times", publicHandler.BookedTimes)
			public.POST("/appointments", publicHandler.CreateAppointment)
			public.POST("/contact", publicHandler.Contact)
			public.GET("/live/slots", liveHandler.Slots)
		}

		// ------------------------------
		// NOTIFICATIONS (rate limited per caller)
		// ------------------------------
		api.POST("/notify/email", notifyHandler.SendEmail)
		api.POST("/notify/sms", notifyHandler.SendSMS)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/blocked-times", blockedHandler.List)
			admin.POST("/blocked-times", blockedHandler.Create)
			admin.DELETE("/blocked-times/:id", blockedHandler.Delete)

			admin.POST("/barbers", barberHandler.Create)
			admin.PATCH("/barbers/:id", barberHandler.Update)
			admin.DELETE("/barbers/:id", barberHandler.Delete)
			admin.POST("/barbers/:id/photo", barberHandler.UploadPhoto)

			admin.GET("/messages", messageHandler.List)
			admin.DELETE("/messages/:id", messageHandler.Delete)
			admin.POST("/messages/:id/reply", messageHandler.Reply)
		}
	}
}
