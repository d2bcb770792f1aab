package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/audit"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/config"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/handlers"
	infraRepo "github.com/EspacoMenteLeve/psy-scheduler/internal/infra/repository"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/middleware"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
	ucBooking "github.com/EspacoMenteLeve/psy-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================

	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	availCache := cache.NewAvailability(rdb, log)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(
			cfg.TelegramToken,
			cfg.TelegramAdminChatID,
			log,
		)
		if err != nil {
			// canal de aviso é melhor-esforço; sem bot, seguimos sem ele
			log.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, availCache)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		availabilityUC,
		auditDispatcher,
		notifier,
		availCache,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		availCache,
	)

	markPaidUC := ucBooking.NewMarkPaid(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================

	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createBookingUC)
	portalHandler := handlers.NewPortalHandler(db, listBookingsUC, cancelBookingUC)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelBookingUC,
		markPaidUC,
		completeBookingUC,
		listBookingsUC,
	)

	practiceHandler := handlers.NewPracticeHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db, availCache)
	blockedSlotHandler := handlers.NewBlockedSlotHandler(db, availCache)
	serviceHandler := handlers.NewServiceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================

	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (autoatendimento)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// PORTAL DO CLIENTE (por telefone)
		// ------------------------------
		portal := api.Group("/portal")
		{
			portal.POST("/bookings", portalHandler.MyBookings)
			portal.PATCH("/bookings/:id/cancel", portalHandler.CancelBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// CONSOLE DO ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/practice", practiceHandler.Get)
			admin.PATCH("/practice", practiceHandler.Update)

			admin.GET("/business-hours", businessHoursHandler.Get)
			admin.PUT("/business-hours", businessHoursHandler.Update)

			admin.GET("/blocks", blockedSlotHandler.List)
			admin.POST("/blocks", blockedSlotHandler.Create)
			admin.DELETE("/blocks/:id", blockedSlotHandler.Delete)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			admin.POST("/bookings", bookingHandler.Create)
			admin.GET("/bookings", bookingHandler.ListByDate)
			admin.GET("/bookings/month", bookingHandler.ListByMonth)
			admin.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			admin.PATCH("/bookings/:id/pay", bookingHandler.MarkPaid)
			admin.PATCH("/bookings/:id/complete", bookingHandler.Complete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
