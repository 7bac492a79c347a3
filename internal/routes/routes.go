package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dental-clinic-server/internal/captcha"
	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/handlers"
	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	appointmentStore := store.NewAppointmentStore(db)
	verifier := captcha.NewGoogle(cfg.Recaptcha)

	appointmentHandler := handlers.NewAppointmentHandler(appointmentStore, verifier, cfg)
	adminHandler := handlers.NewAdminHandler(appointmentStore, cfg)

	// Every request passes through sanitization before any handler sees it.
	router.Use(middleware.Sanitize())

	// Public intake path. The rate limiter guards only this route; moderation
	// endpoints are never throttled.
	intake := router.Group("/api")
	if cfg.RateLimitMax > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		intake.Use(limiter.Middleware())
	}
	intake.POST("/appointments", appointmentHandler.SubmitAppointment)

	// Admin token issuance (signed-token variant only).
	if cfg.AdminAuthMode == config.AdminAuthSignedToken {
		authHandler := handlers.NewAuthHandler(db, cfg)
		router.POST("/api/admin/login", authHandler.Login)
	}

	// Moderation endpoints, bearer-protected.
	admin := router.Group("/api/appointments")
	admin.Use(middleware.AdminAuth(cfg))
	{
		admin.GET("", adminHandler.ListAppointments)
		admin.GET("/:timeframe", adminHandler.ListAppointmentsByTimeframe)
		// Gin's router cannot mix the static "custom" segment with the
		// :timeframe wildcard at the same position, so the custom-range
		// route shares the wildcard and dispatches on its value.
		admin.GET("/:timeframe/:start/:end", adminHandler.ListAppointmentsByCustomRange)
		admin.PUT("/:id/confirm", adminHandler.ConfirmAppointment)
		admin.DELETE("/:id", adminHandler.DeleteAppointment)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
