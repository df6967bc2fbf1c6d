package routes

import (
	"net/http"
	"time"

	"bookline/handlers"
	"bookline/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBusinessRoutes registers the public and owner business endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		api.GET("/:id", hb.GetBusinessHandler)
		api.GET("/:id/slots", hb.GetSlotsHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.OwnerAuthMiddleware())
		protected.PUT("/:id/availability", hb.UpdateAvailabilityHandler)
		protected.PUT("/:id/services", hb.UpdateServicesHandler)
		protected.PUT("/:id/calendar", hb.UpdateCalendarSettingsHandler)
		protected.PUT("/:id/telegram", hb.UpdateTelegramBindingHandler)
		protected.GET("/:id/appointments", hb.ListAppointmentsHandler)
	}
}

// RegisterAppointmentRoutes registers the owner's lifecycle actions.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.OwnerAuthMiddleware())
		api.POST("/:id/confirm", hb.ConfirmAppointmentHandler)
		api.POST("/:id/cancel", hb.CancelAppointmentHandler)
	}
}

// RegisterChatRoutes registers the conversational endpoints. The webhook is
// deliberately unauthenticated; the bot id path segment routes it.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/chat/:businessID", hb.ChatHandler)
	r.POST("/api/telegram/webhook/:botID", hb.TelegramWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Bookline"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBusinessRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r)
}
