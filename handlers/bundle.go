package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// Public business endpoints.
	GetBusinessHandler gin.HandlerFunc
	GetSlotsHandler    gin.HandlerFunc

	// Owner endpoints.
	UpdateAvailabilityHandler     gin.HandlerFunc
	UpdateServicesHandler         gin.HandlerFunc
	UpdateCalendarSettingsHandler gin.HandlerFunc
	UpdateTelegramBindingHandler  gin.HandlerFunc
	ListAppointmentsHandler       gin.HandlerFunc
	ConfirmAppointmentHandler     gin.HandlerFunc
	CancelAppointmentHandler      gin.HandlerFunc

	// Conversational endpoints.
	ChatHandler            gin.HandlerFunc
	TelegramWebhookHandler gin.HandlerFunc
}
