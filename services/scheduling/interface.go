package scheduling

import (
	"context"

	"bookline/models"
)

// CreateAppointmentInput carries a booking request into the guard.
type CreateAppointmentInput struct {
	BusinessID  string
	Customer    models.Customer
	StartTime   string // "2006-01-02T15:04", naive local
	ServiceName string
	Notes       string
}

// SchedulingService resolves bookable slots and owns the appointment
// lifecycle.
type SchedulingService interface {
	// ResolveSlots maps a calendar date onto the weekly template and flags
	// each range booked iff a non-cancelled appointment starts inside it.
	ResolveSlots(ctx context.Context, businessID, date string) ([]models.Slot, models.Weekday, error)
	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error)
	ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetServices(ctx context.Context, businessID string) ([]models.Service, error)
	ListAppointments(ctx context.Context, businessID, date string) ([]models.Appointment, error)
}

// SyncNotifier schedules best-effort calendar synchronization for an
// appointment state change. Scheduling failures are logged by the caller and
// never fail the appointment operation.
type SyncNotifier interface {
	ScheduleCreate(ctx context.Context, appointmentID string) error
	ScheduleUpdate(ctx context.Context, appointmentID string) error
	ScheduleDelete(ctx context.Context, appointmentID string) error
}
