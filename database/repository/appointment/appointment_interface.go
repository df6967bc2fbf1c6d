package appointmentRepo

import (
	"context"
	"errors"

	"bookline/models"
)

// ErrSlotTaken is returned by Insert when a non-cancelled appointment already
// holds the identical (businessId, startTime) pair. The unique partial index
// makes the check transactional; there is no read-then-write window.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines persistence operations for appointments.
// Appointments are never removed; cancellation is a status patch.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	SetCalendarEventID(ctx context.Context, id string, eventID string) error
	// FindActiveByDate returns non-cancelled appointments of a business whose
	// start time falls on the given "2006-01-02" date.
	FindActiveByDate(ctx context.Context, businessID, date string) ([]models.Appointment, error)
	FindByBusiness(ctx context.Context, businessID string, date string) ([]models.Appointment, error)
}
