package calendar

import (
	"context"

	"bookline/models"
)

// TokenProvider yields a calendar-scoped bearer token for a business owner.
// The identity broker behind it is an external collaborator; only this
// contract is visible here.
type TokenProvider interface {
	Token(ctx context.Context, ownerID string) (string, error)
}

// SyncService mirrors non-cancelled appointments into the business owner's
// external calendar. Every operation is best-effort: errors are reported to
// the caller (the sync worker) but never invalidate the appointment itself.
type SyncService interface {
	CreateEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) (eventID string, err error)
	UpdateEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) error
	DeleteEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) error
}
