package businessRepo

import (
	"context"

	"bookline/models"
)

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, biz *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Business, error)
	UpdateAvailability(ctx context.Context, id string, days []models.DayAvailability) error
	UpdateServices(ctx context.Context, id string, services []models.Service) error
	UpdateCalendarSettings(ctx context.Context, id string, settings models.CalendarSettings) error
}
