package scheduling

import (
	"context"
	"fmt"

	"bookline/models"
)

// BuildSlots marks each template range booked iff some appointment's start
// clock falls in [Start, End). Pure and deterministic; order follows the
// template.
func BuildSlots(ranges []models.TimeRange, appts []models.Appointment) []models.Slot {
	slots := make([]models.Slot, 0, len(ranges))
	for _, r := range ranges {
		slot := models.Slot{Start: r.Start, End: r.End}
		lo, hi := minutesOfDay(r.Start), minutesOfDay(r.End)
		for _, a := range appts {
			t := minutesOfDay(a.Time())
			if t >= lo && t < hi {
				slot.IsBooked = true
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// ResolveSlots produces the bookable slots of a business for one date.
func (s *DefaultSchedulingService) ResolveSlots(ctx context.Context, businessID, date string) ([]models.Slot, models.Weekday, error) {
	biz, err := s.BusinessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load business: %w", err)
	}
	if biz == nil {
		return nil, "", NewValidationError(fmt.Sprintf("business %s not found", businessID))
	}

	day, err := models.WeekdayOfDate(date)
	if err != nil {
		return nil, "", NewValidationError(err.Error())
	}

	ranges := biz.RangesFor(day)
	if len(ranges) == 0 {
		return []models.Slot{}, day, nil
	}

	appts, err := s.ApptRepo.FindActiveByDate(ctx, businessID, date)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load appointments: %w", err)
	}

	return BuildSlots(ranges, appts), day, nil
}

// GetServices returns the service catalog of a business.
func (s *DefaultSchedulingService) GetServices(ctx context.Context, businessID string) ([]models.Service, error) {
	biz, err := s.BusinessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if biz == nil {
		return nil, NewValidationError(fmt.Sprintf("business %s not found", businessID))
	}
	return biz.Services, nil
}

// ListAppointments returns a business's appointments, optionally for one date.
func (s *DefaultSchedulingService) ListAppointments(ctx context.Context, businessID, date string) ([]models.Appointment, error) {
	return s.ApptRepo.FindByBusiness(ctx, businessID, date)
}
