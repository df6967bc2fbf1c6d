package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "bookline/database/repository/appointment"
	businessRepo "bookline/database/repository/business"
	"bookline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookline/models"
)

// DefaultSchedulingService is the production implementation of
// SchedulingService.
type DefaultSchedulingService struct {
	BusinessRepo businessRepo.BusinessRepository
	ApptRepo     appointmentRepo.AppointmentRepository
	Sync         SyncNotifier
}

// CreateAppointment validates a booking request against the weekly template
// and commits it as pending. The final uniqueness check is transactional in
// the repository insert; the pre-checks exist to produce precise rejections.
func (s *DefaultSchedulingService) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	biz, err := s.BusinessRepo.GetByID(ctx, in.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if biz == nil {
		return nil, NewValidationError(fmt.Sprintf("business %s not found", in.BusinessID))
	}

	date, clock, err := SplitStartTime(in.StartTime)
	if err != nil {
		return nil, err
	}

	day, err := models.WeekdayOfDate(date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	ranges := biz.RangesFor(day)
	if len(ranges) == 0 {
		return nil, NewValidationError(fmt.Sprintf("no availability on %s", day))
	}

	t := minutesOfDay(clock)
	inRange := false
	for _, r := range ranges {
		if t >= minutesOfDay(r.Start) && t < minutesOfDay(r.End) {
			inRange = true
			break
		}
	}
	if !inRange {
		return nil, NewValidationError(fmt.Sprintf("%s is outside opening hours on %s", clock, day))
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		BusinessID:  in.BusinessID,
		Customer:    in.Customer,
		StartTime:   in.StartTime,
		ServiceName: in.ServiceName,
		Status:      models.StatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ApptRepo.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewConflictError(fmt.Sprintf("slot %s is already booked", in.StartTime))
		}
		return nil, err
	}
	return appt, nil
}

// ConfirmAppointment patches the status to confirmed. Idempotent: confirming
// a confirmed appointment succeeds unchanged. The guard performs no
// cross-check against cancelled here; surfaces driving it are expected to.
// Calendar sync is scheduled after the patch, never as part of it.
func (s *DefaultSchedulingService) ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, NewValidationError(fmt.Sprintf("appointment %s not found", id))
	}

	if appt.Status != models.StatusConfirmed {
		if err := s.ApptRepo.UpdateStatus(ctx, id, models.StatusConfirmed); err != nil {
			return nil, err
		}
		appt.Status = models.StatusConfirmed
	}

	s.scheduleSync(ctx, appt, false)
	return appt, nil
}

// CancelAppointment patches the status to cancelled. Idempotent; the record
// is kept as an audit trail, never deleted.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, NewValidationError(fmt.Sprintf("appointment %s not found", id))
	}

	if appt.Status != models.StatusCancelled {
		if err := s.ApptRepo.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
			return nil, err
		}
		appt.Status = models.StatusCancelled
	}

	s.scheduleSync(ctx, appt, true)
	return appt, nil
}

// scheduleSync enqueues the calendar task matching the transition. Failures
// here are logged and swallowed: sync is a best-effort overlay, never a
// reason to fail a committed appointment change.
func (s *DefaultSchedulingService) scheduleSync(ctx context.Context, appt *models.Appointment, cancelled bool) {
	if s.Sync == nil {
		return
	}
	logger := utils.GetLogger()

	var err error
	switch {
	case cancelled && appt.ExternalCalendarEventID != "":
		err = s.Sync.ScheduleDelete(ctx, appt.ID)
	case cancelled:
		// Nothing mirrored, nothing to remove.
	case appt.ExternalCalendarEventID != "":
		err = s.Sync.ScheduleUpdate(ctx, appt.ID)
	default:
		err = s.Sync.ScheduleCreate(ctx, appt.ID)
	}
	if err != nil {
		logger.Warn("failed to schedule calendar sync",
			zap.String("appointmentID", appt.ID),
			zap.Error(err))
	}
}
