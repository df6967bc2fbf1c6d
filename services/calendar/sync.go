package calendar

import (
	"context"
	"fmt"

	"bookline/models"
	"bookline/services/scheduling"
	"bookline/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultDurationMinutes = 60

// DefaultSyncService talks to the Google Calendar API with per-owner tokens.
type DefaultSyncService struct {
	Tokens TokenProvider
	// Endpoint overrides the calendar API base URL; tests point it at a
	// local server.
	Endpoint string
}

// client builds a calendar API client authorized for the given owner.
func (s *DefaultSyncService) client(ctx context.Context, ownerID string) (*gcal.Service, error) {
	token, err := s.Tokens.Token(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, newExternalError("client", "failed to build calendar client", err)
	}
	return svc, nil
}

// calendarID returns the linked calendar, defaulting to "primary".
func calendarID(biz *models.Business) string {
	if biz.Calendar.CalendarID != "" {
		return biz.Calendar.CalendarID
	}
	return "primary"
}

// resolveTimeZone asks the calendar for its reported timezone. The calendar
// service performs the civil-time interpretation itself, so UTC is a safe
// default when the lookup fails.
func (s *DefaultSyncService) resolveTimeZone(svc *gcal.Service, biz *models.Business) string {
	cal, err := svc.Calendars.Get(calendarID(biz)).Do()
	if err != nil || cal.TimeZone == "" {
		utils.GetLogger().Warn("failed to resolve calendar timezone, defaulting to UTC",
			zap.String("businessID", biz.ID), zap.Error(err))
		return "UTC"
	}
	return cal.TimeZone
}

// eventTimes builds the start/end civil datetimes of an appointment. The end
// is computed with pure component arithmetic on the naive start; only the
// explicit TimeZone field tells the calendar how to interpret them.
func eventTimes(biz *models.Business, appt *models.Appointment, tz string) (*gcal.EventDateTime, *gcal.EventDateTime, error) {
	date, clock, err := scheduling.SplitStartTime(appt.StartTime)
	if err != nil {
		return nil, nil, err
	}

	duration := defaultDurationMinutes
	if svc, ok := biz.ServiceByName(appt.ServiceName); ok {
		duration = svc.DurationMinutes
	}

	endDate, endClock, err := scheduling.CalculateEndTime(date, clock, duration)
	if err != nil {
		return nil, nil, err
	}

	start := &gcal.EventDateTime{
		DateTime: scheduling.NormalizeDateTime(appt.StartTime),
		TimeZone: tz,
	}
	end := &gcal.EventDateTime{
		DateTime: scheduling.NormalizeDateTime(endDate + "T" + endClock),
		TimeZone: tz,
	}
	return start, end, nil
}

func eventBody(biz *models.Business, appt *models.Appointment, start, end *gcal.EventDateTime) *gcal.Event {
	description := fmt.Sprintf("Customer: %s", appt.Customer.Name)
	if appt.Customer.Email != "" {
		description += fmt.Sprintf("\nEmail: %s", appt.Customer.Email)
	}
	if appt.Customer.Phone != "" {
		description += fmt.Sprintf("\nPhone: %s", appt.Customer.Phone)
	}
	if appt.Notes != "" {
		description += fmt.Sprintf("\nNotes: %s", appt.Notes)
	}
	return &gcal.Event{
		Summary:     fmt.Sprintf("%s - %s", appt.ServiceName, appt.Customer.Name),
		Description: description,
		Start:       start,
		End:         end,
	}
}

// CreateEvent inserts the mirror event and returns its id.
func (s *DefaultSyncService) CreateEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) (string, error) {
	svc, err := s.client(ctx, biz.OwnerID)
	if err != nil {
		return "", err
	}

	tz := s.resolveTimeZone(svc, biz)
	start, end, err := eventTimes(biz, appt, tz)
	if err != nil {
		return "", err
	}

	created, err := svc.Events.Insert(calendarID(biz), eventBody(biz, appt, start, end)).Context(ctx).Do()
	if err != nil {
		return "", newExternalError("create", fmt.Sprintf("failed to create event for appointment %s", appt.ID), err)
	}
	return created.Id, nil
}

// UpdateEvent patches the stored event with the appointment's current times.
func (s *DefaultSyncService) UpdateEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) error {
	if appt.ExternalCalendarEventID == "" {
		return newExternalError("update", fmt.Sprintf("appointment %s has no calendar event id", appt.ID), nil)
	}
	svc, err := s.client(ctx, biz.OwnerID)
	if err != nil {
		return err
	}

	tz := s.resolveTimeZone(svc, biz)
	start, end, err := eventTimes(biz, appt, tz)
	if err != nil {
		return err
	}

	_, err = svc.Events.Patch(calendarID(biz), appt.ExternalCalendarEventID, eventBody(biz, appt, start, end)).Context(ctx).Do()
	if err != nil {
		return newExternalError("update", fmt.Sprintf("failed to update event for appointment %s", appt.ID), err)
	}
	return nil
}

// DeleteEvent removes the mirror event. An event that is already gone counts
// as success.
func (s *DefaultSyncService) DeleteEvent(ctx context.Context, biz *models.Business, appt *models.Appointment) error {
	if appt.ExternalCalendarEventID == "" {
		return nil
	}
	svc, err := s.client(ctx, biz.OwnerID)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(calendarID(biz), appt.ExternalCalendarEventID).Context(ctx).Do()
	if err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && (gerr.Code == 404 || gerr.Code == 410) {
			return nil
		}
		return newExternalError("delete", fmt.Sprintf("failed to delete event for appointment %s", appt.ID), err)
	}
	return nil
}
