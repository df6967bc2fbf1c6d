package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	appointmentRepo "bookline/database/repository/appointment"
	"bookline/models"
	"bookline/services/scheduling"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBizRepo is an in-memory BusinessRepository.
type fakeBizRepo struct {
	businesses map[string]*models.Business
}

func newFakeBizRepo(bizs ...*models.Business) *fakeBizRepo {
	r := &fakeBizRepo{businesses: map[string]*models.Business{}}
	for _, b := range bizs {
		r.businesses[b.ID] = b
	}
	return r
}

func (f *fakeBizRepo) Create(ctx context.Context, biz *models.Business) error {
	f.businesses[biz.ID] = biz
	return nil
}

func (f *fakeBizRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return f.businesses[id], nil
}

func (f *fakeBizRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Business, error) {
	for _, b := range f.businesses {
		if b.Subdomain == subdomain {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBizRepo) UpdateAvailability(ctx context.Context, id string, days []models.DayAvailability) error {
	f.businesses[id].WeeklyAvailability = days
	return nil
}

func (f *fakeBizRepo) UpdateServices(ctx context.Context, id string, services []models.Service) error {
	f.businesses[id].Services = services
	return nil
}

func (f *fakeBizRepo) UpdateCalendarSettings(ctx context.Context, id string, settings models.CalendarSettings) error {
	f.businesses[id].Calendar = settings
	return nil
}

// fakeApptRepo mirrors the unique-index conflict rule in memory.
type fakeApptRepo struct {
	appts map[string]*models.Appointment
}

func newFakeApptRepo(appts ...*models.Appointment) *fakeApptRepo {
	r := &fakeApptRepo{appts: map[string]*models.Appointment{}}
	for _, a := range appts {
		r.appts[a.ID] = a
	}
	return r
}

func (f *fakeApptRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	for _, a := range f.appts {
		if a.BusinessID == appt.BusinessID && a.StartTime == appt.StartTime && a.Status != models.StatusCancelled {
			return appointmentRepo.ErrSlotTaken
		}
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	f.appts[id].Status = status
	return nil
}

func (f *fakeApptRepo) SetCalendarEventID(ctx context.Context, id string, eventID string) error {
	f.appts[id].ExternalCalendarEventID = eventID
	return nil
}

func (f *fakeApptRepo) FindActiveByDate(ctx context.Context, businessID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.BusinessID == businessID && a.Date() == date && a.Status != models.StatusCancelled {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) FindByBusiness(ctx context.Context, businessID string, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.BusinessID != businessID {
			continue
		}
		if date != "" && a.Date() != date {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// memBindings stores channel bindings in memory.
type memBindings struct {
	bindings map[string]string // "botID:chatID" -> businessID
}

func newMemBindings() *memBindings {
	return &memBindings{bindings: map[string]string{}}
}

func bindingKey(botID string, chatID int64) string {
	return fmt.Sprintf("%s:%d", botID, chatID)
}

func (m *memBindings) Upsert(ctx context.Context, binding *models.ChannelBinding) error {
	m.bindings[bindingKey(binding.BotID, binding.ChatID)] = binding.BusinessID
	return nil
}

func (m *memBindings) Resolve(ctx context.Context, botID string, chatID int64) (string, error) {
	if biz, ok := m.bindings[bindingKey(botID, chatID)]; ok {
		return biz, nil
	}
	return m.bindings[bindingKey(botID, 0)], nil
}

// 2026-08-31 is a Monday.
func handlerBusiness() *models.Business {
	return &models.Business{
		ID:        "biz-1",
		OwnerID:   "owner-1",
		Subdomain: "cutting-edge",
		Name:      "Cutting Edge",
		Services: []models.Service{
			{ID: "svc-1", Name: "Haircut", DurationMinutes: 30, MaxCapacity: 1},
		},
		WeeklyAvailability: []models.DayAvailability{
			{Day: models.Monday, Ranges: []models.TimeRange{{Start: "09:00", End: "12:00"}}},
		},
	}
}

func schedulerFor(bizRepo *fakeBizRepo, apptRepo *fakeApptRepo) *scheduling.DefaultSchedulingService {
	return &scheduling.DefaultSchedulingService{BusinessRepo: bizRepo, ApptRepo: apptRepo}
}

// asOwner stubs the auth middleware for protected routes.
func asOwner(ownerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ownerID", ownerID)
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return out
}

func doRaw(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
