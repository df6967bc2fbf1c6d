package handlers

import (
	"context"
	"net/http"
	"testing"

	"bookline/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func businessRouter(bizRepo *fakeBizRepo, apptRepo *fakeApptRepo, ownerID string) (*gin.Engine, *memBindings) {
	bindings := newMemBindings()
	h := NewBusinessHandler(bizRepo, schedulerFor(bizRepo, apptRepo), bindings)
	r := gin.New()
	r.GET("/api/businesses/:id", h.GetBusinessHandler)
	r.GET("/api/businesses/:id/slots", h.GetSlotsHandler)
	owned := r.Group("/api/businesses", asOwner(ownerID))
	owned.PUT("/:id/availability", h.UpdateAvailabilityHandler)
	owned.PUT("/:id/services", h.UpdateServicesHandler)
	owned.PUT("/:id/calendar", h.UpdateCalendarSettingsHandler)
	owned.PUT("/:id/telegram", h.UpdateTelegramBindingHandler)
	return r, bindings
}

func TestGetBusiness(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodGet, "/api/businesses/biz-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Cutting Edge", body["name"])
	// The public view never leaks the owner.
	assert.NotContains(t, body, "ownerId")
}

func TestGetBusinessBySubdomain(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodGet, "/api/businesses/cutting-edge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "biz-1", decodeBody(t, w)["id"])
}

func TestGetBusinessNotFound(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(), newFakeApptRepo(), "owner-1")
	w := doJSON(r, http.MethodGet, "/api/businesses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSlots(t *testing.T) {
	apptRepo := newFakeApptRepo(&models.Appointment{
		ID: "a1", BusinessID: "biz-1", StartTime: "2026-08-31T10:00",
		Status: models.StatusPending,
	})
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), apptRepo, "owner-1")

	w := doJSON(r, http.MethodGet, "/api/businesses/biz-1/slots?date=2026-08-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Monday", body["weekday"])
	slots := body["slots"].([]any)
	require.Len(t, slots, 1)
	assert.Equal(t, true, slots[0].(map[string]any)["isBooked"])
}

func TestGetSlotsRequiresDate(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")
	w := doJSON(r, http.MethodGet, "/api/businesses/biz-1/slots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSlotsBadDate(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")
	w := doJSON(r, http.MethodGet, "/api/businesses/biz-1/slots?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAvailability(t *testing.T) {
	bizRepo := newFakeBizRepo(handlerBusiness())
	r, _ := businessRouter(bizRepo, newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/availability", gin.H{
		"weeklyAvailability": []gin.H{
			{"day": "Tuesday", "ranges": []gin.H{{"start": "10:00", "end": "16:00"}}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bizRepo.businesses["biz-1"].WeeklyAvailability, 1)
	assert.Equal(t, models.Tuesday, bizRepo.businesses["biz-1"].WeeklyAvailability[0].Day)
}

func TestUpdateAvailabilityRejectsOverlap(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/availability", gin.H{
		"weeklyAvailability": []gin.H{
			{"day": "Monday", "ranges": []gin.H{
				{"start": "09:00", "end": "12:00"},
				{"start": "11:00", "end": "14:00"},
			}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAvailabilityWrongOwner(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "intruder")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/availability", gin.H{
		"weeklyAvailability": []gin.H{},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateServicesFillsDefaults(t *testing.T) {
	bizRepo := newFakeBizRepo(handlerBusiness())
	r, _ := businessRouter(bizRepo, newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/services", gin.H{
		"services": []gin.H{{"name": "Coloring", "durationMinutes": 90}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored := bizRepo.businesses["biz-1"].Services
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].ID)
	assert.Equal(t, 1, stored[0].MaxCapacity)
}

func TestUpdateTelegramBinding(t *testing.T) {
	r, bindings := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/telegram", gin.H{"botId": "bot-1"})
	require.Equal(t, http.StatusOK, w.Code)

	biz, err := bindings.Resolve(context.Background(), "bot-1", 42)
	require.NoError(t, err)
	assert.Equal(t, "biz-1", biz)
}

func TestUpdateTelegramBindingRequiresBotID(t *testing.T) {
	r, _ := businessRouter(newFakeBizRepo(handlerBusiness()), newFakeApptRepo(), "owner-1")
	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/telegram", gin.H{"chatId": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCalendarSettingsDefaultsPrimary(t *testing.T) {
	bizRepo := newFakeBizRepo(handlerBusiness())
	r, _ := businessRouter(bizRepo, newFakeApptRepo(), "owner-1")

	w := doJSON(r, http.MethodPut, "/api/businesses/biz-1/calendar", gin.H{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bizRepo.businesses["biz-1"].Calendar.Enabled)
	assert.Equal(t, "primary", bizRepo.businesses["biz-1"].Calendar.CalendarID)
}
