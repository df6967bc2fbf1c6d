package handlers

import (
	"net/http"

	businessRepo "bookline/database/repository/business"
	channelRepo "bookline/database/repository/channel"
	"bookline/models"
	"bookline/services/scheduling"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BusinessHandler serves the public business view and the owner's template,
// catalog and calendar mutations.
type BusinessHandler struct {
	Repo      businessRepo.BusinessRepository
	Scheduler scheduling.SchedulingService
	Bindings  channelRepo.BindingRepository
}

func NewBusinessHandler(repo businessRepo.BusinessRepository, scheduler scheduling.SchedulingService, bindings channelRepo.BindingRepository) *BusinessHandler {
	return &BusinessHandler{Repo: repo, Scheduler: scheduler, Bindings: bindings}
}

// statusForError maps scheduling errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case scheduling.IsValidation(err):
		return http.StatusBadRequest
	case scheduling.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// loadOwned fetches the business and verifies the authenticated owner.
func (h *BusinessHandler) loadOwned(c *gin.Context, id string) *models.Business {
	biz, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load business", err.Error())
		return nil
	}
	if biz == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", id)
		return nil
	}
	ownerID, _ := c.Get("ownerID")
	if biz.OwnerID != ownerID {
		utils.JSONError(c, http.StatusForbidden, "not the owner of this business", "")
		return nil
	}
	return biz
}

// GetBusinessHandler returns the public view of a business.
func (h *BusinessHandler) GetBusinessHandler(c *gin.Context) {
	id := c.Param("id")
	biz, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load business", err.Error())
		return
	}
	if biz == nil {
		biz, err = h.Repo.GetBySubdomain(c.Request.Context(), id)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load business", err.Error())
			return
		}
	}
	if biz == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 biz.ID,
		"name":               biz.Name,
		"description":        biz.Description,
		"services":           biz.Services,
		"weeklyAvailability": biz.WeeklyAvailability,
	})
}

// GetSlotsHandler returns the resolver's output for one date.
func (h *BusinessHandler) GetSlotsHandler(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date query parameter", "expected date=YYYY-MM-DD")
		return
	}

	slots, day, err := h.Scheduler.ResolveSlots(c.Request.Context(), id, date)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to resolve slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"weekday": day,
		"slots":   slots,
	})
}

// UpdateAvailabilityHandler replaces the weekly availability template.
func (h *BusinessHandler) UpdateAvailabilityHandler(c *gin.Context) {
	biz := h.loadOwned(c, c.Param("id"))
	if biz == nil {
		return
	}

	var input struct {
		WeeklyAvailability []models.DayAvailability `json:"weeklyAvailability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := scheduling.ValidateWeeklyAvailability(input.WeeklyAvailability); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability template", err.Error())
		return
	}

	if err := h.Repo.UpdateAvailability(c.Request.Context(), biz.ID, input.WeeklyAvailability); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateServicesHandler replaces the service catalog. New entries get opaque
// ids; capacity defaults to 1.
func (h *BusinessHandler) UpdateServicesHandler(c *gin.Context) {
	biz := h.loadOwned(c, c.Param("id"))
	if biz == nil {
		return
	}

	var input struct {
		Services []models.Service `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := scheduling.ValidateServices(input.Services); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service catalog", err.Error())
		return
	}
	for i := range input.Services {
		if input.Services[i].ID == "" {
			input.Services[i].ID = uuid.New().String()
		}
		if input.Services[i].MaxCapacity == 0 {
			input.Services[i].MaxCapacity = 1
		}
	}

	if err := h.Repo.UpdateServices(c.Request.Context(), biz.ID, input.Services); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "services": input.Services})
}

// UpdateTelegramBindingHandler binds a bot, or one chat of a bot, to the
// business. Inbound webhook traffic for that identity routes here afterwards.
func (h *BusinessHandler) UpdateTelegramBindingHandler(c *gin.Context) {
	biz := h.loadOwned(c, c.Param("id"))
	if biz == nil {
		return
	}

	var input struct {
		BotID  string `json:"botId" binding:"required"`
		ChatID int64  `json:"chatId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	binding := &models.ChannelBinding{
		BotID:      input.BotID,
		ChatID:     input.ChatID,
		BusinessID: biz.ID,
	}
	if err := h.Bindings.Upsert(c.Request.Context(), binding); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store binding", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "binding": binding})
}

// UpdateCalendarSettingsHandler toggles the external calendar linkage.
func (h *BusinessHandler) UpdateCalendarSettingsHandler(c *gin.Context) {
	biz := h.loadOwned(c, c.Param("id"))
	if biz == nil {
		return
	}

	var input models.CalendarSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.CalendarID == "" {
		input.CalendarID = "primary"
	}

	if err := h.Repo.UpdateCalendarSettings(c.Request.Context(), biz.ID, input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update calendar settings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
