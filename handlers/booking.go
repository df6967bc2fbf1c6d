package handlers

import (
	"net/http"

	appointmentRepo "bookline/database/repository/appointment"
	businessRepo "bookline/database/repository/business"
	"bookline/models"
	"bookline/services/scheduling"
	"bookline/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the owner's appointment views and lifecycle actions.
type BookingHandler struct {
	Repo      businessRepo.BusinessRepository
	ApptRepo  appointmentRepo.AppointmentRepository
	Scheduler scheduling.SchedulingService
}

func NewBookingHandler(repo businessRepo.BusinessRepository, apptRepo appointmentRepo.AppointmentRepository, scheduler scheduling.SchedulingService) *BookingHandler {
	return &BookingHandler{Repo: repo, ApptRepo: apptRepo, Scheduler: scheduler}
}

// ListAppointmentsHandler returns a business's appointments, optionally for
// one date.
func (h *BookingHandler) ListAppointmentsHandler(c *gin.Context) {
	id := c.Param("id")
	if !h.ownsBusiness(c, id) {
		return
	}

	appts, err := h.Scheduler.ListAppointments(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ConfirmAppointmentHandler patches an appointment to confirmed and lets the
// outbox mirror it.
func (h *BookingHandler) ConfirmAppointmentHandler(c *gin.Context) {
	appt := h.loadOwnedAppointment(c)
	if appt == nil {
		return
	}
	if appt.Status == models.StatusCancelled {
		utils.JSONError(c, http.StatusConflict, "appointment is cancelled", appt.ID)
		return
	}

	updated, err := h.Scheduler.ConfirmAppointment(c.Request.Context(), appt.ID)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to confirm appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": updated})
}

// CancelAppointmentHandler patches an appointment to cancelled. The record
// stays for the audit trail.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	appt := h.loadOwnedAppointment(c)
	if appt == nil {
		return
	}

	updated, err := h.Scheduler.CancelAppointment(c.Request.Context(), appt.ID)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to cancel appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": updated})
}

// ownsBusiness verifies the authenticated owner against the business.
func (h *BookingHandler) ownsBusiness(c *gin.Context, businessID string) bool {
	biz, err := h.Repo.GetByID(c.Request.Context(), businessID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load business", err.Error())
		return false
	}
	if biz == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", businessID)
		return false
	}
	ownerID, _ := c.Get("ownerID")
	if biz.OwnerID != ownerID {
		utils.JSONError(c, http.StatusForbidden, "not the owner of this business", "")
		return false
	}
	return true
}

// loadOwnedAppointment resolves the appointment in the path and verifies the
// caller owns its business.
func (h *BookingHandler) loadOwnedAppointment(c *gin.Context) *models.Appointment {
	id := c.Param("id")
	appt, err := h.ApptRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load appointment", err.Error())
		return nil
	}
	if appt == nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", id)
		return nil
	}
	if !h.ownsBusiness(c, appt.BusinessID) {
		return nil
	}
	return appt
}
