package handlers

import (
	"errors"
	"net/http"
	"time"

	"garagehub/models"
	"garagehub/services/appointment"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the appointment lifecycle over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// respondAppointmentError maps booking/lifecycle errors onto the HTTP error
// taxonomy. Unexpected errors are logged in full and returned with a generic
// message plus the raw error string.
func respondAppointmentError(c *gin.Context, err error) {
	var vErr *appointment.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Reason, "")
	case errors.Is(err, appointment.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
	case errors.Is(err, appointment.ErrSlotNotFound):
		utils.JSONError(c, http.StatusNotFound, "Schedule slot not found", "")
	case errors.Is(err, appointment.ErrGarageMismatch):
		utils.JSONError(c, http.StatusBadRequest, "Slot does not belong to this garage", "")
	case errors.Is(err, appointment.ErrDayMismatch):
		utils.JSONError(c, http.StatusBadRequest, "Appointment day does not match slot day", "")
	case errors.Is(err, appointment.ErrOutOfRange):
		utils.JSONError(c, http.StatusBadRequest, "Appointment time is outside the slot's time range", "")
	case errors.Is(err, appointment.ErrCapacityExceeded):
		utils.JSONError(c, http.StatusBadRequest, "This time slot is already fully booked", "")
	case errors.Is(err, appointment.ErrInvalidTransition):
		utils.JSONError(c, http.StatusBadRequest, "Illegal appointment status transition", "")
	default:
		utils.GetLogger().Error("Appointment operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

// ListAppointments handles GET /appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appts, err := h.Service.GetAll()
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointment handles GET /appointments/:id.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

type createAppointmentInput struct {
	UserID          string    `json:"user_id"`
	GarageID        string    `json:"garage_id"`
	OrderID         string    `json:"order_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	ScheduleSlotID  string    `json:"schedule_slot_id"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}

// CreateAppointment handles POST /appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var input createAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), models.Appointment{
		UserID:          input.UserID,
		GarageID:        input.GarageID,
		OrderID:         input.OrderID,
		AppointmentTime: input.AppointmentTime,
		ScheduleSlotID:  input.ScheduleSlotID,
		Status:          input.Status,
		Notes:           input.Notes,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointment handles PUT /appointments/:id with a partial body.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var upd models.AppointmentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	appt, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/:id.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
