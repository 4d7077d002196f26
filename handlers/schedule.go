package handlers

import (
	"errors"
	"net/http"

	"garagehub/middleware"
	"garagehub/models"
	"garagehub/services/garage"
	"garagehub/services/schedule"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes garage weekly schedules and per-date availability.
type ScheduleHandler struct {
	Service schedule.ScheduleService
	Garages garage.GarageService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc schedule.ScheduleService, garages garage.GarageService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Garages: garages}
}

func respondScheduleError(c *gin.Context, err error) {
	var defErr *schedule.SlotDefinitionError
	switch {
	case errors.As(err, &defErr):
		utils.JSONError(c, http.StatusBadRequest, defErr.Reason, "")
	case errors.Is(err, schedule.ErrGarageNotFound):
		utils.JSONError(c, http.StatusNotFound, "Garage not found", "")
	case errors.Is(err, schedule.ErrSlotNotFound):
		utils.JSONError(c, http.StatusNotFound, "Schedule slot not found", "")
	case errors.Is(err, schedule.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "A valid date (YYYY-MM-DD) is required", "")
	case errors.Is(err, schedule.ErrSlotOverlap):
		utils.JSONError(c, http.StatusConflict, "Slot overlaps an existing schedule slot for that day", "")
	case errors.Is(err, garage.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Garage not found", "")
	case errors.Is(err, garage.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "Only the garage owner may manage its schedule", "")
	default:
		utils.GetLogger().Error("Schedule operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

// GetGarageSchedule handles GET /garages/:id/schedule.
func (h *ScheduleHandler) GetGarageSchedule(c *gin.Context) {
	sched, err := h.Service.GetWeeklySchedule(c.Param("id"))
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// ReplaceGarageSchedule handles PUT /garages/:id/schedule. Only the garage
// owner may replace a day's slots; the swap is atomic.
func (h *ScheduleHandler) ReplaceGarageSchedule(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Garages.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondScheduleError(c, err)
		return
	}

	var req models.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	slots, err := h.Service.ReplaceDaySchedule(c.Request.Context(), garageID, req.DayOfWeek, req.Slots)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day_of_week": req.DayOfWeek,
		"slots":       slots,
	})
}

// CreateScheduleSlot handles POST /garages/:id/schedule/slots, adding one
// slot without touching the rest of the day.
func (h *ScheduleHandler) CreateScheduleSlot(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Garages.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondScheduleError(c, err)
		return
	}

	var slot models.GarageScheduleSlot
	if err := c.ShouldBindJSON(&slot); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	slot.GarageID = garageID

	created, err := h.Service.CreateSlot(c.Request.Context(), slot)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeactivateScheduleSlot handles DELETE /garages/:id/schedule/slots/:slotID,
// soft-disabling one slot without touching the rest of the day.
func (h *ScheduleHandler) DeactivateScheduleSlot(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Garages.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondScheduleError(c, err)
		return
	}

	if err := h.Service.DeactivateSlot(c.Request.Context(), garageID, c.Param("slotID")); err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule slot deactivated"})
}

// GetAvailableSlots handles GET /garages/:id/available-slots?date=YYYY-MM-DD.
func (h *ScheduleHandler) GetAvailableSlots(c *gin.Context) {
	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	if slots == nil {
		slots = []models.AvailableSlot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}
