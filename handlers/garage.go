package handlers

import (
	"errors"
	"net/http"

	"garagehub/middleware"
	"garagehub/models"
	"garagehub/services/garage"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GarageHandler exposes the garage directory.
type GarageHandler struct {
	Service garage.GarageService
}

// NewGarageHandler constructs a GarageHandler.
func NewGarageHandler(svc garage.GarageService) *GarageHandler {
	return &GarageHandler{Service: svc}
}

func respondGarageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, garage.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Garage not found", "")
	case errors.Is(err, garage.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "Only the garage owner may do this", "")
	default:
		utils.GetLogger().Error("Garage operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

// ListGarages handles GET /garages.
func (h *GarageHandler) ListGarages(c *gin.Context) {
	garages, err := h.Service.GetAll()
	if err != nil {
		respondGarageError(c, err)
		return
	}
	if garages == nil {
		garages = []models.Garage{}
	}
	c.JSON(http.StatusOK, garages)
}

// GetGarage handles GET /garages/:id.
func (h *GarageHandler) GetGarage(c *gin.Context) {
	g, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondGarageError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// CreateGarage handles POST /garages. The authenticated user becomes the
// owner.
func (h *GarageHandler) CreateGarage(c *gin.Context) {
	var g models.Garage
	if err := c.ShouldBindJSON(&g); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	g.OwnerID = middleware.AuthedUserID(c)

	created, err := h.Service.Create(g)
	if err != nil {
		respondGarageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateGarage handles PUT /garages/:id, owner only.
func (h *GarageHandler) UpdateGarage(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Service.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondGarageError(c, err)
		return
	}

	var g models.Garage
	if err := c.ShouldBindJSON(&g); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	g.ID = garageID

	updated, err := h.Service.Update(g)
	if err != nil {
		respondGarageError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteGarage handles DELETE /garages/:id, owner only.
func (h *GarageHandler) DeleteGarage(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Service.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondGarageError(c, err)
		return
	}

	if err := h.Service.Delete(garageID); err != nil {
		respondGarageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Garage deleted"})
}
