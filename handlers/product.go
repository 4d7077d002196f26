package handlers

import (
	"errors"
	"net/http"

	"garagehub/middleware"
	"garagehub/models"
	"garagehub/services/garage"
	"garagehub/services/product"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler exposes a garage's product catalog.
type ProductHandler struct {
	Service product.ProductService
	Garages garage.GarageService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(svc product.ProductService, garages garage.GarageService) *ProductHandler {
	return &ProductHandler{Service: svc, Garages: garages}
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Product not found", "")
	case errors.Is(err, garage.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Garage not found", "")
	case errors.Is(err, garage.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "Only the garage owner may manage its products", "")
	default:
		utils.GetLogger().Error("Product operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

// ListGarageProducts handles GET /garages/:id/products.
func (h *ProductHandler) ListGarageProducts(c *gin.Context) {
	products, err := h.Service.GetByGarage(c.Param("id"))
	if err != nil {
		respondProductError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProduct handles POST /garages/:id/products, owner only.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	garageID := c.Param("id")

	if err := h.Garages.RequireOwner(garageID, middleware.AuthedUserID(c)); err != nil {
		respondProductError(c, err)
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	p.GarageID = garageID

	created, err := h.Service.Create(p)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles PUT /products/:id, owner only.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	existing, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondProductError(c, err)
		return
	}

	if err := h.Garages.RequireOwner(existing.GarageID, middleware.AuthedUserID(c)); err != nil {
		respondProductError(c, err)
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	p.ID = existing.ID

	updated, err := h.Service.Update(p)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
