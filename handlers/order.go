package handlers

import (
	"errors"
	"net/http"

	"garagehub/middleware"
	"garagehub/models"
	"garagehub/services/order"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes order creation and retrieval.
type OrderHandler struct {
	Service order.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Service: svc}
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Order not found", "")
	case errors.Is(err, order.ErrProductNotFound):
		utils.JSONError(c, http.StatusBadRequest, "One of the ordered products does not exist", "")
	case errors.Is(err, order.ErrOutOfStock):
		utils.JSONError(c, http.StatusConflict, "One of the ordered products is out of stock", "")
	default:
		utils.GetLogger().Error("Order operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

type createOrderInput struct {
	GarageID string            `json:"garage_id" binding:"required"`
	Items    []order.ItemInput `json:"items" binding:"required,min=1"`
}

// CreateOrder handles POST /orders for the authenticated user.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	o, err := h.Service.Create(middleware.AuthedUserID(c), input.GarageID, input.Items)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// ListMyOrders handles GET /orders for the authenticated user.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.Service.GetByUser(middleware.AuthedUserID(c))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id. Users may only read their own orders.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if o.UserID != middleware.AuthedUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "You may only view your own orders", "")
		return
	}
	c.JSON(http.StatusOK, o)
}
