package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nambikkai-store/models"
	"nambikkai-store/services"
	"nambikkai-store/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Service *services.OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// Checkout converts the caller's cart into an order.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req struct {
		ShippingAddress *models.Address `json:"shippingAddress"`
		PaymentMethod   string          `json:"paymentMethod"`
	}
	// An empty body means "profile address, default payment".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := oc.Service.Checkout(r.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	orders, err := oc.Service.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// GetOrderByID retrieves one of the caller's orders.
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := oc.Service.GetByID(r.Context(), userID, orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}
