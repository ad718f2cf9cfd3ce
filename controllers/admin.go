package controllers

import (
	"encoding/json"
	"net/http"

	"nambikkai-store/services"
	"nambikkai-store/utils"
)

// AdminController handles the back-office surface: order management,
// team members, and dashboard stats.
type AdminController struct {
	Admin  *services.AdminService
	Orders *services.OrderService
}

// NewAdminController creates a new AdminController
func NewAdminController(admin *services.AdminService, orders *services.OrderService) *AdminController {
	return &AdminController{Admin: admin, Orders: orders}
}

// GetAllOrders lists every order, most recent first.
func (ac *AdminController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := ac.Orders.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus updates an order's status and/or payment status.
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := ac.Orders.UpdateStatus(r.Context(), orderID, req.Status, req.PaymentStatus)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order updated",
		"order":   order,
	})
}

// AddMember adds a team member under the calling admin.
func (ac *AdminController) AddMember(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := identity(w, r)
	if !ok {
		return
	}
	var input services.AddMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	member, err := ac.Admin.AddMember(r.Context(), adminID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Team member added successfully",
		"adminMember": member,
	})
}

// GetMembers lists the calling admin's team.
func (ac *AdminController) GetMembers(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := identity(w, r)
	if !ok {
		return
	}
	members, err := ac.Admin.ListMembers(r.Context(), adminID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, members)
}

// UpdateMember changes a team member's role.
func (ac *AdminController) UpdateMember(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := identity(w, r)
	if !ok {
		return
	}
	memberID, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid member ID")
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	member, err := ac.Admin.UpdateMember(r.Context(), adminID, memberID, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Team member updated",
		"adminMember": member,
	})
}

// RemoveMember deletes a team member link.
func (ac *AdminController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := identity(w, r)
	if !ok {
		return
	}
	memberID, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid member ID")
		return
	}
	if err := ac.Admin.RemoveMember(r.Context(), adminID, memberID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Team member removed")
}

// DashboardStats returns the admin landing-page summary.
func (ac *AdminController) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := ac.Admin.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}
