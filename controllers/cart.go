package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/services"
	"nambikkai-store/utils"
)

// CartController handles cart-related requests
type CartController struct {
	Service *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(service *services.CartService) *CartController {
	return &CartController{Service: service}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (req *cartItemRequest) productID(w http.ResponseWriter) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCart retrieves the user's cart, creating one on first access.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	cart, err := cc.Service.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, ok := req.productID(w)
	if !ok {
		return
	}
	cart, err := cc.Service.AddItem(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, ok := req.productID(w)
	if !ok {
		return
	}
	cart, err := cc.Service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}

// UpdateQuantity sets the quantity of a line already in the cart.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, ok := req.productID(w)
	if !ok {
		return
	}
	cart, err := cc.Service.UpdateQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quantity updated",
		"cart":    cart,
	})
}

// ClearCart empties the cart without deleting it.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	cart, err := cc.Service.Clear(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart cleared",
		"cart":    cart,
	})
}
