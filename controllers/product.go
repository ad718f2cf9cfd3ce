package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"nambikkai-store/services"
	"nambikkai-store/store"
	"nambikkai-store/utils"
)

// ProductController handles catalog requests
type ProductController struct {
	Catalog *services.CatalogService
	Users   *services.UserService
}

// NewProductController creates a new ProductController
func NewProductController(catalog *services.CatalogService, users *services.UserService) *ProductController {
	return &ProductController{Catalog: catalog, Users: users}
}

// GetProducts lists products filtered by category, name search, and
// price range, newest first.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ProductFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if raw := query.Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondMessage(w, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		filter.MinPrice = &min
	}
	if raw := query.Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondMessage(w, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = &max
	}

	products, err := pc.Catalog.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := pc.Catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	var input services.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	product, err := pc.Catalog.Create(r.Context(), input, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	var input services.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	product, err := pc.Catalog.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	if err := pc.Catalog.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}

// AddReview appends a review to a product.
func (pc *ProductController) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Reviews display the reviewer's account name.
	user, err := pc.Users.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	product, err := pc.Catalog.AddReview(r.Context(), productID, userID, user.Name, req.Rating, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Review added successfully",
		"product": product,
	})
}
