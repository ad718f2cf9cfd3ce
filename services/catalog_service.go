package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/cache"
	"nambikkai-store/models"
	"nambikkai-store/store"
)

// CatalogService owns the product catalog: filtered listings, admin
// writes, and reviews with the derived average rating.
type CatalogService struct {
	products store.ProductStore
	cache    *cache.ProductCache
}

// NewCatalogService creates a CatalogService. productCache may be nil.
func NewCatalogService(products store.ProductStore, productCache *cache.ProductCache) *CatalogService {
	return &CatalogService{products: products, cache: productCache}
}

// List returns products matching the filter, newest first. Listings are
// served from the cache when one is configured.
func (s *CatalogService) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	key := cache.ListKey(filter)
	if products, ok := s.cache.GetList(ctx, key); ok {
		return products, nil
	}
	products, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, errInternal(err)
	}
	s.cache.SetList(ctx, key, products)
	return products, nil
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	return product, nil
}

// CreateProductInput carries the fields of a catalog create.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	SKU         string  `json:"sku"`
	Image       string  `json:"image"`
}

// Create validates and stores a new product. A missing SKU gets a
// generated, category-prefixed one.
func (s *CatalogService) Create(ctx context.Context, input CreateProductInput, createdBy primitive.ObjectID) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errValidation("Product name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errValidation("Description is required")
	}
	if !models.ValidCategory(input.Category) {
		return nil, errValidation("Invalid category")
	}
	if input.Price < 0 {
		return nil, errValidation("Valid price is required")
	}
	if input.Stock < 0 {
		return nil, errValidation("Stock must be a non-negative number")
	}

	sku := input.SKU
	if sku == "" {
		sku = input.Category + "-" + uuid.NewString()
	}

	now := nowUTC()
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Rating:      0,
		Reviews:     []models.Review{},
		Image:       input.Image,
		Stock:       input.Stock,
		SKU:         sku,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, errInternal(err)
	}
	s.cache.Invalidate(ctx)
	return product, nil
}

// UpdateProductInput carries a partial catalog update. Nil/empty fields
// keep their current value.
type UpdateProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	SKU         string   `json:"sku"`
	Image       string   `json:"image"`
}

// Update merges the given fields into an existing product.
func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		if !models.ValidCategory(input.Category) {
			return nil, errValidation("Invalid category")
		}
		product.Category = input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errValidation("Valid price is required")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errValidation("Stock must be a non-negative number")
		}
		product.Stock = *input.Stock
	}
	if input.SKU != "" {
		product.SKU = input.SKU
	}
	if input.Image != "" {
		product.Image = input.Image
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, errInternal(err)
	}
	s.cache.Invalidate(ctx)
	return product, nil
}

// Delete removes a product from the catalog. Cart lines referencing it
// are pruned lazily on the next cart read.
func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("Product not found")
	}
	if err != nil {
		return errInternal(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// AddReview appends a review and recomputes the product rating as the
// plain mean over all reviews, stored unrounded.
func (s *CatalogService) AddReview(ctx context.Context, productID, userID primitive.ObjectID, userName string, rating int, text string) (*models.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, errValidation("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errValidation("Review text is required")
	}

	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	product.Reviews = append(product.Reviews, models.Review{
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Rating:    rating,
		CreatedAt: nowUTC(),
	})

	var sum int
	for _, review := range product.Reviews {
		sum += review.Rating
	}
	product.Rating = float64(sum) / float64(len(product.Reviews))

	if err := s.products.Update(ctx, product); err != nil {
		return nil, errInternal(err)
	}
	s.cache.Invalidate(ctx)
	return product, nil
}
