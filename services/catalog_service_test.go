package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *store.Stores) {
	t.Helper()
	stores := store.NewMemoryStores()
	return NewCatalogService(stores.Products, nil), stores
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	admin := primitive.NewObjectID()

	valid := CreateProductInput{
		Name:        "Foxtail Millet",
		Description: "Stone ground",
		Category:    models.CategoryMillets,
		Price:       100,
		Stock:       5,
	}

	t.Run("stores the product with a generated sku", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)
		product, err := svc.Create(ctx, valid, admin)
		require.NoError(t, err)
		assert.False(t, product.ID.IsZero())
		assert.True(t, strings.HasPrefix(product.SKU, models.CategoryMillets+"-"))
		assert.Equal(t, admin, product.CreatedBy)
		assert.Zero(t, product.Rating)
		assert.Empty(t, product.Reviews)
	})

	t.Run("keeps an explicit sku", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)
		input := valid
		input.SKU = "MIL-001"
		product, err := svc.Create(ctx, input, admin)
		require.NoError(t, err)
		assert.Equal(t, "MIL-001", product.SKU)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)
		cases := []struct {
			name   string
			mutate func(*CreateProductInput)
		}{
			{"missing name", func(in *CreateProductInput) { in.Name = " " }},
			{"missing description", func(in *CreateProductInput) { in.Description = "" }},
			{"unknown category", func(in *CreateProductInput) { in.Category = "gadgets" }},
			{"negative price", func(in *CreateProductInput) { in.Price = -1 }},
			{"negative stock", func(in *CreateProductInput) { in.Stock = -1 }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := valid
				tc.mutate(&input)
				_, err := svc.Create(ctx, input, admin)
				assert.Equal(t, KindValidation, KindOf(err))
			})
		}
	})
}

func TestListProducts(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()
	admin := primitive.NewObjectID()

	seed := []CreateProductInput{
		{Name: "Foxtail Millet", Description: "d", Category: models.CategoryMillets, Price: 100, Stock: 5},
		{Name: "Toor Dal", Description: "d", Category: models.CategoryPulses, Price: 80, Stock: 5},
		{Name: "Sesame Oil", Description: "d", Category: models.CategoryOils, Price: 250, Stock: 5},
		{Name: "Little Millet", Description: "d", Category: models.CategoryMillets, Price: 120, Stock: 5},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, input, admin)
		require.NoError(t, err)
	}

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		products, err := svc.List(ctx, store.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 4)
		assert.Equal(t, "Little Millet", products[0].Name)
		assert.Equal(t, "Foxtail Millet", products[3].Name)
	})

	t.Run("by category", func(t *testing.T) {
		products, err := svc.List(ctx, store.ProductFilter{Category: models.CategoryMillets})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("by name search, case insensitive", func(t *testing.T) {
		products, err := svc.List(ctx, store.ProductFilter{Search: "millet"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("by price range", func(t *testing.T) {
		min, max := 90.0, 130.0
		products, err := svc.List(ctx, store.ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.GreaterOrEqual(t, p.Price, min)
			assert.LessOrEqual(t, p.Price, max)
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		min := 110.0
		products, err := svc.List(ctx, store.ProductFilter{Category: models.CategoryMillets, MinPrice: &min})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Little Millet", products[0].Name)
	})

	t.Run("search metacharacters match literally", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateProductInput{
			Name: "Toor Dal (1kg)", Description: "d", Category: models.CategoryPulses, Price: 90, Stock: 5,
		}, admin)
		require.NoError(t, err)

		products, err := svc.List(ctx, store.ProductFilter{Search: "(1kg)"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Toor Dal (1kg)", products[0].Name)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc, stores := newCatalogFixture(t)
	ctx := context.Background()
	product := seedProduct(t, stores, "Foxtail Millet", 100, 5)

	t.Run("merges only the given fields", func(t *testing.T) {
		price := 110.0
		updated, err := svc.Update(ctx, product.ID, UpdateProductInput{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 110.0, updated.Price)
		assert.Equal(t, "Foxtail Millet", updated.Name)
		assert.Equal(t, 5, updated.Stock)
	})

	t.Run("zero stock is a real update", func(t *testing.T) {
		stock := 0
		updated, err := svc.Update(ctx, product.ID, UpdateProductInput{Stock: &stock})
		require.NoError(t, err)
		assert.Zero(t, updated.Stock)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		_, err := svc.Update(ctx, product.ID, UpdateProductInput{Category: "gadgets"})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Update(ctx, primitive.NewObjectID(), UpdateProductInput{})
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, stores := newCatalogFixture(t)
	ctx := context.Background()
	product := seedProduct(t, stores, "Foxtail Millet", 100, 5)

	require.NoError(t, svc.Delete(ctx, product.ID))

	_, err := svc.Get(ctx, product.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = svc.Delete(ctx, product.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and recomputes the mean rating", func(t *testing.T) {
		svc, stores := newCatalogFixture(t)
		product := seedProduct(t, stores, "Foxtail Millet", 100, 5)
		reviewer := primitive.NewObjectID()

		updated, err := svc.AddReview(ctx, product.ID, reviewer, "Meena", 5, "Excellent quality")
		require.NoError(t, err)
		assert.Equal(t, 5.0, updated.Rating)

		updated, err = svc.AddReview(ctx, product.ID, primitive.NewObjectID(), "Ravi", 4, "Good")
		require.NoError(t, err)
		require.Len(t, updated.Reviews, 2)
		assert.Equal(t, 4.5, updated.Rating)

		// 5, 4, 4 does not divide evenly; the mean stays unrounded.
		updated, err = svc.AddReview(ctx, product.ID, primitive.NewObjectID(), "Kavi", 4, "Fine")
		require.NoError(t, err)
		assert.InDelta(t, 13.0/3.0, updated.Rating, 1e-9)
	})

	t.Run("rating outside 1 to 5", func(t *testing.T) {
		svc, stores := newCatalogFixture(t)
		product := seedProduct(t, stores, "Foxtail Millet", 100, 5)
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.AddReview(ctx, product.ID, primitive.NewObjectID(), "Meena", rating, "text")
			assert.Equal(t, KindValidation, KindOf(err))
		}
	})

	t.Run("empty text", func(t *testing.T) {
		svc, stores := newCatalogFixture(t)
		product := seedProduct(t, stores, "Foxtail Millet", 100, 5)
		_, err := svc.AddReview(ctx, product.ID, primitive.NewObjectID(), "Meena", 3, "  ")
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)
		_, err := svc.AddReview(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Meena", 3, "text")
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}
