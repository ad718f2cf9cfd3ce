package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

func seedProduct(t *testing.T, stores *store.Stores, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "seeded",
		Category:    models.CategoryMillets,
		Price:       price,
		Stock:       stock,
		SKU:         "sku-" + name,
	}
	require.NoError(t, stores.Products.Insert(context.Background(), product))
	return product
}

func seedUser(t *testing.T, stores *store.Stores, name, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleUser,
		Address: models.Address{
			Street: "12 Bazaar Road", City: "Madurai", State: "TN", ZipCode: "625001",
		},
	}
	require.NoError(t, stores.Users.Insert(context.Background(), user))
	return user
}
