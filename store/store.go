// Package store persists the shop's entities. Each entity gets a small
// interface with a MongoDB implementation and an in-memory one used by
// tests and local runs without a database.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
)

var (
	// ErrNotFound is returned when a looked-up entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by CartStore.Update when the cart
	// was modified since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

// ProductFilter narrows a catalog listing. Nil price bounds are open.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

// ProductStore persists catalog products.
type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CartStore persists carts. Update is a compare-and-swap keyed on
// Cart.Version: a stale version fails with ErrVersionConflict and the
// caller is expected to reload and retry.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Insert(ctx context.Context, c *models.Cart) error
	Update(ctx context.Context, c *models.Cart) error
}

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindRecent(ctx context.Context, limit int64) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Count(ctx context.Context) (int64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// AdminMemberStore persists admin team member links.
type AdminMemberStore interface {
	Insert(ctx context.Context, m *models.AdminMember) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminMember, error)
	FindByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.AdminMember, error)
	Update(ctx context.Context, m *models.AdminMember) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TxnRunner runs fn atomically. Store calls made with the context passed
// to fn join the transaction.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stores bundles every store behind one wiring point.
type Stores struct {
	Products ProductStore
	Carts    CartStore
	Orders   OrderStore
	Users    UserStore
	Members  AdminMemberStore
	Txn      TxnRunner
}
