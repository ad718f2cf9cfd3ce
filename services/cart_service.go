package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

// cartWriteRetries bounds how often a mutation is replayed after losing
// a version race to a concurrent writer.
const cartWriteRetries = 3

// CartService owns the per-user cart: reads prune lines whose product
// is gone, every mutation recomputes the total from each line's stored
// price-at-add, and all writes are version-checked.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
}

// NewCartService creates a CartService.
func NewCartService(carts store.CartStore, products store.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the user's cart, creating an empty one on first
// access. Lines referencing deleted products are dropped and the
// recomputed cart is persisted even though this is a read.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	for attempt := 0; attempt < cartWriteRetries; attempt++ {
		cart, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
			if err := s.carts.Insert(ctx, cart); err != nil {
				return nil, errInternal(err)
			}
			return cart, nil
		}
		if err != nil {
			return nil, errInternal(err)
		}

		pruned, err := s.pruneItems(ctx, cart.Items)
		if err != nil {
			return nil, err
		}
		cart.Items = pruned
		cart.TotalPrice = cartTotal(cart.Items)

		err = s.carts.Update(ctx, cart)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, errInternal(err)
		}
		return cart, nil
	}
	return nil, errInternal(store.ErrVersionConflict)
}

// AddItem puts quantity units of a product into the cart. A line that
// already exists grows by quantity and keeps its original price-at-add;
// a new line captures the product's current price. Stock is checked
// against the requested quantity only, not the cumulative line total,
// matching the storefront's long-standing behavior.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	if product.Stock < quantity {
		return nil, errInsufficientStock()
	}

	return s.mutate(ctx, userID, true, func(cart *models.Cart) error {
		if item := cart.FindItem(productID); item != nil {
			item.Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.CartItem{
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.Price,
			})
		}
		return nil
	})
}

// RemoveItem drops the product's line from the cart. Removing a product
// that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	return s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
		return nil
	})
}

// UpdateQuantity sets a line's quantity exactly. The only server-side
// bound is the product's stock; the storefront keeps quantities >= 1.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	if quantity > product.Stock {
		return nil, errInsufficientStock()
	}

	return s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		item := cart.FindItem(productID)
		if item == nil {
			return errNotFound("Item not in cart")
		}
		item.Quantity = quantity
		return nil
	})
}

// Clear empties the cart and zeroes its total. The cart itself stays.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		return nil
	})
}

// mutate loads the cart, applies fn, recomputes the total and writes it
// back, replaying the whole sequence when the version check loses.
func (s *CartService) mutate(ctx context.Context, userID primitive.ObjectID, createIfMissing bool, fn func(cart *models.Cart) error) (*models.Cart, error) {
	for attempt := 0; attempt < cartWriteRetries; attempt++ {
		cart, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			if !createIfMissing {
				return nil, errNotFound("Cart not found")
			}
			cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
			if err := s.carts.Insert(ctx, cart); err != nil {
				return nil, errInternal(err)
			}
		} else if err != nil {
			return nil, errInternal(err)
		}

		if err := fn(cart); err != nil {
			return nil, err
		}
		cart.TotalPrice = cartTotal(cart.Items)

		err = s.carts.Update(ctx, cart)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, errInternal(err)
		}
		return cart, nil
	}
	return nil, errInternal(store.ErrVersionConflict)
}

// pruneItems keeps only lines whose product still exists.
func (s *CartService) pruneItems(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	kept := []models.CartItem{}
	for _, item := range items {
		_, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, errInternal(err)
		}
		kept = append(kept, item)
	}
	return kept, nil
}
