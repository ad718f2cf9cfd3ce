package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

// Notifier sends customer-facing notifications. Sends are best-effort;
// implementations log their own failures.
type Notifier interface {
	OrderPlaced(user models.User, order models.Order)
	OrderStatusChanged(user models.User, order models.Order)
}

// legal order status transitions: pending -> confirmed -> shipped ->
// delivered, with cancelled reachable from any non-terminal state.
var nextOrderStatuses = map[string][]string{
	models.OrderPending:   {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:   {models.OrderDelivered, models.OrderCancelled},
	models.OrderDelivered: {},
	models.OrderCancelled: {},
}

func legalTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, s := range nextOrderStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OrderService converts carts into immutable order snapshots and lets
// operators walk an order through its lifecycle.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
	txn      store.TxnRunner
	cart     *CartService
	notifier Notifier
	logger   zerolog.Logger
}

// NewOrderService creates an OrderService. notifier may be nil.
func NewOrderService(stores *store.Stores, cart *CartService, notifier Notifier, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders:   stores.Orders,
		products: stores.Products,
		users:    stores.Users,
		txn:      stores.Txn,
		cart:     cart,
		notifier: notifier,
		logger:   logger,
	}
}

// Checkout snapshots the user's cart into an order and empties the
// cart, both inside one transaction. Line items capture the product's
// current name and price, so price drift since add-to-cart lands in the
// order, and the total is recomputed from those snapshot lines.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, shippingAddress *models.Address, paymentMethod string) (*models.Order, error) {
	for attempt := 0; attempt < cartWriteRetries; attempt++ {
		order, err := s.checkoutOnce(ctx, userID, shippingAddress, paymentMethod)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		return order, err
	}
	return nil, errInternal(store.ErrVersionConflict)
}

// checkoutOnce runs one checkout attempt. A bare ErrVersionConflict
// means the cart moved underneath us and the caller should start over
// from a fresh snapshot.
func (s *OrderService) checkoutOnce(ctx context.Context, userID primitive.ObjectID, shippingAddress *models.Address, paymentMethod string) (*models.Order, error) {
	// Reads the cart through the same pruning path as GET /cart, so
	// lines for deleted products never reach an order.
	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errEmptyCart()
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("User not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the pruning read and here; skip it.
			continue
		}
		if err != nil {
			return nil, errInternal(err)
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
	}
	if len(items) == 0 {
		return nil, errEmptyCart()
	}

	address := user.Address
	if shippingAddress != nil {
		address = *shippingAddress
	}
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     orderTotal(items),
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		CreatedAt:       nowUTC(),
	}

	// The version-checked cart reset goes first: if the cart moved
	// since the snapshot, the attempt aborts before any order exists.
	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		cart.Items = []models.CartItem{}
		cart.TotalPrice = 0
		if err := s.cart.carts.Update(ctx, cart); err != nil {
			return err
		}
		return s.orders.Insert(ctx, order)
	})
	if errors.Is(err, store.ErrVersionConflict) {
		return nil, store.ErrVersionConflict
	}
	if err != nil {
		return nil, errInternal(err)
	}

	if s.notifier != nil {
		go s.notifier.OrderPlaced(*user, *order)
	}
	return order, nil
}

// ListForUser returns the user's orders, most recent first.
func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, errInternal(err)
	}
	return orders, nil
}

// GetByID returns one order, owners only. Operators use ListAll.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Order not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	if order.UserID != userID {
		return nil, errForbidden("Not authorized to view this order")
	}
	return order, nil
}

// ListAll returns every order, most recent first. Operator surface.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, errInternal(err)
	}
	return orders, nil
}

// UpdateStatus updates the order status and/or payment status. Empty
// fields are left untouched. Status moves must follow the lifecycle;
// payment status only needs to be a known value.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status, paymentStatus string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Order not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	if status != "" {
		if _, known := nextOrderStatuses[status]; !known {
			return nil, errValidation("Invalid order status")
		}
		if !legalTransition(order.Status, status) {
			return nil, errValidation(fmt.Sprintf("Cannot change order status from %s to %s", order.Status, status))
		}
		order.Status = status
	}
	if paymentStatus != "" {
		if !models.ValidPaymentStatus(paymentStatus) {
			return nil, errValidation("Invalid payment status")
		}
		order.PaymentStatus = paymentStatus
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, errInternal(err)
	}

	if s.notifier != nil {
		if user, err := s.users.FindByID(ctx, order.UserID); err == nil {
			go s.notifier.OrderStatusChanged(*user, *order)
		} else {
			s.logger.Warn().Err(err).Str("order", orderID.Hex()).Msg("skipping status notification, user lookup failed")
		}
	}
	return order, nil
}
