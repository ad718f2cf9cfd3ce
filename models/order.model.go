package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

// OrderItem is a line item snapshot taken at checkout. Name and price
// are copied so later catalog changes do not touch placed orders.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"productId"`
	ProductName string             `bson:"product_name" json:"productName"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
}

// Order represents a placed order. Only Status and PaymentStatus change
// after creation, and only through the admin surface.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"totalAmount"`
	ShippingAddress Address            `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	Status          string             `bson:"status" json:"status"`
	PaymentStatus   string             `bson:"payment_status" json:"paymentStatus"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
