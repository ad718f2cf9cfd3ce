package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories carried over from the storefront.
const (
	CategoryMillets   = "millets"
	CategoryPulses    = "pulses"
	CategoryRice      = "rice"
	CategorySpices    = "spices"
	CategoryOils      = "oils"
	CategoryDryFruits = "dry-fruits"
	CategoryOther     = "other"
)

// Categories lists every valid product category.
var Categories = []string{
	CategoryMillets, CategoryPulses, CategoryRice,
	CategorySpices, CategoryOils, CategoryDryFruits, CategoryOther,
}

// ValidCategory reports whether c is a known product category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Review is a customer review attached to a product.
type Review struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	UserName  string             `bson:"user_name" json:"userName"`
	Text      string             `bson:"text" json:"text"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Product represents a catalog product. Rating is derived from the
// reviews and never set directly.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Rating      float64            `bson:"rating" json:"rating"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	SKU         string             `bson:"sku" json:"sku"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
