package services

import "nambikkai-store/models"

// lineTotal is the one place the line-item price formula lives. Cart
// totals and order totals both go through it.
func lineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// cartTotal sums a cart's line items using each item's price-at-add.
func cartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += lineTotal(item.Price, item.Quantity)
	}
	return total
}

// orderTotal sums an order snapshot's line items.
func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += lineTotal(item.Price, item.Quantity)
	}
	return total
}
