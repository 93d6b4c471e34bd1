package models

import (
	"fmt"
	"strings"
)

// Limits enforced at structural validation, before any catalog lookup
const (
	MinOrderItems   = 1
	MaxOrderItems   = 20
	MinItemQuantity = 1
	MaxItemQuantity = 50
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	PizzaID  uint `json:"pizza_id"`
	Quantity int  `json:"quantity"`
}

// CreateOrderRequest is the payload accepted by POST /api/orders/
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	PhoneNumber  string             `json:"phone_number"`
	Items        []OrderItemRequest `json:"items"`
}

// Validate performs structural validation of the request: presence, length
// bounds, phone format, item count and per-item quantity bounds. All field
// failures are collected into one ValidationError so clients see every
// problem at once. Referential and aggregate rules are checked later by the
// order service.
func (r *CreateOrderRequest) Validate() error {
	details := map[string]interface{}{}

	r.CustomerName = strings.TrimSpace(r.CustomerName)
	if r.CustomerName == "" {
		details["customer_name"] = "Customer name is required"
	} else if len(r.CustomerName) > 100 {
		details["customer_name"] = "Customer name must be between 1 and 100 characters"
	}

	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if r.PhoneNumber == "" {
		details["phone_number"] = "Phone number is required"
	} else if !phonePattern.MatchString(r.PhoneNumber) {
		details["phone_number"] = "Phone number must be a valid international format (e.g., +1234567890)"
	}

	if len(r.Items) < MinOrderItems || len(r.Items) > MaxOrderItems {
		details["items"] = fmt.Sprintf("Order must have between %d and %d items", MinOrderItems, MaxOrderItems)
	} else {
		for idx, item := range r.Items {
			if item.PizzaID < 1 {
				details[fmt.Sprintf("items.%d.pizza_id", idx)] = "Pizza ID must be a positive integer"
			}
			if item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity {
				details[fmt.Sprintf("items.%d.quantity", idx)] = fmt.Sprintf("Quantity must be between %d and %d", MinItemQuantity, MaxItemQuantity)
			}
		}
	}

	if len(details) > 0 {
		return NewValidationError("Validation failed", details)
	}
	return nil
}

// PizzaIDs returns the set of distinct pizza ids referenced by the request
func (r *CreateOrderRequest) PizzaIDs() []uint {
	seen := make(map[uint]bool, len(r.Items))
	ids := make([]uint, 0, len(r.Items))
	for _, item := range r.Items {
		if !seen[item.PizzaID] {
			seen[item.PizzaID] = true
			ids = append(ids, item.PizzaID)
		}
	}
	return ids
}
