package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Basic international phone format: optional "+", optional "1", 9-15 digits
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var maxOrderTotalPrice = decimal.NewFromInt(10000)

// Order represents a customer order. It owns its OrderItems: the pair is
// created atomically and deleting an order cascades to its items.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerName string          `gorm:"type:varchar(100);not null;index" json:"customer_name"`
	PhoneNumber  string          `gorm:"type:varchar(20);not null;index" json:"phone_number"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_price"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// TableName keeps the original plural table name ("order" is a reserved word)
func (Order) TableName() string {
	return "orders"
}

// Validate checks the order's field-level constraints and normalizes
// whitespace. Item-level and aggregate rules are enforced by the service.
func (o *Order) Validate() error {
	details := map[string]interface{}{}

	o.CustomerName = strings.TrimSpace(o.CustomerName)
	if o.CustomerName == "" {
		details["customer_name"] = "Customer name cannot be empty"
	} else if len(o.CustomerName) > 100 {
		details["customer_name"] = "Customer name cannot exceed 100 characters"
	}

	o.PhoneNumber = strings.TrimSpace(o.PhoneNumber)
	if !phonePattern.MatchString(o.PhoneNumber) {
		details["phone_number"] = "Phone number must be in valid international format"
	}

	if o.TotalPrice.IsNegative() {
		details["total_price"] = "Total price cannot be negative"
	} else if o.TotalPrice.GreaterThan(maxOrderTotalPrice) {
		details["total_price"] = "Total price cannot exceed $10,000"
	}

	if len(details) > 0 {
		return NewValidationError("Validation failed", details)
	}
	return nil
}

// RecomputeTotal sets TotalPrice from the sum of the item totals, rounded to
// 2 decimal places, and refreshes UpdatedAt. Items must have their Pizza
// relation loaded.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].ItemTotal())
	}
	o.TotalPrice = total.Round(2)
	o.UpdatedAt = time.Now().UTC()
}

// OrderView is the canonical serialized form of an order with nested items
type OrderView struct {
	ID           uint            `json:"id"`
	CustomerName string          `json:"customer_name"`
	PhoneNumber  string          `json:"phone_number"`
	TotalPrice   float64         `json:"total_price"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	Items        []OrderItemView `json:"items"`
}

// View converts the order to its canonical response form. Timestamps are
// ISO-8601 in UTC; items appear in creation order.
func (o *Order) View() OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, o.Items[i].View())
	}
	return OrderView{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
		TotalPrice:   o.TotalPrice.InexactFloat64(),
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    o.UpdatedAt.UTC().Format(time.RFC3339),
		Items:        items,
	}
}
