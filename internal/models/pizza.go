package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Pizza represents a pizza available for ordering. Catalog rows are seeded at
// startup and read-only from the order workflow's perspective.
type Pizza struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Ingredients string          `gorm:"type:varchar(500);not null" json:"ingredients"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"type:varchar(255);not null" json:"image"`

	OrderItems []OrderItem `gorm:"foreignKey:PizzaID" json:"-"`
}

// TableName keeps the original singular table name
func (Pizza) TableName() string {
	return "pizza"
}

var maxPizzaPrice = decimal.NewFromInt(1000)

// Validate checks the pizza's field-level constraints and normalizes
// whitespace. Returns a ValidationError with per-field messages on failure.
func (p *Pizza) Validate() error {
	details := map[string]interface{}{}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		details["name"] = "Pizza name cannot be empty"
	} else if len(p.Name) > 100 {
		details["name"] = "Pizza name cannot exceed 100 characters"
	}

	p.Ingredients = strings.TrimSpace(p.Ingredients)
	if p.Ingredients == "" {
		details["ingredients"] = "Pizza ingredients cannot be empty"
	} else if len(p.Ingredients) > 500 {
		details["ingredients"] = "Pizza ingredients cannot exceed 500 characters"
	}

	if p.Price.LessThanOrEqual(decimal.Zero) {
		details["price"] = "Pizza price must be positive"
	} else if p.Price.GreaterThan(maxPizzaPrice) {
		details["price"] = "Pizza price cannot exceed $1000"
	}

	if len(details) > 0 {
		return NewValidationError("Validation failed", details)
	}
	return nil
}

// PizzaView is the canonical serialized form of a pizza. Prices are
// fixed-point internally and become floats only here.
type PizzaView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Ingredients string  `json:"ingredients"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// View converts the pizza to its canonical response form
func (p *Pizza) View() PizzaView {
	return PizzaView{
		ID:          p.ID,
		Name:        p.Name,
		Ingredients: p.Ingredients,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
	}
}
