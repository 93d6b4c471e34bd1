package models

import "github.com/shopspring/decimal"

// OrderItem is a single line of an order, referencing a pizza by identity.
// A pizza referenced by an item cannot be deleted (FK restrict); deleting the
// owning order removes its items (FK cascade).
type OrderItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	OrderID  uint `gorm:"not null;index" json:"order_id"`
	PizzaID  uint `gorm:"not null;index" json:"pizza_id"`
	Quantity int  `gorm:"not null" json:"quantity"`

	Order *Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Pizza *Pizza `gorm:"foreignKey:PizzaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName keeps the original singular table name
func (OrderItem) TableName() string {
	return "order_item"
}

// ItemTotal is the derived line total: quantity x live pizza price, rounded
// to 2 decimal places. The price is never stored on the item row; it is
// always read through the Pizza relation.
func (i *OrderItem) ItemTotal() decimal.Decimal {
	if i.Pizza == nil {
		return decimal.Zero
	}
	return i.Pizza.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// OrderItemView is the canonical serialized form of an order line, with the
// pizza name denormalized through the live relation
type OrderItemView struct {
	ID                  uint    `json:"id"`
	OrderID             uint    `json:"order_id"`
	PizzaID             uint    `json:"pizza_id"`
	PizzaName           string  `json:"pizza_name"`
	Quantity            int     `json:"quantity"`
	CalculatedItemTotal float64 `json:"calculated_item_total"`
}

// View converts the item to its canonical response form
func (i *OrderItem) View() OrderItemView {
	view := OrderItemView{
		ID:                  i.ID,
		OrderID:             i.OrderID,
		PizzaID:             i.PizzaID,
		Quantity:            i.Quantity,
		CalculatedItemTotal: i.ItemTotal().InexactFloat64(),
	}
	if i.Pizza != nil {
		view.PizzaName = i.Pizza.Name
	}
	return view
}
