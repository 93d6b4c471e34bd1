package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderValidatePhoneNumber(t *testing.T) {
	testCases := []struct {
		name  string
		phone string
		valid bool
	}{
		{"plain digits", "1234567890", true},
		{"plus prefix", "+1234567890", true},
		{"plus one prefix", "+11234567890", true},
		{"nine digits", "123456789", true},
		{"fifteen digits after one", "1123456789012345", true},
		{"too short", "12345678", false},
		{"too long", "12345678901234567", false},
		{"letters", "12345abcde", false},
		{"empty", "", false},
		{"spaces inside", "123 456 7890", false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{
				CustomerName: "John Doe",
				PhoneNumber:  tt.phone,
				TotalPrice:   decimal.Zero,
			}
			err := order.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Details, "phone_number")
			}
		})
	}
}

func TestOrderValidateFields(t *testing.T) {
	t.Run("empty customer name", func(t *testing.T) {
		order := Order{CustomerName: "   ", PhoneNumber: "+1234567890"}
		var vErr *ValidationError
		require.ErrorAs(t, order.Validate(), &vErr)
		assert.Contains(t, vErr.Details, "customer_name")
	})

	t.Run("total above hard limit", func(t *testing.T) {
		order := Order{
			CustomerName: "John Doe",
			PhoneNumber:  "+1234567890",
			TotalPrice:   decimal.RequireFromString("10000.01"),
		}
		var vErr *ValidationError
		require.ErrorAs(t, order.Validate(), &vErr)
		assert.Contains(t, vErr.Details, "total_price")
	})

	t.Run("trims whitespace", func(t *testing.T) {
		order := Order{CustomerName: "  John Doe  ", PhoneNumber: " +1234567890 "}
		require.NoError(t, order.Validate())
		assert.Equal(t, "John Doe", order.CustomerName)
		assert.Equal(t, "+1234567890", order.PhoneNumber)
	})
}

func TestOrderItemTotal(t *testing.T) {
	pizza := &Pizza{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("12.99")}
	item := OrderItem{PizzaID: 1, Quantity: 2, Pizza: pizza}

	assert.True(t, item.ItemTotal().Equal(decimal.RequireFromString("25.98")),
		"item total = %s", item.ItemTotal())

	t.Run("without loaded pizza", func(t *testing.T) {
		bare := OrderItem{PizzaID: 1, Quantity: 2}
		assert.True(t, bare.ItemTotal().IsZero())
	})
}

func TestOrderRecomputeTotal(t *testing.T) {
	pizzaA := &Pizza{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("12.99")}
	pizzaB := &Pizza{ID: 2, Name: "Pepperoni", Price: decimal.RequireFromString("15.99")}

	order := Order{
		CustomerName: "John Doe",
		PhoneNumber:  "+1234567890",
		Items: []OrderItem{
			{PizzaID: 1, Quantity: 2, Pizza: pizzaA},
			{PizzaID: 2, Quantity: 1, Pizza: pizzaB},
		},
	}
	before := order.UpdatedAt
	order.RecomputeTotal()

	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("41.97")),
		"total = %s", order.TotalPrice)
	assert.True(t, order.UpdatedAt.After(before))
}

func TestOrderView(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	pizza := &Pizza{ID: 3, Name: "Pepperoni", Price: decimal.RequireFromString("15.99")}
	order := Order{
		ID:           7,
		CustomerName: "Jane",
		PhoneNumber:  "+1234567890",
		TotalPrice:   decimal.RequireFromString("15.99"),
		CreatedAt:    created,
		UpdatedAt:    created,
		Items: []OrderItem{
			{ID: 11, OrderID: 7, PizzaID: 3, Quantity: 1, Pizza: pizza},
		},
	}

	view := order.View()
	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, 15.99, view.TotalPrice)
	assert.Equal(t, "2024-05-01T12:30:00Z", view.CreatedAt)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Pepperoni", view.Items[0].PizzaName)
	assert.Equal(t, 15.99, view.Items[0].CalculatedItemTotal)
}
