package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
)

// OrderService provides methods to create and query customer orders
type OrderService interface {
	// CreateOrder validates the request, checks referential integrity and the
	// order ceiling, and persists the order with its items atomically.
	// Note: there is no idempotency key, so retrying a successful request
	// creates a second order with a new identifier.
	CreateOrder(req models.CreateOrderRequest) (models.Order, error)
	// GetAllOrders retrieves all orders newest first, items included
	GetAllOrders() ([]models.Order, error)
	// GetOrderByID retrieves one order with its items
	GetOrderByID(id uint) (models.Order, error)
}

// orderService is the implementation of the OrderService interface
type orderService struct {
	db            *gorm.DB
	maxOrderTotal decimal.Decimal
}

// NewOrderService creates a new instance of OrderService. maxOrderTotal is
// the per-order ceiling applied against live catalog prices.
func NewOrderService(db *gorm.DB, maxOrderTotal float64) OrderService {
	return &orderService{
		db:            db,
		maxOrderTotal: decimal.NewFromFloat(maxOrderTotal),
	}
}

func (s *orderService) CreateOrder(req models.CreateOrderRequest) (models.Order, error) {
	// Structural validation happens before any catalog lookup
	if err := req.Validate(); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pizzaByID, err := s.resolvePizzas(tx, req.PizzaIDs())
		if err != nil {
			return err
		}

		// Aggregate cap against live catalog prices, never client input
		prospective := decimal.Zero
		for _, item := range req.Items {
			pizza := pizzaByID[item.PizzaID]
			prospective = prospective.Add(pizza.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if prospective.GreaterThan(s.maxOrderTotal) {
			return models.NewBusinessRuleError(
				fmt.Sprintf("Order total cannot exceed $%s", s.maxOrderTotal.StringFixed(2)),
				map[string]interface{}{
					"order_total":     prospective.Round(2).InexactFloat64(),
					"max_order_total": s.maxOrderTotal.InexactFloat64(),
				},
			)
		}

		now := time.Now().UTC()
		order = models.Order{
			CustomerName: req.CustomerName,
			PhoneNumber:  req.PhoneNumber,
			TotalPrice:   decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := order.Validate(); err != nil {
			return err
		}
		// Create the order row first to obtain its identifier
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return models.NewDatabaseError("failed to create order", err)
		}

		for _, itemReq := range req.Items {
			pizza := pizzaByID[itemReq.PizzaID]
			item := models.OrderItem{
				OrderID:  order.ID,
				PizzaID:  itemReq.PizzaID,
				Quantity: itemReq.Quantity,
			}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return models.NewDatabaseError("failed to create order item", err)
			}
			item.Pizza = pizza
			order.Items = append(order.Items, item)
		}

		// Total is derived from the persisted lines, rounded to 2 decimals
		order.RecomputeTotal()
		if err := order.Validate(); err != nil {
			return err
		}
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"total_price": order.TotalPrice,
			"updated_at":  order.UpdatedAt,
		}).Error; err != nil {
			return models.NewDatabaseError("failed to update order total", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	// Re-read through the normal query path so the response matches a fetch
	return s.GetOrderByID(order.ID)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_item.id ASC") }).
		Preload("Items.Pizza").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, models.NewDatabaseError("failed to retrieve orders", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_item.id ASC") }).
		Preload("Items.Pizza").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, models.NewResourceNotFoundError("Order", id)
		}
		return models.Order{}, models.NewDatabaseError("failed to retrieve order", err)
	}
	return order, nil
}

// resolvePizzas loads the requested pizzas in one query and reports any
// missing identifiers as an order-independent set
func (s *orderService) resolvePizzas(tx *gorm.DB, ids []uint) (map[uint]*models.Pizza, error) {
	var pizzas []models.Pizza
	if err := tx.Where("id IN ?", ids).Find(&pizzas).Error; err != nil {
		return nil, models.NewDatabaseError("failed to resolve pizzas", err)
	}

	pizzaByID := make(map[uint]*models.Pizza, len(pizzas))
	for i := range pizzas {
		pizzaByID[pizzas[i].ID] = &pizzas[i]
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := pizzaByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, models.NewBusinessRuleError(
			fmt.Sprintf("Pizzas with IDs %v do not exist", missing),
			map[string]interface{}{"missing_pizza_ids": missing},
		)
	}
	return pizzaByID, nil
}
