package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
)

// PizzaService provides methods to interact with the pizza catalog
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas ordered by name
	GetAllPizzas() ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id uint) (models.Pizza, error)
	// CreatePizza creates a new pizza in the catalog
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza updates an existing pizza in the catalog
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza by its ID; fails while any order item references it
	DeletePizza(id uint) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Order("name ASC").Find(&pizzas).Error; err != nil {
		return nil, models.NewDatabaseError("failed to retrieve pizzas", err)
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, models.NewResourceNotFoundError("Pizza", id)
		}
		return models.Pizza{}, models.NewDatabaseError("failed to retrieve pizza", err)
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := pizza.Validate(); err != nil {
		return models.Pizza{}, err
	}
	if err := s.checkNameAvailable(pizza.Name, 0); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, models.NewDatabaseError("failed to create pizza", err)
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	if _, err := s.GetPizzaByID(pizza.ID); err != nil {
		return models.Pizza{}, err
	}
	if err := pizza.Validate(); err != nil {
		return models.Pizza{}, err
	}
	if err := s.checkNameAvailable(pizza.Name, pizza.ID); err != nil {
		return models.Pizza{}, err
	}
	if err := s.db.Save(&pizza).Error; err != nil {
		return models.Pizza{}, models.NewDatabaseError("failed to update pizza", err)
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(id uint) error {
	if _, err := s.GetPizzaByID(id); err != nil {
		return err
	}

	// Restrict-delete: a pizza referenced by an order item must survive
	var refs int64
	if err := s.db.Model(&models.OrderItem{}).Where("pizza_id = ?", id).Count(&refs).Error; err != nil {
		return models.NewDatabaseError("failed to check pizza references", err)
	}
	if refs > 0 {
		return models.NewBusinessRuleError(
			"Pizza is referenced by existing orders and cannot be deleted",
			map[string]interface{}{"pizza_id": id, "referencing_items": refs},
		)
	}

	if err := s.db.Delete(&models.Pizza{}, id).Error; err != nil {
		return models.NewDatabaseError("failed to delete pizza", err)
	}
	return nil
}

// checkNameAvailable enforces the unique pizza name ahead of the database
// constraint so the client gets a typed error instead of a driver message
func (s *pizzaService) checkNameAvailable(name string, excludeID uint) error {
	var count int64
	query := s.db.Model(&models.Pizza{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return models.NewDatabaseError("failed to check pizza name", err)
	}
	if count > 0 {
		return models.NewBusinessRuleError(
			"Pizza name already exists",
			map[string]interface{}{"name": name},
		)
	}
	return nil
}
