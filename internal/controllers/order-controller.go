package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
)

// OrderController handles HTTP requests related to customer orders
type OrderController interface {
	// CreateOrder creates a new order with its items
	CreateOrder(c *gin.Context)
	// GetAllOrders retrieves all orders, newest first
	GetAllOrders(c *gin.Context)
	// GetOrderByID retrieves an order by its ID
	GetOrderByID(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

// CreateOrder godoc
// @Summary Create a new order
// @Description Create a new order with customer information and pizza items. The total is computed from live catalog prices. Requests are not deduplicated: retrying a successful request creates a second order.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order payload"
// @Success 201 {object} models.OrderView
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/orders/ [post]
func (c *orderController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	order, err := c.service.CreateOrder(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"customer": order.CustomerName,
		"total":    order.TotalPrice.StringFixed(2),
	}).Info("Order created successfully")
	ctx.JSON(http.StatusCreated, order.View())
}

// GetAllOrders godoc
// @Summary Retrieve all orders
// @Description Get all orders with their items, newest first
// @Tags orders
// @Accept json
// @Produce json
// @Success 200 {array} models.OrderView
// @Failure 500 {object} models.APIError
// @Router /api/orders/ [get]
func (c *orderController) GetAllOrders(ctx *gin.Context) {
	orders, err := c.service.GetAllOrders()
	if err != nil {
		respondError(ctx, err)
		return
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, orders[i].View())
	}
	ctx.JSON(http.StatusOK, views)
}

// GetOrderByID godoc
// @Summary Retrieve a specific order
// @Description Get order details with nested items by order ID
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.OrderView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [get]
func (c *orderController) GetOrderByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.GetOrderByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order.View())
}
