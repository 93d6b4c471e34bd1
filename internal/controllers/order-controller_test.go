package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/middleware"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
)

// setupTestAPI wires the full route table against a per-test in-memory
// database seeded with Margherita (12.99) and Pepperoni (15.99)
func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Pizza{}, &models.Order{}, &models.OrderItem{}))

	pizzas := []models.Pizza{
		{Name: "Margherita", Ingredients: "Fresh mozzarella, tomato sauce, fresh basil", Price: decimal.RequireFromString("12.99"), Image: "images/margherita.jpg"},
		{Name: "Pepperoni", Ingredients: "Pepperoni, mozzarella, tomato sauce", Price: decimal.RequireFromString("15.99"), Image: "images/pepperoni.jpg"},
	}
	for i := range pizzas {
		require.NoError(t, db.Create(&pizzas[i]).Error)
	}

	middleware.SetJWTSecret("test-jwt-secret")

	pizzaController := NewPizzaController(services.NewPizzaService(db))
	orderController := NewOrderController(services.NewOrderService(db, 500))
	chatController := NewChatController(services.NewChatService(services.NewMemorySessionStore(time.Hour)))

	router := gin.New()
	api := router.Group("/api")
	{
		pizzasGroup := api.Group("/pizzas")
		{
			pizzasGroup.GET("/", pizzaController.GetAllPizzas)
			pizzasGroup.GET("/:id", pizzaController.GetPizzaByID)

			admin := pizzasGroup.Group("")
			admin.Use(middleware.JWTAuth(), middleware.RequireRole("admin"))
			{
				admin.POST("/", pizzaController.CreatePizza)
				admin.PUT("/:id", pizzaController.UpdatePizza)
				admin.DELETE("/:id", pizzaController.DeletePizza)
			}
		}

		orders := api.Group("/orders")
		{
			orders.POST("/", orderController.CreateOrder)
			orders.GET("/", orderController.GetAllOrders)
			orders.GET("/:id", orderController.GetOrderByID)
		}

		chat := api.Group("/chat")
		{
			chat.POST("/", chatController.Chat)
			chat.GET("/history/:session_id", chatController.GetHistory)
			chat.DELETE("/clear/:session_id", chatController.ClearHistory)
			chat.GET("/stats", chatController.GetStats)
		}
	}
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer_name": "John Doe",
		"phone_number":  "+1234567890",
		"items": []map[string]interface{}{
			{"pizza_id": 1, "quantity": 2},
			{"pizza_id": 2, "quantity": 1},
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders/", orderPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "John Doe", body["customer_name"])
	assert.Equal(t, 41.97, body["total_price"])

	items := body["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	second := items[1].(map[string]interface{})
	assert.Equal(t, "Margherita", first["pizza_name"])
	assert.Equal(t, 25.98, first["calculated_item_total"])
	assert.Equal(t, 15.99, second["calculated_item_total"])

	// Timestamps serialize as ISO-8601 UTC
	_, err := time.Parse(time.RFC3339, body["created_at"].(string))
	assert.NoError(t, err)
}

func TestCreateOrderEndpointValidationError(t *testing.T) {
	router, db := setupTestAPI(t)

	payload := orderPayload()
	payload["items"] = []map[string]interface{}{}

	w := doJSON(t, router, http.MethodPost, "/api/orders/", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Contains(t, body["details"].(map[string]interface{}), "items")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderEndpointMissingPizza(t *testing.T) {
	router, _ := setupTestAPI(t)

	payload := orderPayload()
	payload["items"] = []map[string]interface{}{
		{"pizza_id": 99, "quantity": 1},
	}

	w := doJSON(t, router, http.MethodPost, "/api/orders/", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "BUSINESS_RULE_ERROR", body["code"])
	assert.Contains(t, body["error"], "99")
}

func TestCreateOrderEndpointInvalidBody(t *testing.T) {
	router, _ := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decodeBody(t, w)["code"])
}

func TestGetOrdersEndpointNewestFirst(t *testing.T) {
	router, _ := setupTestAPI(t)

	first := doJSON(t, router, http.MethodPost, "/api/orders/", orderPayload())
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(t, router, http.MethodPost, "/api/orders/", orderPayload())
	require.Equal(t, http.StatusCreated, second.Code)

	w := doJSON(t, router, http.MethodGet, "/api/orders/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)

	firstID := decodeBody(t, first)["id"].(float64)
	secondID := decodeBody(t, second)["id"].(float64)
	assert.Equal(t, secondID, orders[0]["id"])
	assert.Equal(t, firstID, orders[1]["id"])

	// Two identical requests created two distinct orders
	assert.NotEqual(t, firstID, secondID)
}

func TestGetOrderByIDEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	created := doJSON(t, router, http.MethodPost, "/api/orders/", orderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	id := int(decodeBody(t, created)["id"].(float64))

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 41.97, decodeBody(t, w)["total_price"])
}

func TestGetOrderByIDEndpointNotFound(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/orders/12345", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "RESOURCE_NOT_FOUND", body["code"])
	assert.Equal(t, "Order with ID 12345 not found", body["error"])
}

func TestGetOrderByIDEndpointInvalidID(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/orders/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decodeBody(t, w)["code"])
}
