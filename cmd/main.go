package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/franciscosanchezn/pizza-delivery-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizza-delivery-api/internal/config"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/controllers"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/database"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/middleware"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
)

var (
	db              *gorm.DB
	pizzaController controllers.PizzaController
	orderController controllers.OrderController
	chatController  controllers.ChatController
	configuration   *config.Config
)

// @title Pizza Delivery API
// @version 1.0
// @description A pizza ordering backend: catalog, transactional orders and a chat assistant
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	pizzaController = controllers.NewPizzaController(services.NewPizzaService(db))
	orderController = controllers.NewOrderController(services.NewOrderService(db, configuration.MaxOrderTotal))

	sessionTTL := time.Duration(configuration.ChatSessionTTLMinutes) * time.Minute
	chatStore := services.NewMemorySessionStore(sessionTTL)
	chatController = controllers.NewChatController(services.NewChatService(chatStore))

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds the catalog when it is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))

	// Seed only if the catalog is empty
	var count int64
	db.Model(&models.Pizza{}).Count(&count)
	if count == 0 {
		log.Info("Catalog is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Catalog already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the catalog with the initial pizzas
func seedDatabase() {
	pizzas := []models.Pizza{
		{Name: "Margherita", Ingredients: "Fresh mozzarella, tomato sauce, fresh basil", Price: decimal.RequireFromString("12.99"), Image: "images/margherita.jpg"},
		{Name: "Pepperoni", Ingredients: "Pepperoni, mozzarella, tomato sauce", Price: decimal.RequireFromString("15.99"), Image: "images/pepperoni.jpg"},
		{Name: "Vegetarian", Ingredients: "Bell peppers, mushrooms, onions, olives, mozzarella, tomato sauce", Price: decimal.RequireFromString("14.99"), Image: "images/vegetarian.jpg"},
		{Name: "Hawaiian", Ingredients: "Ham, pineapple, mozzarella, tomato sauce", Price: decimal.RequireFromString("16.99"), Image: "images/hawaiian.jpg"},
		{Name: "BBQ Chicken", Ingredients: "Grilled chicken, red onions, mozzarella, BBQ sauce", Price: decimal.RequireFromString("18.99"), Image: "images/bbq_chicken.jpg"},
		{Name: "Supreme", Ingredients: "Pepperoni, sausage, bell peppers, onions, mushrooms, olives, mozzarella, tomato sauce", Price: decimal.RequireFromString("20.99"), Image: "images/supreme.jpg"},
	}
	for _, pizza := range pizzas {
		db.Create(&pizza)
	}
	log.Infof("Seeded %d pizzas", len(pizzas))
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// Add this handler for testing.
// TODO remove when a real identity provider is wired in
func generateTestTokenHandler(c *gin.Context) {
	// Create test claims
	claims := jwt.MapClaims{
		"user": "test-user-123",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour * 24).Unix(), // 24 hours
		"iat":  time.Now().Unix(),
	}

	// Create token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(configuration.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      tokenString,
		"type":       "Bearer",
		"expires_in": 86400, // 24 hours in seconds
	})
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Test token generation endpoint
	router.GET("/test-token", generateTestTokenHandler)

	api := router.Group("/api")
	{
		pizzas := api.Group("/pizzas")
		{
			pizzas.GET("/", pizzaController.GetAllPizzas)
			pizzas.GET("/:id", pizzaController.GetPizzaByID)

			// Catalog management requires an admin token
			admin := pizzas.Group("")
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
		chat.Use(middleware.NewClientRateLimiter(20, time.Minute).Limit())
		{
			chat.POST("/", chatController.Chat)
			chat.GET("/history/:session_id", chatController.GetHistory)
			chat.DELETE("/clear/:session_id", chatController.ClearHistory)
			chat.GET("/stats", chatController.GetStats)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"service":     "pizza-delivery-api",
		"environment": config.GetEnvWithDefault("APP_ENV", "development"),
	})
}
