package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"golang-marketplace-backend/configs"
	"golang-marketplace-backend/internal/cartstore"
	"golang-marketplace-backend/internal/handlers"
	"golang-marketplace-backend/internal/middleware"
	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/repositories"
	"golang-marketplace-backend/internal/services"
	"golang-marketplace-backend/pkg/auth"
	"golang-marketplace-backend/pkg/cache"
	"golang-marketplace-backend/pkg/database"
	"golang-marketplace-backend/pkg/messaging"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if config.Server.Mode == "release" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connections
	db, err := database.NewDatabase(config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to databases")
	}
	defer db.Close()

	if db.MongoDB == nil {
		logrus.Fatal("MongoDB connection is required for the product catalog")
	}

	// Auto-migrate PostgreSQL tables
	if err := autoMigratePostgres(db); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize Redis cache. Carts fall back to in-process storage when
	// Redis is unreachable, so a dev box can run without it.
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache != nil {
		defer redisCache.Close()
	}

	// Initialize Kafka
	var kafkaProducer *messaging.KafkaProducer
	if config.Kafka.Enabled {
		kafkaProducer = messaging.NewKafkaProducer(config.Kafka.Brokers)
		defer kafkaProducer.Close()
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, config.JWT.RefreshExpiryDays)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.Postgres)
	restaurantRepo := repositories.NewRestaurantRepository(db.Postgres)
	orderRepo := repositories.NewOrderRepository(db.Postgres)

	// MongoDB repositories
	productRepo := repositories.NewProductRepository(db.MongoDB)
	categoryRepo := repositories.NewProductCategoryRepository(db.MongoDB)

	// Session carts live in Redis so they survive restarts and are
	// shared across instances.
	var storeFactory services.StoreFactory
	if redisCache != nil {
		storeFactory = cartstore.NewRedisFactory(redisCache)
	} else {
		logrus.Warn("Redis unavailable, carts will not survive restarts")
		storeFactory = cartstore.NewMemoryFactory()
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, jwtManager, redisCache)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	productService := services.NewProductService(productRepo, categoryRepo, redisCache, kafkaProducer, config.Kafka.Brokers)
	cartService := services.NewCartService(storeFactory, productRepo, restaurantRepo, kafkaProducer, config.Kafka.Brokers)
	orderService := services.NewOrderService(orderRepo, cartService, kafkaProducer, config.Kafka.Brokers)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	productHandler := handlers.NewProductHandler(productService, restaurantService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, restaurantService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-marketplace-backend",
		})
	})

	// API routes
	api := router.Group("/api/v1")

	// Register routes
	authHandler.RegisterRoutes(api, authMiddleware)
	restaurantHandler.RegisterRoutes(api, authMiddleware)
	productHandler.RegisterRoutes(api, authMiddleware)
	cartHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api, authMiddleware)

	logrus.Infof("Server starting on port %s", config.Server.Port)
	logrus.Fatal(router.Run(":" + config.Server.Port))
}

func autoMigratePostgres(db *database.Database) error {
	return db.Postgres.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Order{},
	)
}
