package config

import (
	"os"
	"time"

	"brewstock/internal/api/handlers"
	"brewstock/internal/api/routes"
	"brewstock/internal/middleware"
	"brewstock/internal/monitoring"
	"brewstock/internal/scheduler"
	"brewstock/internal/utils"
	"brewstock/internal/utils/storage"
	"brewstock/pkg/auth"
	"brewstock/pkg/catalog"
	"brewstock/pkg/consumption"
	"brewstock/pkg/inventory"
	"brewstock/pkg/jwt"
	applog "brewstock/pkg/logger"
	"brewstock/pkg/orders"
	"brewstock/pkg/payment"
	"brewstock/pkg/recipes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, *scheduler.Scheduler, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	zapLogger := applog.Must(applog.New())

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	metrics := monitoring.NewMetrics()

	// Repository
	inventoryRepository := inventory.NewInventoryRepository(db)
	recipeRepository := recipes.NewRecipeRepository(db)
	orderRepository := orders.NewOrderRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	authService := auth.NewAuthService(jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	recipeService := recipes.NewRecipeService(recipeRepository, s3)
	consumptionService := consumption.NewConsumptionService(recipeService, inventoryRepository)
	paymentService := payment.NewPaymentService()
	catalogClient := catalog.NewCatalogClient(
		utils.GetConfig("CATALOG_API_URL"),
		utils.GetConfig("CATALOG_API_TOKEN"),
	)
	catalogService := catalog.NewCatalogService(catalogClient, recipeRepository, inventoryRepository)
	orderService := orders.NewOrderService(
		orderRepository,
		recipeRepository,
		consumptionService,
		paymentService,
		metrics,
		applog.Named(zapLogger, "orders"),
	)

	// Handler
	authHandler := handlers.NewAuthHandler(authService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	consumptionHandler := handlers.NewConsumptionHandler(consumptionService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		AuthHandler:        authHandler,
		InventoryHandler:   inventoryHandler,
		RecipeHandler:      recipeHandler,
		ConsumptionHandler: consumptionHandler,
		OrderHandler:       orderHandler,
		CatalogHandler:     catalogHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()

	jobs := scheduler.NewScheduler(
		inventoryService,
		catalogService,
		metrics,
		applog.Named(zapLogger, "scheduler"),
	)

	return app, jobs, nil
}
