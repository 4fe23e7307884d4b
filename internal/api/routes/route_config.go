package routes

import (
	"brewstock/internal/api/handlers"
	"brewstock/internal/middleware"
	"brewstock/pkg/jwt"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                *fiber.App
	AuthHandler        handlers.AuthHandler
	InventoryHandler   handlers.InventoryHandler
	RecipeHandler      handlers.RecipeHandler
	ConsumptionHandler handlers.ConsumptionHandler
	OrderHandler       handlers.OrderHandler
	CatalogHandler     handlers.CatalogHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Inventory()
	c.Recipes()
	c.Orders()
	c.Catalog()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/login", c.AuthHandler.Login)
	}
}

func (c *Config) Inventory() {
	items := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))
	{
		items.Post("", c.InventoryHandler.AddItem)
		items.Get("", c.InventoryHandler.GetItems)
		items.Get("/low-stock", c.InventoryHandler.GetLowStock)
		items.Get("/:id", c.InventoryHandler.GetItemDetails)
		items.Put("/:id", c.InventoryHandler.UpdateItem)
		items.Delete("/:id", c.InventoryHandler.ArchiveItem)

		// Cost operations
		items.Patch("/:id/cost", c.InventoryHandler.UpdateCost)
		items.Post("/:id/restock", c.InventoryHandler.Restock)
		items.Post("/:id/revert-cost", c.InventoryHandler.RevertCost)
		items.Get("/:id/cost-history", c.InventoryHandler.GetCostHistory)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Post("", c.RecipeHandler.CreateVersion)
		recipes.Get("/:sellableId", c.RecipeHandler.GetCurrentRecipe)
		recipes.Get("/:sellableId/history", c.RecipeHandler.GetHistory)
	}

	sellables := c.App.Group("/api/v1/sellables", c.Middleware.AuthMiddleware(c.JWTService))
	{
		sellables.Get("", c.RecipeHandler.GetSellables)
		sellables.Post("/:sellableId/image", c.RecipeHandler.UploadSellableImage)
	}

	c.App.Post("/api/v1/consumption/compute",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.ConsumptionHandler.Compute)
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/v1/orders")
	{
		orders.Post("", c.OrderHandler.CreateOrder)
		orders.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.OrderHandler.GetOrders)
		orders.Get("/:id", c.OrderHandler.GetOrder)
	}
}

func (c *Config) Catalog() {
	c.App.Post("/api/v1/catalog/sync",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyAdmin,
		c.CatalogHandler.Sync)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.OrderHandler.PaymentWebhook)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
