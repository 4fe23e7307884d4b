package main

import (
	"context"
	"errors"

	"brewstock/cmd/config"
	migration "brewstock/cmd/database/migrate"
	"brewstock/domain"
	"brewstock/entities"
	"brewstock/internal/utils"
	"brewstock/pkg/inventory"
	"brewstock/pkg/recipes"
	"brewstock/pkg/units"

	"github.com/gofiber/fiber/v2/log"
)

// Seeds a development database with a small menu: a few inventory items, two
// sellables and their recipes.
func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	inventoryRepository := inventory.NewInventoryRepository(db)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	recipeRepository := recipes.NewRecipeRepository(db)
	recipeService := recipes.NewRecipeService(recipeRepository, nil)

	items := []domain.AddInventoryItemRequest{
		{Name: "Whole Milk", Unit: units.Gallon, UnitCost: 4.25, PackSize: 1, Stock: 6, LowStockThreshold: 2, Category: "dairy", Supplier: "Hudson Dairy"},
		{Name: "Oat Milk", Unit: units.Liter, UnitCost: 3.1, PackSize: 6, Stock: 12, LowStockThreshold: 4, Category: "alt-milk", Supplier: "Planted Co"},
		{Name: "Espresso Beans", Unit: units.Pound, UnitCost: 12.5, PackSize: 5, Stock: 25, LowStockThreshold: 10, Category: "coffee", Supplier: "Roastery"},
		{Name: "Vanilla Syrup", Unit: units.Milliliter, UnitCost: 0.012, PackSize: 750, Stock: 2250, LowStockThreshold: 750, Category: "syrup", Supplier: "Monin"},
		{Name: "12oz Cup", Unit: units.Each, UnitCost: 0.09, PackSize: 500, Stock: 1500, LowStockThreshold: 500, Category: "supplies", Supplier: "PackRight"},
	}
	for _, req := range items {
		if _, err := inventoryService.AddItem(ctx, req); err != nil {
			log.Fatalf("failed to seed inventory item %q: %v", req.Name, err)
		}
	}

	latte := &entities.Sellable{
		ExternalID: "seed-latte",
		Name:       "Latte",
		Kind:       entities.SellableKindProduct,
		Category:   "espresso drinks",
		Price:      4.5,
	}
	oatMilkMod := &entities.Sellable{
		ExternalID: "seed-oat-milk",
		Name:       "Oat Milk Substitute",
		Kind:       entities.SellableKindModifier,
		Category:   "milk options",
		Price:      0.75,
	}
	for _, sellable := range []*entities.Sellable{latte, oatMilkMod} {
		if err := recipeRepository.UpsertSellable(ctx, sellable); err != nil {
			log.Fatalf("failed to seed sellable %q: %v", sellable.Name, err)
		}
	}

	latteRecipe := domain.CreateRecipeVersionRequest{
		SellableID: latte.ID.String(),
		Lines: []domain.RecipeLineSpec{
			{Label: "espresso", Candidates: []string{"espresso beans"}, Amount: 0.04, Unit: units.Pound},
			{Label: "steamed milk", Candidates: []string{"whole milk"}, Amount: 10, Unit: units.Ounce},
			{Label: "cup", Candidates: []string{"12oz cup"}, Amount: 1, Unit: units.Each},
		},
	}
	oatRecipe := domain.CreateRecipeVersionRequest{
		SellableID: oatMilkMod.ID.String(),
		Lines: []domain.RecipeLineSpec{
			{Label: "oat milk", Candidates: []string{"oat milk"}, Amount: 10, Unit: units.Ounce},
		},
	}

	// Re-running the seed leaves existing current versions alone.
	for _, req := range []domain.CreateRecipeVersionRequest{latteRecipe, oatRecipe} {
		if _, err := recipeService.CreateVersion(ctx, req); err != nil &&
			!errors.Is(err, domain.ErrRecipeVersionConflict) {
			log.Fatalf("failed to seed recipe for %s: %v", req.SellableID, err)
		}
	}

	log.Info("seed complete")
}
