package catalog

import (
	"brewstock/domain"
	"brewstock/entities"
	"brewstock/pkg/inventory"
	"brewstock/pkg/matching"
	"brewstock/pkg/recipes"
	"brewstock/pkg/units"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	// CatalogService pulls the provider catalog and mirrors it locally:
	// sellables for everything orderable, inventory items for resellable
	// stock. Category and supplier are assigned from the declarative rule
	// tables rather than per-call keyword maps.
	CatalogService interface {
		Sync(ctx context.Context) (domain.CatalogSyncResult, error)
	}

	catalogService struct {
		client              CatalogClient
		recipeRepository    recipes.RecipeRepository
		inventoryRepository inventory.InventoryRepository
		categoryRules       *matching.RuleTable
		supplierRules       *matching.RuleTable
	}
)

func NewCatalogService(client CatalogClient, recipeRepository recipes.RecipeRepository, inventoryRepository inventory.InventoryRepository) CatalogService {
	return &catalogService{
		client:              client,
		recipeRepository:    recipeRepository,
		inventoryRepository: inventoryRepository,
		categoryRules:       matching.NewRuleTable(matching.DefaultCategoryRules),
		supplierRules:       matching.NewRuleTable(matching.DefaultSupplierRules),
	}
}

func (s *catalogService) Sync(ctx context.Context) (domain.CatalogSyncResult, error) {
	result := domain.CatalogSyncResult{}
	cursor := ""

	for {
		page, err := s.client.ListObjects(ctx, cursor)
		if err != nil {
			return result, err
		}

		for _, object := range page.Objects {
			if err := s.upsertObject(ctx, object, &result); err != nil {
				return result, err
			}
		}

		if page.Cursor == "" {
			return result, nil
		}
		cursor = page.Cursor
	}
}

func (s *catalogService) upsertObject(ctx context.Context, object domain.CatalogObject, result *domain.CatalogSyncResult) error {
	kind := entities.SellableKindProduct
	if object.Type == "MODIFIER" {
		kind = entities.SellableKindModifier
	}

	sellable := entities.Sellable{
		ExternalID: object.ID,
		Name:       object.Name,
		Kind:       kind,
		Category:   s.categoryRules.Evaluate(object.Name, "uncategorized"),
		Price:      object.Price,
	}
	if err := s.recipeRepository.UpsertSellable(ctx, &sellable); err != nil {
		return err
	}
	result.SellablesUpserted++

	if !object.Resellable {
		return nil
	}

	// Resellable catalog objects are also stocked: mirror them into the
	// inventory catalog keyed by the provider id.
	unit := object.Unit
	if !units.IsSupported(unit) {
		unit = units.Each
	}
	packSize := object.PackSize
	if packSize < 1 {
		packSize = 1
	}
	cost, err := inventory.CostFromPack(object.PackCost, packSize)
	if err != nil {
		return err
	}

	existing, err := s.inventoryRepository.GetItemByExternalID(ctx, object.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item := entities.InventoryItem{
			Name:       object.Name,
			Unit:       unit,
			UnitCost:   cost.UnitCost,
			PackSize:   cost.PackSize,
			Category:   s.categoryRules.Evaluate(object.Name, "uncategorized"),
			Supplier:   s.supplierRules.Evaluate(object.Name, ""),
			ExternalID: object.ID,
			Resellable: true,
		}
		if err := s.inventoryRepository.AddItem(ctx, &item); err != nil {
			return err
		}
		result.ItemsUpserted++
		return nil
	}

	previousUnitCost := existing.UnitCost
	existing.Name = object.Name
	existing.UnitCost = cost.UnitCost
	existing.PackSize = cost.PackSize
	if previousUnitCost != cost.UnitCost {
		if err := s.inventoryRepository.UpdateItemWithHistory(ctx, existing, &entities.CostHistory{
			InventoryItemID:  existing.ID,
			PreviousUnitCost: previousUnitCost,
			NewUnitCost:      cost.UnitCost,
			PackSize:         cost.PackSize,
			Source:           "catalog_sync",
		}); err != nil {
			return err
		}
	} else if err := s.inventoryRepository.UpdateItem(ctx, existing); err != nil {
		return err
	}
	result.ItemsUpserted++
	return nil
}
