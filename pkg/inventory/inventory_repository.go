package inventory

import (
	"brewstock/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		AddItem(ctx context.Context, item *entities.InventoryItem) error
		GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		GetItemByExternalID(ctx context.Context, externalID string) (*entities.InventoryItem, error)
		UpdateItem(ctx context.Context, item *entities.InventoryItem) error
		UpdateItemWithHistory(ctx context.Context, item *entities.InventoryItem, entry *entities.CostHistory) error
		ArchiveItem(ctx context.Context, id string) error
		GetItems(ctx context.Context, category string, page, limit int) ([]*entities.InventoryItem, int64, error)
		Snapshot(ctx context.Context) ([]*entities.InventoryItem, error)
		GetLowStockItems(ctx context.Context) ([]*entities.InventoryItem, error)

		AddCostHistory(ctx context.Context, entry *entities.CostHistory) error
		GetCostHistory(ctx context.Context, itemID string, page, limit int) ([]*entities.CostHistory, int64, error)
		GetCostHistoryByID(ctx context.Context, id string) (*entities.CostHistory, error)

		ApplyConsumption(ctx context.Context, deductions map[string]float64) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) GetItemByExternalID(ctx context.Context, externalID string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateItemWithHistory saves a cost change and its audit row in one
// transaction so the history can never fall behind the item.
func (r *inventoryRepository) UpdateItemWithHistory(ctx context.Context, item *entities.InventoryItem, entry *entities.CostHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *inventoryRepository) ArchiveItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{}).Error
}

func (r *inventoryRepository) GetItems(ctx context.Context, category string, page, limit int) ([]*entities.InventoryItem, int64, error) {
	var items []*entities.InventoryItem
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.InventoryItem{})

	if category != "all" && category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// Snapshot returns every active item, ordered by creation time so the
// matcher's first-seen tie break is deterministic.
func (r *inventoryRepository) Snapshot(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetLowStockItems(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("low_stock_threshold > 0 AND stock <= low_stock_threshold").
		Order("stock asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) AddCostHistory(ctx context.Context, entry *entities.CostHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *inventoryRepository) GetCostHistory(ctx context.Context, itemID string, page, limit int) ([]*entities.CostHistory, int64, error) {
	var entries []*entities.CostHistory
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.CostHistory{}).Where("inventory_item_id = ?", itemID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, count, nil
}

func (r *inventoryRepository) GetCostHistoryByID(ctx context.Context, id string) (*entities.CostHistory, error) {
	var entry entities.CostHistory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyConsumption deducts every entry in one transaction so a sale line's
// deductions commit together or not at all. Stock floors at zero.
func (r *inventoryRepository) ApplyConsumption(ctx context.Context, deductions map[string]float64) error {
	if len(deductions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for itemID, quantity := range deductions {
			result := tx.Model(&entities.InventoryItem{}).
				Where("id = ?", itemID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("inventory item missing during deduction: " + itemID)
			}
		}
		return nil
	})
}
