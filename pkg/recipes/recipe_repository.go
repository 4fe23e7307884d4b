package recipes

import (
	"brewstock/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		GetSellableByID(ctx context.Context, id string) (*entities.Sellable, error)
		GetSellableByExternalID(ctx context.Context, externalID string) (*entities.Sellable, error)
		UpsertSellable(ctx context.Context, sellable *entities.Sellable) error
		UpdateSellable(ctx context.Context, sellable *entities.Sellable) error
		GetSellables(ctx context.Context, kind string, page, limit int) ([]*entities.Sellable, int64, error)

		GetCurrentVersion(ctx context.Context, sellableID string) (*entities.RecipeVersion, error)
		GetMaxVersion(ctx context.Context, sellableID string) (int, error)
		CreateVersion(ctx context.Context, version *entities.RecipeVersion) error
		SupersedeAndCreate(ctx context.Context, sellableID string, version *entities.RecipeVersion) error
		GetVersions(ctx context.Context, sellableID string, page, limit int) ([]*entities.RecipeVersion, int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetSellableByID(ctx context.Context, id string) (*entities.Sellable, error) {
	var sellable entities.Sellable
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sellable).Error; err != nil {
		return nil, err
	}
	return &sellable, nil
}

func (r *recipeRepository) GetSellableByExternalID(ctx context.Context, externalID string) (*entities.Sellable, error) {
	var sellable entities.Sellable
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&sellable).Error; err != nil {
		return nil, err
	}
	return &sellable, nil
}

func (r *recipeRepository) UpsertSellable(ctx context.Context, sellable *entities.Sellable) error {
	var existing entities.Sellable
	err := r.db.WithContext(ctx).Where("external_id = ?", sellable.ExternalID).First(&existing).Error
	if err == nil {
		sellable.ID = existing.ID
		sellable.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(sellable).Error
	}
	return r.db.WithContext(ctx).Create(sellable).Error
}

func (r *recipeRepository) UpdateSellable(ctx context.Context, sellable *entities.Sellable) error {
	return r.db.WithContext(ctx).Save(sellable).Error
}

func (r *recipeRepository) GetSellables(ctx context.Context, kind string, page, limit int) ([]*entities.Sellable, int64, error) {
	var sellables []*entities.Sellable
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.Sellable{})
	if kind != "all" && kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&sellables).Error; err != nil {
		return nil, 0, err
	}

	return sellables, count, nil
}

func (r *recipeRepository) GetCurrentVersion(ctx context.Context, sellableID string) (*entities.RecipeVersion, error) {
	var version entities.RecipeVersion
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("sellable_id = ? AND status = ? AND effective_to IS NULL", sellableID, entities.RecipeStatusCurrent).
		First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *recipeRepository) GetMaxVersion(ctx context.Context, sellableID string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&entities.RecipeVersion{}).
		Where("sellable_id = ?", sellableID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error
	return max, err
}

func (r *recipeRepository) CreateVersion(ctx context.Context, version *entities.RecipeVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// SupersedeAndCreate closes out the current version and inserts the new one
// in a single transaction, so two concurrently-current versions can never be
// observed.
func (r *recipeRepository) SupersedeAndCreate(ctx context.Context, sellableID string, version *entities.RecipeVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&entities.RecipeVersion{}).
			Where("sellable_id = ? AND status = ? AND effective_to IS NULL", sellableID, entities.RecipeStatusCurrent).
			Updates(map[string]interface{}{
				"status":       entities.RecipeStatusSuperseded,
				"effective_to": now,
			}).Error; err != nil {
			return err
		}
		return tx.Create(version).Error
	})
}

func (r *recipeRepository) GetVersions(ctx context.Context, sellableID string, page, limit int) ([]*entities.RecipeVersion, int64, error) {
	var versions []*entities.RecipeVersion
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.RecipeVersion{}).Where("sellable_id = ?", sellableID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("sellable_id = ?", sellableID).
		Offset(offset).
		Limit(limit).
		Order("version desc").
		Find(&versions).Error; err != nil {
		return nil, 0, err
	}

	return versions, count, nil
}
