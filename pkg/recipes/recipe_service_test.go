package recipes

import (
	"brewstock/domain"
	"brewstock/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryRecipeRepository keeps everything in slices so service behavior can be
// tested without a database.
type memoryRecipeRepository struct {
	sellables map[string]*entities.Sellable
	versions  []*entities.RecipeVersion
}

func newMemoryRecipeRepository() *memoryRecipeRepository {
	return &memoryRecipeRepository{sellables: make(map[string]*entities.Sellable)}
}

func (m *memoryRecipeRepository) addSellable(name, kind string) *entities.Sellable {
	sellable := &entities.Sellable{ID: uuid.New(), ExternalID: "ext-" + name, Name: name, Kind: kind}
	m.sellables[sellable.ID.String()] = sellable
	return sellable
}

func (m *memoryRecipeRepository) GetSellableByID(_ context.Context, id string) (*entities.Sellable, error) {
	if sellable, ok := m.sellables[id]; ok {
		return sellable, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRecipeRepository) GetSellableByExternalID(_ context.Context, externalID string) (*entities.Sellable, error) {
	for _, sellable := range m.sellables {
		if sellable.ExternalID == externalID {
			return sellable, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRecipeRepository) UpsertSellable(_ context.Context, sellable *entities.Sellable) error {
	if sellable.ID == uuid.Nil {
		sellable.ID = uuid.New()
	}
	m.sellables[sellable.ID.String()] = sellable
	return nil
}

func (m *memoryRecipeRepository) UpdateSellable(_ context.Context, sellable *entities.Sellable) error {
	m.sellables[sellable.ID.String()] = sellable
	return nil
}

func (m *memoryRecipeRepository) GetSellables(_ context.Context, kind string, _, _ int) ([]*entities.Sellable, int64, error) {
	var result []*entities.Sellable
	for _, sellable := range m.sellables {
		if kind == "all" || kind == "" || sellable.Kind == kind {
			result = append(result, sellable)
		}
	}
	return result, int64(len(result)), nil
}

func (m *memoryRecipeRepository) GetCurrentVersion(_ context.Context, sellableID string) (*entities.RecipeVersion, error) {
	for _, version := range m.versions {
		if version.SellableID.String() == sellableID &&
			version.Status == entities.RecipeStatusCurrent && version.EffectiveTo == nil {
			return version, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRecipeRepository) GetMaxVersion(_ context.Context, sellableID string) (int, error) {
	max := 0
	for _, version := range m.versions {
		if version.SellableID.String() == sellableID && version.Version > max {
			max = version.Version
		}
	}
	return max, nil
}

func (m *memoryRecipeRepository) CreateVersion(_ context.Context, version *entities.RecipeVersion) error {
	version.ID = uuid.New()
	m.versions = append(m.versions, version)
	return nil
}

func (m *memoryRecipeRepository) SupersedeAndCreate(_ context.Context, sellableID string, version *entities.RecipeVersion) error {
	now := time.Now()
	for _, existing := range m.versions {
		if existing.SellableID.String() == sellableID &&
			existing.Status == entities.RecipeStatusCurrent && existing.EffectiveTo == nil {
			existing.Status = entities.RecipeStatusSuperseded
			existing.EffectiveTo = &now
		}
	}
	version.ID = uuid.New()
	m.versions = append(m.versions, version)
	return nil
}

func (m *memoryRecipeRepository) GetVersions(_ context.Context, sellableID string, _, _ int) ([]*entities.RecipeVersion, int64, error) {
	var result []*entities.RecipeVersion
	for _, version := range m.versions {
		if version.SellableID.String() == sellableID {
			result = append(result, version)
		}
	}
	return result, int64(len(result)), nil
}

func latteRequest(sellableID string, force bool) domain.CreateRecipeVersionRequest {
	return domain.CreateRecipeVersionRequest{
		SellableID: sellableID,
		Force:      force,
		Lines: []domain.RecipeLineSpec{
			{Label: "Milk", Candidates: []string{"whole milk", "milk"}, Amount: 10, Unit: "ounce", LossPercent: 1},
			{Label: "Espresso", Candidates: []string{"espresso beans"}, Amount: 18, Unit: "each", LossPercent: 0},
		},
	}
}

func TestCreateVersionFirstTime(t *testing.T) {
	repo := newMemoryRecipeRepository()
	service := NewRecipeService(repo, nil)
	latte := repo.addSellable("Latte", entities.SellableKindProduct)

	res, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), false))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Version)

	current, err := repo.GetCurrentVersion(context.Background(), latte.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.RecipeStatusCurrent, current.Status)
	assert.Nil(t, current.EffectiveTo)
	assert.Len(t, current.Lines, 2)
}

func TestCreateVersionIdempotentWithoutForce(t *testing.T) {
	repo := newMemoryRecipeRepository()
	service := NewRecipeService(repo, nil)
	latte := repo.addSellable("Latte", entities.SellableKindProduct)

	_, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), false))
	require.NoError(t, err)

	res, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), false))
	assert.ErrorIs(t, err, domain.ErrRecipeVersionConflict)
	assert.False(t, res.Created)
	assert.Equal(t, 1, res.Version)

	// Exactly one stored version after the no-op.
	assert.Len(t, repo.versions, 1)
}

func TestCreateVersionForceSupersedes(t *testing.T) {
	repo := newMemoryRecipeRepository()
	service := NewRecipeService(repo, nil)
	latte := repo.addSellable("Latte", entities.SellableKindProduct)

	_, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), false))
	require.NoError(t, err)

	res, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), true))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, res.Version)

	// The old version is closed out; only version 2 is current.
	currentCount := 0
	for _, version := range repo.versions {
		if version.EffectiveTo == nil {
			currentCount++
			assert.Equal(t, 2, version.Version)
			assert.Equal(t, entities.RecipeStatusCurrent, version.Status)
		} else {
			assert.Equal(t, entities.RecipeStatusSuperseded, version.Status)
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestCreateVersionValidation(t *testing.T) {
	repo := newMemoryRecipeRepository()
	service := NewRecipeService(repo, nil)
	latte := repo.addSellable("Latte", entities.SellableKindProduct)

	req := latteRequest(latte.ID.String(), false)
	req.Lines = nil
	_, err := service.CreateVersion(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyRecipe)

	req = latteRequest(latte.ID.String(), false)
	req.Lines[0].Amount = -1
	_, err = service.CreateVersion(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidLineQuantity)

	req = latteRequest(latte.ID.String(), false)
	req.Lines[0].LossPercent = 120
	_, err = service.CreateVersion(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidLossPercent)

	req = latteRequest(latte.ID.String(), false)
	req.Lines[0].Unit = "bushel"
	_, err = service.CreateVersion(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)

	_, err = service.CreateVersion(context.Background(), latteRequest(uuid.NewString(), false))
	assert.ErrorIs(t, err, domain.ErrSellableNotFound)
}

func TestResolveCurrent(t *testing.T) {
	repo := newMemoryRecipeRepository()
	service := NewRecipeService(repo, nil)
	latte := repo.addSellable("Latte", entities.SellableKindProduct)

	_, err := service.CreateVersion(context.Background(), latteRequest(latte.ID.String(), false))
	require.NoError(t, err)

	recipe, err := service.ResolveCurrent(context.Background(), latte.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, recipe.Version)
	require.Len(t, recipe.Lines, 2)
	assert.Equal(t, "Milk", recipe.Lines[0].Label)
	assert.Equal(t, []string{"whole milk", "milk"}, recipe.Lines[0].Candidates)
	assert.Equal(t, 10.0, recipe.Lines[0].Amount)

	_, err = service.ResolveCurrent(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
