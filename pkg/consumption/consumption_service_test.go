package consumption

import (
	"brewstock/domain"
	"brewstock/entities"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRecipeService struct {
	recipes map[string]domain.RecipeResponse
}

func (s *stubRecipeService) ResolveCurrent(_ context.Context, sellableID string) (domain.RecipeResponse, error) {
	if recipe, ok := s.recipes[sellableID]; ok {
		return recipe, nil
	}
	return domain.RecipeResponse{}, domain.ErrRecipeNotFound
}

func (s *stubRecipeService) CreateVersion(_ context.Context, _ domain.CreateRecipeVersionRequest) (domain.CreateRecipeVersionResponse, error) {
	return domain.CreateRecipeVersionResponse{}, nil
}

func (s *stubRecipeService) GetHistory(_ context.Context, _ string, _, _ int) ([]domain.RecipeResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubRecipeService) GetSellables(_ context.Context, _ string, _, _ int) ([]domain.SellableResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubRecipeService) UploadSellableImage(_ context.Context, _ string, _ *multipart.FileHeader) (string, error) {
	return "", nil
}

type stubInventoryRepository struct {
	items      []*entities.InventoryItem
	deductions map[string]float64
}

func (s *stubInventoryRepository) Snapshot(_ context.Context) ([]*entities.InventoryItem, error) {
	return s.items, nil
}

func (s *stubInventoryRepository) ApplyConsumption(_ context.Context, deductions map[string]float64) error {
	s.deductions = deductions
	return nil
}

func (s *stubInventoryRepository) AddItem(_ context.Context, _ *entities.InventoryItem) error {
	return nil
}
func (s *stubInventoryRepository) GetItemByID(_ context.Context, _ string) (*entities.InventoryItem, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubInventoryRepository) GetItemByExternalID(_ context.Context, _ string) (*entities.InventoryItem, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubInventoryRepository) UpdateItem(_ context.Context, _ *entities.InventoryItem) error {
	return nil
}
func (s *stubInventoryRepository) UpdateItemWithHistory(_ context.Context, _ *entities.InventoryItem, _ *entities.CostHistory) error {
	return nil
}
func (s *stubInventoryRepository) ArchiveItem(_ context.Context, _ string) error { return nil }
func (s *stubInventoryRepository) GetItems(_ context.Context, _ string, _, _ int) ([]*entities.InventoryItem, int64, error) {
	return nil, 0, nil
}
func (s *stubInventoryRepository) GetLowStockItems(_ context.Context) ([]*entities.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventoryRepository) AddCostHistory(_ context.Context, _ *entities.CostHistory) error {
	return nil
}
func (s *stubInventoryRepository) GetCostHistory(_ context.Context, _ string, _, _ int) ([]*entities.CostHistory, int64, error) {
	return nil, 0, nil
}
func (s *stubInventoryRepository) GetCostHistoryByID(_ context.Context, _ string) (*entities.CostHistory, error) {
	return nil, gorm.ErrRecordNotFound
}

func newItem(name, unit string) *entities.InventoryItem {
	return &entities.InventoryItem{ID: uuid.New(), Name: name, Unit: unit, PackSize: 1}
}

func milkLine(amount float64) domain.RecipeLineSpec {
	return domain.RecipeLineSpec{
		Label:       "Milk",
		Candidates:  []string{"whole milk", "milk"},
		Amount:      amount,
		Unit:        "ounce",
		LossPercent: 1,
	}
}

func TestComputeEndToEnd(t *testing.T) {
	milk := newItem("Whole Milk", "ounce")
	inventoryRepo := &stubInventoryRepository{items: []*entities.InventoryItem{milk}}

	latteID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID: {SellableID: latteID, Version: 1, Lines: []domain.RecipeLineSpec{milkLine(10)}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: latteID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Missing)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, milk.ID.String(), result.Entries[0].InventoryItemID)
	assert.Equal(t, 30.0, result.Entries[0].Quantity)
	assert.Equal(t, "ounce", result.Entries[0].Unit)
	assert.Equal(t, 1.0, result.Entries[0].LossPercent)
}

// A modifier's draw applies once per sale line: 2 units of a 10 oz recipe plus
// one 2 oz modifier merge into a single 22 oz entry.
func TestComputeMergesModifierConsumption(t *testing.T) {
	milk := newItem("Whole Milk", "ounce")
	inventoryRepo := &stubInventoryRepository{items: []*entities.InventoryItem{milk}}

	latteID := uuid.NewString()
	extraMilkID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID:     {SellableID: latteID, Lines: []domain.RecipeLineSpec{milkLine(10)}},
		extraMilkID: {SellableID: extraMilkID, Lines: []domain.RecipeLineSpec{milkLine(2)}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: latteID, Quantity: 2, ModifierIDs: []string{extraMilkID}},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 22.0, result.Entries[0].Quantity)
}

func TestComputeConvertsToNativeUnit(t *testing.T) {
	// Milk stocked in liters, recipe authored in ounces.
	milk := newItem("Whole Milk", "liter")
	inventoryRepo := &stubInventoryRepository{items: []*entities.InventoryItem{milk}}

	latteID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID: {SellableID: latteID, Lines: []domain.RecipeLineSpec{milkLine(10)}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: latteID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.InDelta(t, 0.295735295625, result.Entries[0].Quantity, 1e-9)
	assert.Equal(t, "liter", result.Entries[0].Unit)
}

func TestComputeCollectsMissingLines(t *testing.T) {
	// "each"-stocked item cannot absorb an ounce quantity; cups have no
	// matching candidates at all.
	beans := newItem("Espresso Beans", "each")
	inventoryRepo := &stubInventoryRepository{items: []*entities.InventoryItem{beans}}

	latteID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID: {SellableID: latteID, Lines: []domain.RecipeLineSpec{
			{Label: "Beans", Candidates: []string{"espresso beans"}, Amount: 1.5, Unit: "ounce"},
			{Label: "Cup", Candidates: []string{"paper cup"}, Amount: 1, Unit: "each"},
		}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: latteID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	require.Len(t, result.Missing, 2)
	assert.Equal(t, "Beans", result.Missing[0].Label)
	assert.Equal(t, "Cup", result.Missing[1].Label)
	assert.Equal(t, domain.ErrNoIngredientMatch.Error(), result.Missing[1].Reason)
}

func TestComputeStrictModeFails(t *testing.T) {
	inventoryRepo := &stubInventoryRepository{}

	latteID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID: {SellableID: latteID, Lines: []domain.RecipeLineSpec{milkLine(10)}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line:   domain.SaleLine{SellableID: latteID, Quantity: 1},
		Strict: true,
	})
	assert.ErrorIs(t, err, domain.ErrMissingIngredients)
	// Strict mode still reports the complete missing list.
	assert.Len(t, result.Missing, 1)
}

func TestComputeModifierWithoutRecipeIsSkipped(t *testing.T) {
	milk := newItem("Whole Milk", "ounce")
	inventoryRepo := &stubInventoryRepository{items: []*entities.InventoryItem{milk}}

	latteID := uuid.NewString()
	recipeSvc := &stubRecipeService{recipes: map[string]domain.RecipeResponse{
		latteID: {SellableID: latteID, Lines: []domain.RecipeLineSpec{milkLine(10)}},
	}}

	service := NewConsumptionService(recipeSvc, inventoryRepo)

	result, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: latteID, Quantity: 1, ModifierIDs: []string{uuid.NewString()}},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 10.0, result.Entries[0].Quantity)
	assert.Empty(t, result.Missing)
}

func TestComputeRejectsBadInput(t *testing.T) {
	service := NewConsumptionService(&stubRecipeService{}, &stubInventoryRepository{})

	_, err := service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: uuid.NewString(), Quantity: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = service.Compute(context.Background(), domain.ComputeConsumptionRequest{
		Line: domain.SaleLine{SellableID: "not-a-uuid", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestApplyAggregatesDeductions(t *testing.T) {
	inventoryRepo := &stubInventoryRepository{}
	service := NewConsumptionService(&stubRecipeService{}, inventoryRepo)

	itemID := uuid.NewString()
	err := service.Apply(context.Background(), domain.ConsumptionResult{
		Entries: []domain.ConsumptionEntry{
			{InventoryItemID: itemID, Quantity: 12},
			{InventoryItemID: itemID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, inventoryRepo.deductions[itemID])
}
