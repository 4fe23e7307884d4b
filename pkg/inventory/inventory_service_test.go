package inventory

import (
	"brewstock/domain"
	"brewstock/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryInventoryRepository keeps items and history in maps so cost behavior
// can be tested without a database.
type memoryInventoryRepository struct {
	items   map[string]*entities.InventoryItem
	order   []string
	history []*entities.CostHistory
}

func newMemoryInventoryRepository() *memoryInventoryRepository {
	return &memoryInventoryRepository{items: make(map[string]*entities.InventoryItem)}
}

func (m *memoryInventoryRepository) AddItem(_ context.Context, item *entities.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID.String()] = item
	m.order = append(m.order, item.ID.String())
	return nil
}

func (m *memoryInventoryRepository) GetItemByID(_ context.Context, id string) (*entities.InventoryItem, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInventoryRepository) GetItemByExternalID(_ context.Context, externalID string) (*entities.InventoryItem, error) {
	for _, item := range m.items {
		if item.ExternalID == externalID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInventoryRepository) UpdateItem(_ context.Context, item *entities.InventoryItem) error {
	m.items[item.ID.String()] = item
	return nil
}

func (m *memoryInventoryRepository) UpdateItemWithHistory(ctx context.Context, item *entities.InventoryItem, entry *entities.CostHistory) error {
	if err := m.UpdateItem(ctx, item); err != nil {
		return err
	}
	return m.AddCostHistory(ctx, entry)
}

func (m *memoryInventoryRepository) ArchiveItem(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memoryInventoryRepository) GetItems(_ context.Context, category string, _, _ int) ([]*entities.InventoryItem, int64, error) {
	var items []*entities.InventoryItem
	for _, id := range m.order {
		item, ok := m.items[id]
		if !ok {
			continue
		}
		if category != "all" && category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

func (m *memoryInventoryRepository) Snapshot(_ context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	for _, id := range m.order {
		if item, ok := m.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memoryInventoryRepository) GetLowStockItems(_ context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	for _, id := range m.order {
		item, ok := m.items[id]
		if !ok {
			continue
		}
		if item.LowStockThreshold > 0 && item.Stock <= item.LowStockThreshold {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memoryInventoryRepository) AddCostHistory(_ context.Context, entry *entities.CostHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.history = append(m.history, entry)
	return nil
}

func (m *memoryInventoryRepository) GetCostHistory(_ context.Context, itemID string, _, _ int) ([]*entities.CostHistory, int64, error) {
	var entries []*entities.CostHistory
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].InventoryItemID.String() == itemID {
			entries = append(entries, m.history[i])
		}
	}
	return entries, int64(len(entries)), nil
}

func (m *memoryInventoryRepository) GetCostHistoryByID(_ context.Context, id string) (*entities.CostHistory, error) {
	for _, entry := range m.history {
		if entry.ID.String() == id {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInventoryRepository) ApplyConsumption(_ context.Context, deductions map[string]float64) error {
	for id, quantity := range deductions {
		item, ok := m.items[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		item.Stock -= quantity
		if item.Stock < 0 {
			item.Stock = 0
		}
	}
	return nil
}

func seedCups(t *testing.T, repo *memoryInventoryRepository) *entities.InventoryItem {
	t.Helper()
	item := &entities.InventoryItem{
		Name:     "12oz Cup",
		Unit:     "each",
		UnitCost: 0.05,
		PackSize: 24,
		Stock:    100,
		Category: "supplies",
	}
	require.NoError(t, repo.AddItem(context.Background(), item))
	return item
}

func TestUpdateCostFromPackCost(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	service := NewInventoryService(repo)

	packCost := 1.20
	cost, err := service.UpdateCost(context.Background(), item.ID.String(), domain.UpdateCostRequest{PackCost: &packCost})
	require.NoError(t, err)

	assert.Equal(t, 0.05, cost.UnitCost)
	assert.Equal(t, 1.20, cost.PackCost)
	assert.Equal(t, 24, cost.PackSize)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "manual", repo.history[0].Source)
	assert.Equal(t, 0.05, repo.history[0].PreviousUnitCost)
	assert.Equal(t, 0.05, repo.history[0].NewUnitCost)
}

func TestUpdateCostPackSizeChangePreservesUnitCost(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	service := NewInventoryService(repo)

	packSize := 12
	cost, err := service.UpdateCost(context.Background(), item.ID.String(), domain.UpdateCostRequest{PackSize: &packSize})
	require.NoError(t, err)

	assert.Equal(t, 0.05, cost.UnitCost)
	assert.Equal(t, 0.60, cost.PackCost)
	assert.Equal(t, 12, cost.PackSize)
	assert.Equal(t, 12, repo.items[item.ID.String()].PackSize)
}

func TestUpdateCostRejectsInvalidPackSize(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	service := NewInventoryService(repo)

	packSize := 0
	unitCost := 0.07
	_, err := service.UpdateCost(context.Background(), item.ID.String(), domain.UpdateCostRequest{
		UnitCost: &unitCost,
		PackSize: &packSize,
	})
	require.ErrorIs(t, err, domain.ErrInvalidPackSize)

	// A rejected edit must leave the stored values and history untouched.
	assert.Equal(t, 0.05, repo.items[item.ID.String()].UnitCost)
	assert.Equal(t, 24, repo.items[item.ID.String()].PackSize)
	assert.Empty(t, repo.history)
}

func TestRestockAddsPacksAndRederivesUnitCost(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	service := NewInventoryService(repo)

	packCost := 1.68
	res, err := service.Restock(context.Background(), item.ID.String(), domain.RestockRequest{
		Quantity: 2,
		PackCost: &packCost,
	})
	require.NoError(t, err)

	assert.Equal(t, 148.0, res.Stock)
	assert.Equal(t, 0.07, res.Cost.UnitCost)

	require.Len(t, repo.history, 1)
	assert.Equal(t, "restock", repo.history[0].Source)
}

func TestRevertCostRestoresPreviousUnitCost(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	service := NewInventoryService(repo)

	unitCost := 0.08
	_, err := service.UpdateCost(context.Background(), item.ID.String(), domain.UpdateCostRequest{UnitCost: &unitCost})
	require.NoError(t, err)
	require.Len(t, repo.history, 1)

	cost, err := service.RevertCost(context.Background(), item.ID.String(), domain.RevertCostRequest{
		HistoryID: repo.history[0].ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.05, cost.UnitCost)
	assert.Equal(t, 0.05, repo.items[item.ID.String()].UnitCost)

	require.Len(t, repo.history, 2)
	assert.Equal(t, "revert", repo.history[1].Source)
}

func TestRevertCostRejectsForeignHistoryEntry(t *testing.T) {
	repo := newMemoryInventoryRepository()
	item := seedCups(t, repo)
	other := &entities.InventoryItem{Name: "Lids", Unit: "each", UnitCost: 0.02, PackSize: 50}
	require.NoError(t, repo.AddItem(context.Background(), other))
	service := NewInventoryService(repo)

	require.NoError(t, repo.AddCostHistory(context.Background(), &entities.CostHistory{
		InventoryItemID:  other.ID,
		PreviousUnitCost: 0.02,
		NewUnitCost:      0.03,
		PackSize:         50,
	}))

	_, err := service.RevertCost(context.Background(), item.ID.String(), domain.RevertCostRequest{
		HistoryID: repo.history[0].ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrCostHistoryNotFound)
}

func TestLowStockReport(t *testing.T) {
	repo := newMemoryInventoryRepository()
	service := NewInventoryService(repo)

	require.NoError(t, repo.AddItem(context.Background(), &entities.InventoryItem{
		Name: "Whole Milk", Unit: "gallon", UnitCost: 4.25, PackSize: 1, Stock: 1, LowStockThreshold: 2,
	}))
	require.NoError(t, repo.AddItem(context.Background(), &entities.InventoryItem{
		Name: "Espresso Beans", Unit: "pound", UnitCost: 12.5, PackSize: 5, Stock: 25, LowStockThreshold: 10,
	}))

	report, err := service.LowStockReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Equal(t, "Whole Milk", report[0].Name)
	assert.Equal(t, 1.0, report[0].Stock)
	assert.Equal(t, 2.0, report[0].Threshold)
}

func TestAddItemRejectsUnknownUnit(t *testing.T) {
	repo := newMemoryInventoryRepository()
	service := NewInventoryService(repo)

	_, err := service.AddItem(context.Background(), domain.AddInventoryItemRequest{
		Name: "Mystery Powder", Unit: "scoop", UnitCost: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	assert.Empty(t, repo.items)
}
