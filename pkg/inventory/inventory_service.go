package inventory

import (
	"brewstock/domain"
	"brewstock/entities"
	"brewstock/pkg/units"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AddItem(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItemResponse, error)
		GetItems(ctx context.Context, category string, page, limit int) ([]domain.InventoryItemResponse, int64, error)
		GetItemByID(ctx context.Context, itemID string) (domain.InventoryItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateInventoryItemRequest) error
		ArchiveItem(ctx context.Context, itemID string) error
		UpdateCost(ctx context.Context, itemID string, req domain.UpdateCostRequest) (domain.CostBreakdown, error)
		Restock(ctx context.Context, itemID string, req domain.RestockRequest) (domain.InventoryItemResponse, error)
		RevertCost(ctx context.Context, itemID string, req domain.RevertCostRequest) (domain.CostBreakdown, error)
		GetCostHistory(ctx context.Context, itemID string, page, limit int) ([]domain.CostHistoryResponse, int64, error)
		LowStockReport(ctx context.Context) ([]domain.LowStockItem, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

func (s *inventoryService) AddItem(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItemResponse, error) {
	if !units.IsSupported(req.Unit) {
		return domain.InventoryItemResponse{}, domain.ErrInvalidUnit
	}

	packSize := req.PackSize
	if packSize == 0 {
		packSize = 1
	}

	cost, err := CostFromUnit(req.UnitCost, packSize)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	item := entities.InventoryItem{
		Name:              req.Name,
		Unit:              req.Unit,
		UnitCost:          cost.UnitCost,
		PackSize:          cost.PackSize,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Category:          req.Category,
		Supplier:          req.Supplier,
	}

	if err := s.inventoryRepository.AddItem(ctx, &item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return toItemResponse(&item), nil
}

func (s *inventoryService) GetItems(ctx context.Context, category string, page, limit int) ([]domain.InventoryItemResponse, int64, error) {
	items, count, err := s.inventoryRepository.GetItems(ctx, category, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toItemResponse(item))
	}
	return result, count, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (domain.InventoryItemResponse, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateInventoryItemRequest) error {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Supplier != "" {
		item.Supplier = req.Supplier
	}

	return s.inventoryRepository.UpdateItem(ctx, item)
}

func (s *inventoryService) ArchiveItem(ctx context.Context, itemID string) error {
	if _, err := s.getItem(ctx, itemID); err != nil {
		return err
	}
	return s.inventoryRepository.ArchiveItem(ctx, itemID)
}

// UpdateCost applies one cost edit. Unit cost edits recompute pack cost, pack
// cost edits recompute unit cost, and a bare pack size change preserves unit
// cost and recomputes pack cost. Pack size is validated before anything is
// recomputed so a bad edit leaves the stored values untouched.
func (s *inventoryService) UpdateCost(ctx context.Context, itemID string, req domain.UpdateCostRequest) (domain.CostBreakdown, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	packSize := item.PackSize
	if req.PackSize != nil {
		if *req.PackSize < 1 {
			return domain.CostBreakdown{}, domain.ErrInvalidPackSize
		}
		packSize = *req.PackSize
	}

	var cost domain.CostBreakdown
	switch {
	case req.UnitCost != nil:
		cost, err = CostFromUnit(*req.UnitCost, packSize)
	case req.PackCost != nil:
		cost, err = CostFromPack(*req.PackCost, packSize)
	default:
		cost, err = Repack(item.UnitCost, packSize)
	}
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	if err := s.applyCost(ctx, item, cost, source); err != nil {
		return domain.CostBreakdown{}, err
	}
	return cost, nil
}

// Restock receives req.Quantity supplier packs: stock grows by packs times
// pack size, and an included pack cost re-derives the unit cost.
func (s *inventoryService) Restock(ctx context.Context, itemID string, req domain.RestockRequest) (domain.InventoryItemResponse, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	item.Stock += req.Quantity * float64(item.PackSize)

	if req.PackCost != nil {
		cost, err := CostFromPack(*req.PackCost, item.PackSize)
		if err != nil {
			return domain.InventoryItemResponse{}, err
		}
		if err := s.applyCost(ctx, item, cost, "restock"); err != nil {
			return domain.InventoryItemResponse{}, err
		}
	} else if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *inventoryService) RevertCost(ctx context.Context, itemID string, req domain.RevertCostRequest) (domain.CostBreakdown, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	entry, err := s.inventoryRepository.GetCostHistoryByID(ctx, req.HistoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CostBreakdown{}, domain.ErrCostHistoryNotFound
		}
		return domain.CostBreakdown{}, err
	}
	if entry.InventoryItemID != item.ID {
		return domain.CostBreakdown{}, domain.ErrCostHistoryNotFound
	}

	cost, err := CostFromUnit(entry.PreviousUnitCost, item.PackSize)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	if err := s.applyCost(ctx, item, cost, "revert"); err != nil {
		return domain.CostBreakdown{}, err
	}
	return cost, nil
}

func (s *inventoryService) GetCostHistory(ctx context.Context, itemID string, page, limit int) ([]domain.CostHistoryResponse, int64, error) {
	if _, err := s.getItem(ctx, itemID); err != nil {
		return nil, 0, err
	}

	entries, count, err := s.inventoryRepository.GetCostHistory(ctx, itemID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.CostHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, domain.CostHistoryResponse{
			ID:               entry.ID.String(),
			PreviousUnitCost: entry.PreviousUnitCost,
			NewUnitCost:      entry.NewUnitCost,
			PackSize:         entry.PackSize,
			Source:           entry.Source,
			CreatedAt:        entry.CreatedAt,
		})
	}
	return result, count, nil
}

func (s *inventoryService) LowStockReport(ctx context.Context) ([]domain.LowStockItem, error) {
	items, err := s.inventoryRepository.GetLowStockItems(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]domain.LowStockItem, 0, len(items))
	for _, item := range items {
		report = append(report, domain.LowStockItem{
			ID:        item.ID.String(),
			Name:      item.Name,
			Unit:      item.Unit,
			Stock:     item.Stock,
			Threshold: item.LowStockThreshold,
		})
	}
	return report, nil
}

func (s *inventoryService) getItem(ctx context.Context, itemID string) (*entities.InventoryItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrParseUUID
	}
	item, err := s.inventoryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) applyCost(ctx context.Context, item *entities.InventoryItem, cost domain.CostBreakdown, source string) error {
	previous := item.UnitCost
	item.UnitCost = cost.UnitCost
	item.PackSize = cost.PackSize

	return s.inventoryRepository.UpdateItemWithHistory(ctx, item, &entities.CostHistory{
		InventoryItemID:  item.ID,
		PreviousUnitCost: previous,
		NewUnitCost:      cost.UnitCost,
		PackSize:         cost.PackSize,
		Source:           source,
	})
}

func toItemResponse(item *entities.InventoryItem) domain.InventoryItemResponse {
	return domain.InventoryItemResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		Unit:              item.Unit,
		Cost:              domain.CostBreakdown{UnitCost: item.UnitCost, PackCost: RoundPackCost(item.UnitCost * float64(item.PackSize)), PackSize: item.PackSize},
		Stock:             item.Stock,
		LowStockThreshold: item.LowStockThreshold,
		Category:          item.Category,
		Supplier:          item.Supplier,
		CreatedAt:         item.CreatedAt,
	}
}
