package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessArchiveItem         = "inventory item archived successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessUpdateCost          = "item cost updated successfully"
	MessageSuccessRevertCost          = "item cost reverted successfully"
	MessageSuccessGetCostHistory      = "cost history retrieved successfully"
	MessageSuccessRestock             = "item restocked successfully"
	MessageSuccessGetLowStock         = "low stock report retrieved successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedArchiveItem         = "failed to archive inventory item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"
	MessageFailedUpdateCost          = "failed to update item cost"
	MessageFailedRevertCost          = "failed to revert item cost"
	MessageFailedGetCostHistory      = "failed to retrieve cost history"
	MessageFailedRestock             = "failed to restock item"
	MessageFailedGetLowStock         = "failed to retrieve low stock report"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidPackSize       = errors.New("pack size must be a positive integer")
	ErrInvalidUnit           = errors.New("unit is not in the supported enumeration")
	ErrNegativeCost          = errors.New("cost must not be negative")
	ErrCostHistoryNotFound   = errors.New("cost history entry not found")
)

type (
	AddInventoryItemRequest struct {
		Name              string  `json:"name" validate:"required"`
		Unit              string  `json:"unit" validate:"required,oneof=each pound ounce gallon liter milliliter"`
		UnitCost          float64 `json:"unit_cost" validate:"min=0"`
		PackSize          int     `json:"pack_size" validate:"omitempty,min=1"`
		Stock             float64 `json:"stock" validate:"min=0"`
		LowStockThreshold float64 `json:"low_stock_threshold" validate:"min=0"`
		Category          string  `json:"category"`
		Supplier          string  `json:"supplier"`
	}

	UpdateInventoryItemRequest struct {
		Name              string   `json:"name" validate:"omitempty"`
		LowStockThreshold *float64 `json:"low_stock_threshold" validate:"omitempty,min=0"`
		Category          string   `json:"category"`
		Supplier          string   `json:"supplier"`
	}

	// UpdateCostRequest carries exactly one edited cost field. Editing unit cost
	// recomputes pack cost, editing pack cost recomputes unit cost, and editing
	// pack size preserves unit cost and recomputes pack cost.
	UpdateCostRequest struct {
		UnitCost *float64 `json:"unit_cost" validate:"omitempty,min=0"`
		PackCost *float64 `json:"pack_cost" validate:"omitempty,min=0"`
		PackSize *int     `json:"pack_size" validate:"omitempty"`
		Source   string   `json:"source" validate:"omitempty,oneof=manual restock catalog_sync"`
	}

	RestockRequest struct {
		Quantity float64  `json:"quantity" validate:"required,gt=0"`
		PackCost *float64 `json:"pack_cost" validate:"omitempty,min=0"`
	}

	RevertCostRequest struct {
		HistoryID string `json:"history_id" validate:"required,uuid"`
	}

	CostBreakdown struct {
		UnitCost float64 `json:"unit_cost"`
		PackCost float64 `json:"pack_cost"`
		PackSize int     `json:"pack_size"`
	}

	InventoryItemResponse struct {
		ID                string        `json:"id"`
		Name              string        `json:"name"`
		Unit              string        `json:"unit"`
		Cost              CostBreakdown `json:"cost"`
		Stock             float64       `json:"stock"`
		LowStockThreshold float64       `json:"low_stock_threshold"`
		Category          string        `json:"category,omitempty"`
		Supplier          string        `json:"supplier,omitempty"`
		CreatedAt         time.Time     `json:"created_at"`
	}

	CostHistoryResponse struct {
		ID               string    `json:"id"`
		PreviousUnitCost float64   `json:"previous_unit_cost"`
		NewUnitCost      float64   `json:"new_unit_cost"`
		PackSize         int       `json:"pack_size"`
		Source           string    `json:"source"`
		CreatedAt        time.Time `json:"created_at"`
	}

	LowStockItem struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Unit      string  `json:"unit"`
		Stock     float64 `json:"stock"`
		Threshold float64 `json:"threshold"`
	}
)
