package domain

import "errors"

var (
	MessageSuccessComputeConsumption = "consumption computed successfully"
	MessageFailedComputeConsumption  = "failed to compute consumption"

	ErrUnsupportedConversion = errors.New("no defined conversion between units")
	ErrNoIngredientMatch     = errors.New("no inventory item matched the recipe line")
	ErrMissingIngredients    = errors.New("one or more recipe lines could not be resolved")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
)

type (
	// SaleLine is the engine's input shape: one sold sellable with an order
	// quantity and zero or more selected modifier sellables. Modifier recipes
	// are applied once per sale line, not multiplied by Quantity.
	SaleLine struct {
		SellableID  string   `json:"sellable_id" validate:"required,uuid"`
		Quantity    int      `json:"quantity" validate:"required,min=1"`
		ModifierIDs []string `json:"modifier_ids" validate:"omitempty,dive,uuid"`
	}

	ComputeConsumptionRequest struct {
		Line   SaleLine `json:"line" validate:"required"`
		Strict bool     `json:"strict"`
	}

	ConsumptionEntry struct {
		InventoryItemID string  `json:"inventory_item_id"`
		ItemName        string  `json:"item_name"`
		Quantity        float64 `json:"quantity"` // in the item's native unit
		Unit            string  `json:"unit"`
		LineLabel       string  `json:"line_label"`
		LossPercent     float64 `json:"loss_percent"` // informational, not applied to Quantity
	}

	MissingLine struct {
		Label  string `json:"label"`
		Reason string `json:"reason"`
	}

	ConsumptionResult struct {
		Entries []ConsumptionEntry `json:"entries"`
		Missing []MissingLine      `json:"missing"`
	}
)
