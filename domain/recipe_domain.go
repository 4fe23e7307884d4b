package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateRecipeVersion = "recipe version created successfully"
	MessageSuccessGetRecipe           = "recipe retrieved successfully"
	MessageSuccessGetRecipeHistory    = "recipe history retrieved successfully"

	MessageFailedCreateRecipeVersion = "failed to create recipe version"
	MessageFailedGetRecipe           = "failed to retrieve recipe"
	MessageFailedGetRecipeHistory    = "failed to retrieve recipe history"

	ErrSellableNotFound      = errors.New("sellable not found")
	ErrRecipeNotFound        = errors.New("no current recipe version for sellable")
	ErrRecipeVersionConflict = errors.New("recipe version already exists for sellable")
	ErrEmptyRecipe           = errors.New("recipe must contain at least one line")
	ErrInvalidLineQuantity   = errors.New("recipe line quantity must not be negative")
	ErrInvalidLossPercent    = errors.New("loss percent must be between 0 and 100")
)

type (
	RecipeLineSpec struct {
		Label       string   `json:"label" validate:"required"`
		Candidates  []string `json:"candidates" validate:"required,min=1,dive,required"`
		Amount      float64  `json:"amount" validate:"min=0"`
		Unit        string   `json:"unit" validate:"required,oneof=each pound ounce gallon liter milliliter"`
		LossPercent float64  `json:"loss_percent" validate:"min=0,max=100"`
	}

	CreateRecipeVersionRequest struct {
		SellableID string           `json:"sellable_id" validate:"required,uuid"`
		Lines      []RecipeLineSpec `json:"lines" validate:"required,min=1,dive"`
		Force      bool             `json:"force"`
	}

	CreateRecipeVersionResponse struct {
		SellableID string `json:"sellable_id"`
		Version    int    `json:"version"`
		Created    bool   `json:"created"`
	}

	RecipeResponse struct {
		SellableID    string           `json:"sellable_id"`
		Version       int              `json:"version"`
		Status        string           `json:"status"`
		EffectiveFrom time.Time        `json:"effective_from"`
		EffectiveTo   *time.Time       `json:"effective_to,omitempty"`
		Lines         []RecipeLineSpec `json:"lines"`
	}
)
