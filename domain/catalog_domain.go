package domain

import "errors"

var (
	MessageSuccessCatalogSync = "catalog synchronized successfully"
	MessageFailedCatalogSync  = "failed to synchronize catalog"

	MessageSuccessUploadImage = "image uploaded successfully"
	MessageFailedUploadImage  = "failed to upload image"

	MessageSuccessGetSellables = "sellables retrieved successfully"
	MessageFailedGetSellables  = "failed to retrieve sellables"

	ErrCatalogUnavailable = errors.New("commerce provider catalog unavailable")
)

type (
	// CatalogObject mirrors the commerce provider's catalog listing shape.
	CatalogObject struct {
		ID         string  `json:"id"`
		Type       string  `json:"type"` // "ITEM" or "MODIFIER"
		Name       string  `json:"name"`
		Price      float64 `json:"price"`
		Resellable bool    `json:"resellable"`
		Unit       string  `json:"unit,omitempty"`
		PackSize   int     `json:"pack_size,omitempty"`
		PackCost   float64 `json:"pack_cost,omitempty"`
	}

	CatalogListResponse struct {
		Objects []CatalogObject `json:"objects"`
		Cursor  string          `json:"cursor,omitempty"`
	}

	CatalogSyncResult struct {
		SellablesUpserted int `json:"sellables_upserted"`
		ItemsUpserted     int `json:"items_upserted"`
	}

	SellableResponse struct {
		ID         string  `json:"id"`
		ExternalID string  `json:"external_id"`
		Name       string  `json:"name"`
		Kind       string  `json:"kind"`
		Category   string  `json:"category,omitempty"`
		Price      float64 `json:"price"`
		ImageURL   string  `json:"image_url,omitempty"`
	}
)
