package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"index" json:"name"`
	Unit              string    `json:"unit"` // "each", "pound", "ounce", "gallon", "liter", "milliliter"
	UnitCost          float64   `gorm:"type:decimal(12,4)" json:"unit_cost"`
	PackSize          int       `gorm:"default:1" json:"pack_size"`
	Stock             float64   `gorm:"type:decimal(12,3)" json:"stock"`
	LowStockThreshold float64   `gorm:"type:decimal(12,3)" json:"low_stock_threshold"`
	Category          string    `json:"category,omitempty"`
	Supplier          string    `json:"supplier,omitempty"`
	ExternalID        string    `gorm:"index" json:"external_id,omitempty"`
	Resellable        bool      `json:"resellable"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Timestamp
}
