package entities

import (
	"time"

	"github.com/google/uuid"
)

type CostHistory struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InventoryItemID  uuid.UUID `gorm:"index" json:"inventory_item_id"`
	PreviousUnitCost float64   `gorm:"type:decimal(12,4)" json:"previous_unit_cost"`
	NewUnitCost      float64   `gorm:"type:decimal(12,4)" json:"new_unit_cost"`
	PackSize         int       `json:"pack_size"`
	Source           string    `json:"source"` // "manual", "restock", "catalog_sync", "revert"
	CreatedAt        time.Time `gorm:"type:timestamp" json:"created_at"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}
