package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SellableKindProduct  = "product"
	SellableKindModifier = "modifier"
)

type Sellable struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ExternalID string    `gorm:"uniqueIndex" json:"external_id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"` // "product" or "modifier"
	Category   string    `json:"category,omitempty"`
	Price      float64   `gorm:"type:decimal(12,2)" json:"price"`
	ImageURL   string    `json:"image_url,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Timestamp
}
