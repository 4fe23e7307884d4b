package entities

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusSettled   = "Settled"
	OrderStatusCancelled = "Cancelled"
	OrderStatusExpired   = "Expired"
)

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `gorm:"index" json:"status"` // "Pending", "Settled", "Cancelled", "Expired"
	TotalAmount   float64   `gorm:"type:decimal(12,2)" json:"total_amount"`
	InvoiceURL    string    `json:"invoice_url,omitempty"`

	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
	Timestamp
}

type OrderLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID     uuid.UUID `gorm:"index" json:"order_id"`
	SellableID  uuid.UUID `json:"sellable_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(12,2)" json:"unit_price"`
	ModifierIDs string    `gorm:"type:text" json:"modifier_ids"` // JSON array of sellable ids

	Sellable *Sellable `gorm:"foreignKey:SellableID"`
}

func (l *OrderLine) ModifierList() []uuid.UUID {
	var raw []string
	if err := json.Unmarshal([]byte(l.ModifierIDs), &raw); err != nil {
		return nil
	}
	modifiers := make([]uuid.UUID, 0, len(raw))
	for _, id := range raw {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		modifiers = append(modifiers, parsed)
	}
	return modifiers
}

func (l *OrderLine) SetModifiers(ids []uuid.UUID) error {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	l.ModifierIDs = string(encoded)
	return nil
}
