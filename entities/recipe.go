package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RecipeStatusDraft      = "Draft"
	RecipeStatusCurrent    = "Current"
	RecipeStatusSuperseded = "Superseded"
)

type RecipeVersion struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SellableID    uuid.UUID  `gorm:"index:idx_recipe_sellable_version,unique" json:"sellable_id"`
	Version       int        `gorm:"index:idx_recipe_sellable_version,unique" json:"version"`
	Status        string     `gorm:"index" json:"status"` // "Draft", "Current", "Superseded"
	EffectiveFrom time.Time  `gorm:"type:timestamp" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"type:timestamp" json:"effective_to,omitempty"`

	Sellable *Sellable    `gorm:"foreignKey:SellableID"`
	Lines    []RecipeLine `gorm:"foreignKey:RecipeVersionID" json:"lines"`
	Timestamp
}

type RecipeLine struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeVersionID uuid.UUID `gorm:"index" json:"recipe_version_id"`
	Position        int       `json:"position"`
	Label           string    `json:"label"`
	Candidates      string    `gorm:"type:text" json:"candidates"` // JSON array of name fragments
	Amount          float64   `gorm:"type:decimal(12,4)" json:"amount"`
	Unit            string    `json:"unit"`
	LossPercent     float64   `gorm:"type:decimal(5,2)" json:"loss_percent"`
}

func (l *RecipeLine) CandidateList() []string {
	var candidates []string
	if err := json.Unmarshal([]byte(l.Candidates), &candidates); err != nil {
		return nil
	}
	return candidates
}

func (l *RecipeLine) SetCandidates(candidates []string) error {
	raw, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	l.Candidates = string(raw)
	return nil
}
