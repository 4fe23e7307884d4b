package consumption

import (
	"brewstock/domain"
	"brewstock/pkg/inventory"
	"brewstock/pkg/matching"
	"brewstock/pkg/recipes"
	"brewstock/pkg/units"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type (
	// ConsumptionService walks recipes for a sale line and produces the
	// ingredient draw to deduct from stock. Matching and conversion failures
	// are collected per line, never raised on first occurrence, so a caller
	// sees every problem in one pass.
	ConsumptionService interface {
		Compute(ctx context.Context, req domain.ComputeConsumptionRequest) (domain.ConsumptionResult, error)
		Apply(ctx context.Context, result domain.ConsumptionResult) error
	}

	consumptionService struct {
		recipeService       recipes.RecipeService
		inventoryRepository inventory.InventoryRepository
	}
)

func NewConsumptionService(recipeService recipes.RecipeService, inventoryRepository inventory.InventoryRepository) ConsumptionService {
	return &consumptionService{
		recipeService:       recipeService,
		inventoryRepository: inventoryRepository,
	}
}

// Compute resolves the sale line's base recipe and each selected modifier's
// recipe, matches every recipe line against the live catalog, converts the
// authored quantity into the matched item's native unit, and merges entries
// for the same inventory item additively. Base lines are multiplied by the
// sale quantity; modifier lines apply once per sale line. Loss percent is
// carried through untouched.
func (s *consumptionService) Compute(ctx context.Context, req domain.ComputeConsumptionRequest) (domain.ConsumptionResult, error) {
	if req.Line.Quantity < 1 {
		return domain.ConsumptionResult{}, domain.ErrInvalidQuantity
	}
	if _, err := uuid.Parse(req.Line.SellableID); err != nil {
		return domain.ConsumptionResult{}, domain.ErrParseUUID
	}

	snapshot, err := s.inventoryRepository.Snapshot(ctx)
	if err != nil {
		return domain.ConsumptionResult{}, err
	}

	catalog := make([]matching.Candidate, 0, len(snapshot))
	unitsByID := make(map[string]string, len(snapshot))
	namesByID := make(map[string]string, len(snapshot))
	for _, item := range snapshot {
		id := item.ID.String()
		catalog = append(catalog, matching.Candidate{ID: id, Name: item.Name})
		unitsByID[id] = item.Unit
		namesByID[id] = item.Name
	}

	acc := newAccumulator()

	baseRecipe, err := s.recipeService.ResolveCurrent(ctx, req.Line.SellableID)
	if err != nil {
		return domain.ConsumptionResult{}, err
	}
	s.walkLines(baseRecipe.Lines, float64(req.Line.Quantity), catalog, unitsByID, namesByID, acc)

	for _, modifierID := range req.Line.ModifierIDs {
		modifierRecipe, err := s.recipeService.ResolveCurrent(ctx, modifierID)
		if err != nil {
			if errors.Is(err, domain.ErrRecipeNotFound) {
				// Non-material modifier (no recipe lineage): nothing to draw.
				continue
			}
			return domain.ConsumptionResult{}, err
		}
		s.walkLines(modifierRecipe.Lines, 1, catalog, unitsByID, namesByID, acc)
	}

	result := acc.result()
	if req.Strict && len(result.Missing) > 0 {
		return result, fmt.Errorf("%w: %d unresolved line(s)", domain.ErrMissingIngredients, len(result.Missing))
	}
	return result, nil
}

func (s *consumptionService) walkLines(lines []domain.RecipeLineSpec, multiplier float64, catalog []matching.Candidate, unitsByID, namesByID map[string]string, acc *accumulator) {
	for _, line := range lines {
		match, ok := matching.Best(catalog, line.Candidates)
		if !ok {
			acc.miss(line.Label, domain.ErrNoIngredientMatch.Error())
			continue
		}

		converted, err := units.Convert(line.Amount, line.Unit, unitsByID[match.ID])
		if err != nil {
			acc.miss(line.Label, fmt.Sprintf("cannot convert %s to %s for %q", line.Unit, unitsByID[match.ID], namesByID[match.ID]))
			continue
		}

		acc.add(domain.ConsumptionEntry{
			InventoryItemID: match.ID,
			ItemName:        namesByID[match.ID],
			Quantity:        converted * multiplier,
			Unit:            unitsByID[match.ID],
			LineLabel:       line.Label,
			LossPercent:     line.LossPercent,
		})
	}
}

// Apply deducts the computed entries from stock in one transaction.
func (s *consumptionService) Apply(ctx context.Context, result domain.ConsumptionResult) error {
	deductions := make(map[string]float64, len(result.Entries))
	for _, entry := range result.Entries {
		deductions[entry.InventoryItemID] += entry.Quantity
	}
	return s.inventoryRepository.ApplyConsumption(ctx, deductions)
}

// accumulator merges entries for the same inventory item additively while
// keeping first-seen order. The first contributing line's label and loss
// percent are retained on a merged entry.
type accumulator struct {
	order   []string
	entries map[string]*domain.ConsumptionEntry
	missing []domain.MissingLine
}

func newAccumulator() *accumulator {
	return &accumulator{entries: make(map[string]*domain.ConsumptionEntry)}
}

func (a *accumulator) add(entry domain.ConsumptionEntry) {
	if existing, ok := a.entries[entry.InventoryItemID]; ok {
		existing.Quantity += entry.Quantity
		return
	}
	stored := entry
	a.entries[entry.InventoryItemID] = &stored
	a.order = append(a.order, entry.InventoryItemID)
}

func (a *accumulator) miss(label, reason string) {
	a.missing = append(a.missing, domain.MissingLine{Label: label, Reason: reason})
}

func (a *accumulator) result() domain.ConsumptionResult {
	entries := make([]domain.ConsumptionEntry, 0, len(a.order))
	for _, id := range a.order {
		entries = append(entries, *a.entries[id])
	}
	return domain.ConsumptionResult{
		Entries: entries,
		Missing: a.missing,
	}
}
