package inventory

import (
	"brewstock/domain"
	"math"
)

// Unit cost is the canonical stored value and carries 4 decimal places so
// low-cost ingredients do not compound rounding error; pack cost is the
// display/storage value at 2 decimal places.
const (
	unitCostScale = 10000
	packCostScale = 100
)

func RoundUnitCost(cost float64) float64 {
	return math.Round(cost*unitCostScale) / unitCostScale
}

func RoundPackCost(cost float64) float64 {
	return math.Round(cost*packCostScale) / packCostScale
}

// CostFromUnit derives the pack cost from an edited unit cost.
func CostFromUnit(unitCost float64, packSize int) (domain.CostBreakdown, error) {
	if packSize < 1 {
		return domain.CostBreakdown{}, domain.ErrInvalidPackSize
	}
	if unitCost < 0 {
		return domain.CostBreakdown{}, domain.ErrNegativeCost
	}
	return domain.CostBreakdown{
		UnitCost: RoundUnitCost(unitCost),
		PackCost: RoundPackCost(unitCost * float64(packSize)),
		PackSize: packSize,
	}, nil
}

// CostFromPack derives the unit cost from an edited pack cost.
func CostFromPack(packCost float64, packSize int) (domain.CostBreakdown, error) {
	if packSize < 1 {
		return domain.CostBreakdown{}, domain.ErrInvalidPackSize
	}
	if packCost < 0 {
		return domain.CostBreakdown{}, domain.ErrNegativeCost
	}
	return domain.CostBreakdown{
		UnitCost: RoundUnitCost(packCost / float64(packSize)),
		PackCost: RoundPackCost(packCost),
		PackSize: packSize,
	}, nil
}

// Repack recomputes costs after a pack size edit. Unit cost is the source of
// truth here: it is preserved and the pack cost is recomputed, the same
// direction every time.
func Repack(unitCost float64, newPackSize int) (domain.CostBreakdown, error) {
	return CostFromUnit(unitCost, newPackSize)
}
