package inventory

import (
	"brewstock/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostFromUnit(t *testing.T) {
	cost, err := CostFromUnit(0.05, 24)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cost.UnitCost)
	assert.Equal(t, 1.2, cost.PackCost)
	assert.Equal(t, 24, cost.PackSize)
}

func TestCostFromPack(t *testing.T) {
	cost, err := CostFromPack(1.20, 24)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cost.UnitCost)
	assert.Equal(t, 1.2, cost.PackCost)
}

func TestPackSizeOneDegenerates(t *testing.T) {
	cost, err := CostFromUnit(3.75, 1)
	require.NoError(t, err)
	assert.Equal(t, cost.UnitCost, cost.PackCost)
}

func TestInvalidPackSizeRejected(t *testing.T) {
	for _, size := range []int{0, -1, -24} {
		_, err := CostFromUnit(1.0, size)
		assert.ErrorIs(t, err, domain.ErrInvalidPackSize)

		_, err = CostFromPack(1.0, size)
		assert.ErrorIs(t, err, domain.ErrInvalidPackSize)
	}
}

func TestNegativeCostRejected(t *testing.T) {
	_, err := CostFromUnit(-0.01, 6)
	assert.ErrorIs(t, err, domain.ErrNegativeCost)

	_, err = CostFromPack(-5, 6)
	assert.ErrorIs(t, err, domain.ErrNegativeCost)
}

// Computing pack cost as U*P then recovering unit cost as (U*P)/P must not
// drift beyond one unit of the last stored decimal after rounding.
func TestPackUnitRoundTrip(t *testing.T) {
	unitCosts := []float64{0.0125, 0.05, 0.3333, 1, 2.5, 19.99}
	packSizes := []int{1, 2, 6, 12, 24, 100}

	for _, unitCost := range unitCosts {
		for _, packSize := range packSizes {
			exact := unitCost * float64(packSize)

			cost, err := CostFromPack(exact, packSize)
			require.NoError(t, err)
			drift := math.Abs(cost.UnitCost - RoundUnitCost(unitCost))
			assert.LessOrEqual(t, drift, 0.0001+1e-12,
				"unit cost drift for U=%v P=%d", unitCost, packSize)
		}
	}
}

// Repeated pack size edits must not drift the unit cost: unit cost is the
// preserved source of truth.
func TestRepackPreservesUnitCost(t *testing.T) {
	cost, err := CostFromUnit(0.0421, 12)
	require.NoError(t, err)

	for _, size := range []int{6, 24, 1, 12} {
		cost, err = Repack(cost.UnitCost, size)
		require.NoError(t, err)
		assert.Equal(t, 0.0421, cost.UnitCost)
		assert.Equal(t, size, cost.PackSize)
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 0.0421, RoundUnitCost(0.04207))
	assert.Equal(t, 0.042, RoundUnitCost(0.042))
	assert.Equal(t, 1.01, RoundPackCost(1.005000001))
	assert.Equal(t, 2.67, RoundPackCost(2.666666))
}
