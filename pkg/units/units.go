package units

import (
	"brewstock/domain"
	"fmt"
)

const (
	Each       = "each"
	Pound      = "pound"
	Ounce      = "ounce"
	Gallon     = "gallon"
	Liter      = "liter"
	Milliliter = "milliliter"
)

const ouncesPerPound = 16.0

// Milliliters per unit for the volume class. Ounce here is the fluid ounce;
// the same unit converts against pound by weight and against the volume class
// via this table.
var millilitersPerUnit = map[string]float64{
	Ounce:      29.5735295625,
	Gallon:     3785.411784,
	Liter:      1000,
	Milliliter: 1,
}

var supported = map[string]bool{
	Each:       true,
	Pound:      true,
	Ounce:      true,
	Gallon:     true,
	Liter:      true,
	Milliliter: true,
}

func IsSupported(unit string) bool {
	return supported[unit]
}

// Convert converts amount from one unit to another. Same-unit conversion is
// the identity and never fails. Pound and ounce convert by the fixed 1:16
// ratio; volume units convert through a milliliter intermediate. "each"
// converts to nothing but itself, and weight never converts to volume. An
// unsupported pair returns domain.ErrUnsupportedConversion, never zero.
func Convert(amount float64, from, to string) (float64, error) {
	if !supported[from] || !supported[to] {
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, from, to)
	}
	if from == to {
		return amount, nil
	}
	if from == Pound && to == Ounce {
		return amount * ouncesPerPound, nil
	}
	if from == Ounce && to == Pound {
		return amount / ouncesPerPound, nil
	}
	mlFrom, okFrom := millilitersPerUnit[from]
	mlTo, okTo := millilitersPerUnit[to]
	if okFrom && okTo {
		return amount * mlFrom / mlTo, nil
	}
	return 0, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, from, to)
}

// All returns the fixed unit enumeration.
func All() []string {
	return []string{Each, Pound, Ounce, Gallon, Liter, Milliliter}
}
