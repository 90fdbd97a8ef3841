package domain

import "fmt"

// Weight units accepted by the API. Stored weights are always kilograms.
const (
	UnitKG = "kg"
	UnitLB = "lb"
)

const kgToLb = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKG && to == UnitLB {
		return v * kgToLb
	}
	if from == UnitLB && to == UnitKG {
		return v / kgToLb
	}
	return v
}

// ValidateUnit rejects anything other than "kg" or "lb".
func ValidateUnit(unit string) error {
	if unit != UnitKG && unit != UnitLB {
		return fmt.Errorf("unit must be %q or %q", UnitKG, UnitLB)
	}
	return nil
}
