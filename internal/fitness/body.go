// Package fitness holds the pure calculations behind the dashboard: body
// metrics, weight series aggregates, goal projection and the insight text.
// Nothing here performs I/O or reads the clock; "today" is always passed in.
package fitness

import "math"

// BMIClass is the machine-readable BMI band.
type BMIClass string

const (
	BMIUnderweight BMIClass = "underweight"
	BMINormal      BMIClass = "normal"
	BMIOverweight  BMIClass = "overweight"
	BMIObese       BMIClass = "obese"
)

// BMICategory pairs a display label with its band.
type BMICategory struct {
	Label string   `json:"label"`
	Class BMIClass `json:"category"`
}

// CalculateBMI returns weight / height(m)^2. There is no bounds checking: a
// non-positive height yields +Inf or NaN, which callers must treat as invalid
// input.
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// CategorizeBMI buckets a BMI value. Each band includes its lower bound.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMICategory{Label: "Underweight", Class: BMIUnderweight}
	case bmi < 25:
		return BMICategory{Label: "Normal", Class: BMINormal}
	case bmi < 30:
		return BMICategory{Label: "Overweight", Class: BMIOverweight}
	default:
		return BMICategory{Label: "Obese", Class: BMIObese}
	}
}

// Body fat estimates are clamped to this range.
const (
	minBodyFat = 5
	maxBodyFat = 50
)

// EstimateBodyFat uses the Deurenberg approximation
// 1.2*BMI + 0.23*age - 10.8*sex - 5.4 (sex = 1 for male).
func EstimateBodyFat(bmi float64, age int, male bool) float64 {
	sex := 0.0
	if male {
		sex = 1
	}
	bf := 1.2*bmi + 0.23*float64(age) - 10.8*sex - 5.4
	return math.Max(minBodyFat, math.Min(maxBodyFat, bf))
}
