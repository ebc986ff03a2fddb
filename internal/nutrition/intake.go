package nutrition

import (
	"fmt"
	"math"
)

// ComputeConsumed totals the calories eaten: each frequency times its food's calories per unit.
func ComputeConsumed(catalog []FoodItem, frequencies []int) (int, error) {
	items, err := IntakeBreakdown(catalog, frequencies)
	if err != nil {
		return 0, err
	}
	return SumCalories(items)
}

// IntakeBreakdown returns the calories contributed by each food, index-aligned with catalog.
func IntakeBreakdown(catalog []FoodItem, frequencies []int) ([]int, error) {
	if len(frequencies) != len(catalog) {
		return nil, fmt.Errorf("%w: %d frequencies for %d food items", ErrDimensionMismatch, len(frequencies), len(catalog))
	}
	out := make([]int, len(catalog))
	for i, f := range frequencies {
		if f < 0 {
			return nil, fmt.Errorf("%w: frequency for %q is negative (%d)", ErrInvalidMeasurement, catalog[i].Name, f)
		}
		v, err := multiply(f, catalog[i].CaloriesPerUnit, catalog[i].Name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SumCalories adds per-item calories from a breakdown. A total past math.MaxInt is
// ErrInvalidMeasurement.
func SumCalories(values []int) (int, error) {
	total := 0
	for _, v := range values {
		if total > math.MaxInt-v {
			return 0, fmt.Errorf("%w: calorie total overflows", ErrInvalidMeasurement)
		}
		total += v
	}
	return total, nil
}

// multiply returns quantity*rate for non-negative operands, or ErrInvalidMeasurement on overflow.
func multiply(quantity, rate int, item string) (int, error) {
	if rate > 0 && quantity > math.MaxInt/rate {
		return 0, fmt.Errorf("%w: %d x %d calories for %q overflows", ErrInvalidMeasurement, quantity, rate, item)
	}
	return quantity * rate, nil
}
