package nutrition

import "fmt"

const (
	// FrequencyStep is how much one tap changes a food frequency.
	FrequencyStep = 1
	// DurationStepMinutes is how much one tap changes an activity duration.
	DurationStepMinutes = 10
)

// IntakeSelection holds one frequency per food item, index-aligned with the catalog.
type IntakeSelection []int

// ActivitySelection holds one duration in minutes per activity, index-aligned with the catalog.
type ActivitySelection []int

// NewIntakeSelection returns an all-zero selection sized for foods.
func NewIntakeSelection(foods []FoodItem) IntakeSelection {
	return make(IntakeSelection, len(foods))
}

// NewActivitySelection returns an all-zero selection sized for activities.
func NewActivitySelection(activities []ActivityItem) ActivitySelection {
	return make(ActivitySelection, len(activities))
}

// IncrementFrequency returns a copy of s with the item at index raised by one.
func (s IntakeSelection) IncrementFrequency(index int) (IntakeSelection, error) {
	out, err := adjust(s, index, FrequencyStep)
	return IntakeSelection(out), err
}

// DecrementFrequency returns a copy of s with the item at index lowered by one, never below zero.
func (s IntakeSelection) DecrementFrequency(index int) (IntakeSelection, error) {
	out, err := adjust(s, index, -FrequencyStep)
	return IntakeSelection(out), err
}

// IncrementDuration returns a copy of s with the activity at index raised by ten minutes.
func (s ActivitySelection) IncrementDuration(index int) (ActivitySelection, error) {
	out, err := adjust(s, index, DurationStepMinutes)
	return ActivitySelection(out), err
}

// DecrementDuration returns a copy of s with the activity at index lowered by ten minutes,
// never below zero.
func (s ActivitySelection) DecrementDuration(index int) (ActivitySelection, error) {
	out, err := adjust(s, index, -DurationStepMinutes)
	return ActivitySelection(out), err
}

func adjust(values []int, index, delta int) ([]int, error) {
	if index < 0 || index >= len(values) {
		return nil, fmt.Errorf("%w: index %d outside selection of length %d", ErrDimensionMismatch, index, len(values))
	}
	out := make([]int, len(values))
	copy(out, values)
	out[index] += delta
	if out[index] < 0 {
		out[index] = 0
	}
	return out, nil
}
