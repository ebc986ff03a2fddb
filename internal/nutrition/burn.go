package nutrition

import "fmt"

const minutesPerHour = 60

// ComputeBurned totals the calories burned across all activities. Each activity contributes
// duration*rate/60 truncated to an integer before the contributions are summed.
func ComputeBurned(catalog []ActivityItem, durationsMinutes []int) (int, error) {
	items, err := BurnBreakdown(catalog, durationsMinutes)
	if err != nil {
		return 0, err
	}
	return SumCalories(items)
}

// BurnBreakdown returns the truncated calories burned per activity, index-aligned with catalog.
func BurnBreakdown(catalog []ActivityItem, durationsMinutes []int) ([]int, error) {
	if len(durationsMinutes) != len(catalog) {
		return nil, fmt.Errorf("%w: %d durations for %d activities", ErrDimensionMismatch, len(durationsMinutes), len(catalog))
	}
	out := make([]int, len(catalog))
	for i, d := range durationsMinutes {
		if d < 0 {
			return nil, fmt.Errorf("%w: duration for %q is negative (%d)", ErrInvalidMeasurement, catalog[i].Name, d)
		}
		v, err := multiply(d, catalog[i].CaloriesPerHour, catalog[i].Name)
		if err != nil {
			return nil, err
		}
		out[i] = v / minutesPerHour
	}
	return out, nil
}
