package computeburn

type Input struct {
	// Durations are minutes per activity, index-aligned with the activity catalog.
	Durations []int `json:"durations"`
}

type Output struct {
	BurnedCalories   int   `json:"burnedCalories"`
	ActivityCalories []int `json:"activityCalories"`
}
