package computeintake

type Input struct {
	Frequencies []int `json:"frequencies"`
}

type Output struct {
	ConsumedCalories int   `json:"consumedCalories"`
	ItemCalories     []int `json:"itemCalories"`
}
