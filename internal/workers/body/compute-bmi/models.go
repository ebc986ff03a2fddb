package computebmi

import "calorie-workers/internal/nutrition"

// Input nests the measurement the same way the daily summary and the HTTP trigger do.
type Input struct {
	Measurement nutrition.BodyMeasurement `json:"measurement"`
}

type Output struct {
	BMI          float64               `json:"bmi"`
	BMIDisplay   string                `json:"bmiDisplay"`
	BMICategory  nutrition.BMICategory `json:"bmiCategory"`
	BMILabel     string                `json:"bmiLabel"`
	HeightMeters float64               `json:"heightMeters"`
	WeightKg     float64               `json:"weightKg"`
}
