package analyzenetcalories

import "calorie-workers/internal/nutrition"

type Input struct {
	ConsumedCalories int `json:"consumedCalories"`
	BurnedCalories   int `json:"burnedCalories"`
}

type Output struct {
	NetCalories  int                    `json:"netCalories"`
	NetFeedback  nutrition.NetFeedback  `json:"netFeedback"`
	NetSummary   string                 `json:"netSummary"`
	FeedbackText string                 `json:"feedbackText"`
	FeedbackTone nutrition.FeedbackTone `json:"feedbackTone"`
	// ExcessIntake drives the alert gateway in the process model.
	ExcessIntake bool `json:"excessIntake"`
}
