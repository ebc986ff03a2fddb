package recorddailysummary

import (
	"time"

	"calorie-workers/internal/nutrition"
)

// SummaryDateLayout is the wire format of summaryDate.
const SummaryDateLayout = "2006-01-02"

type Input struct {
	UserRef string `json:"userRef"`
	// SummaryDate defaults to the current UTC day.
	SummaryDate string                      `json:"summaryDate,omitempty"`
	Frequencies nutrition.IntakeSelection   `json:"frequencies"`
	Durations   nutrition.ActivitySelection `json:"durations"`
	Measurement *nutrition.BodyMeasurement  `json:"measurement,omitempty"`
}

type Output struct {
	SummaryID   string                `json:"summaryId"`
	SummaryDate string                `json:"summaryDate"`
	Report      nutrition.DailyReport `json:"report"`
	RecordedAt  string                `json:"recordedAt"`
}

// SummaryDocument is what gets indexed for search.
type SummaryDocument struct {
	SummaryID        string                `json:"summaryId"`
	UserRef          string                `json:"userRef"`
	SummaryDate      string                `json:"summaryDate"`
	ConsumedCalories int                   `json:"consumedCalories"`
	BurnedCalories   int                   `json:"burnedCalories"`
	NetCalories      int                   `json:"netCalories"`
	Feedback         nutrition.NetFeedback `json:"feedback"`
	BMI              *float64              `json:"bmi,omitempty"`
	BMICategory      string                `json:"bmiCategory,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}
