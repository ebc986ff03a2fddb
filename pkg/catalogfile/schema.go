// pkg/catalogfile/schema.go
package catalogfile

import "calorie-workers/internal/nutrition"

// File is the on-disk catalog. Entry order is significant: selections are index-aligned with it.
type File struct {
	Version     string                   `json:"version"`
	LastUpdated string                   `json:"lastUpdated"`
	Foods       []nutrition.FoodItem     `json:"foods"`
	Activities  []nutrition.ActivityItem `json:"activities"`
}

// Kind selects which table an edit applies to.
type Kind string

const (
	KindFood     Kind = "food"
	KindActivity Kind = "activity"
)
