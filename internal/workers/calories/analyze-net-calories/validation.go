package analyzenetcalories

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"consumedCalories", "burnedCalories"},
		Properties: map[string]validation.Property{
			"consumedCalories": {
				Type:        "integer",
				Description: "Output of compute-intake",
			},
			"burnedCalories": {
				Type:        "integer",
				Description: "Output of compute-burn",
			},
		},
		AdditionalProperties: true,
	}
}
