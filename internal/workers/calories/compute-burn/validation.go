package computeburn

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"durations"},
		Properties: map[string]validation.Property{
			"durations": {
				Type:        "array",
				Description: "Minutes per activity",
				Items:       &validation.Property{Type: "integer"},
			},
		},
		AdditionalProperties: true,
	}
}
