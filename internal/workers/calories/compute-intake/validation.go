package computeintake

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

// GetInputSchema checks shape only. Length and sign are checked against the catalog so they
// surface as DIMENSION_MISMATCH and INVALID_MEASUREMENT.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"frequencies"},
		Properties: map[string]validation.Property{
			"frequencies": {
				Type:        "array",
				Description: "Servings per food item, index-aligned with the food catalog",
				Items:       &validation.Property{Type: "integer"},
			},
		},
		AdditionalProperties: true,
	}
}
