package recorddailysummary

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userRef", "frequencies", "durations"},
		Properties: map[string]validation.Property{
			"userRef": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(128),
			},
			"summaryDate": {
				Type:    "string",
				Pattern: `^\d{4}-\d{2}-\d{2}$`,
			},
			"frequencies": {
				Type:  "array",
				Items: &validation.Property{Type: "integer"},
			},
			"durations": {
				Type:  "array",
				Items: &validation.Property{Type: "integer"},
			},
			"measurement": {
				Type:     "object",
				Required: []string{"heightUnit", "heightPrimary", "weightUnit", "weightValue"},
				Properties: map[string]validation.Property{
					"heightUnit":      {Type: "string", Enum: []string{"cm", "ft_in"}},
					"heightPrimary":   {Type: "number"},
					"heightSecondary": {Type: "number"},
					"weightUnit":      {Type: "string", Enum: []string{"kg", "lbs"}},
					"weightValue":     {Type: "number"},
				},
			},
		},
		AdditionalProperties: true,
	}
}
