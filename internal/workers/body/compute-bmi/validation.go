package computebmi

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

// GetInputSchema accepts any number for the measurement values. Zero and negative heights are
// rejected by the calculator as INVALID_MEASUREMENT.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"measurement"},
		Properties: map[string]validation.Property{
			"measurement": {
				Type:     "object",
				Required: []string{"heightUnit", "heightPrimary", "weightUnit", "weightValue"},
				Properties: map[string]validation.Property{
					"heightUnit": {
						Type: "string",
						Enum: []string{"cm", "ft_in"},
					},
					"heightPrimary": {
						Type:        "number",
						Description: "Centimeters, or feet when heightUnit is ft_in",
					},
					"heightSecondary": {
						Type:        "number",
						Description: "Inches, only read when heightUnit is ft_in",
					},
					"weightUnit": {
						Type: "string",
						Enum: []string{"kg", "lbs"},
					},
					"weightValue": {
						Type: "number",
					},
				},
			},
		},
		AdditionalProperties: true,
	}
}
