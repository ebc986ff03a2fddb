package sendfeedbackalert

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"netFeedback", "netCalories"},
		Properties: map[string]validation.Property{
			"netFeedback": {
				Type: "string",
				Enum: []string{"LosingWeight", "Balanced", "GainingWeight", "ExcessIntakeWarning"},
			},
			"netCalories": {
				Type: "integer",
			},
			"feedbackText": {
				Type:      "string",
				MaxLength: validation.IntPtr(1000),
			},
			"email": {
				Type:   "string",
				Format: "email",
			},
			"phone": {
				Type:        "string",
				Pattern:     `^\+[1-9]\d{6,14}$`,
				Description: "E.164 phone number",
			},
		},
		AdditionalProperties: true,
	}
}
