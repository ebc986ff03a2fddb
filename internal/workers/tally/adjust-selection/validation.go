package adjustselection

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"kind", "index", "action"},
		Properties: map[string]validation.Property{
			"tallyId": {
				Type:   "string",
				Format: "uuid",
			},
			"kind": {
				Type: "string",
				Enum: []string{string(KindIntake), string(KindActivity)},
			},
			"index": {
				Type:        "integer",
				Description: "Catalog position of the item to adjust",
			},
			"action": {
				Type: "string",
				Enum: []string{string(ActionIncrement), string(ActionDecrement)},
			},
		},
		AdditionalProperties: true,
	}
}
