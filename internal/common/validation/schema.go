package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema describes a worker's job variables. It marshals to draft-07 JSON Schema.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     string              `json:"pattern,omitempty"`
	Format      string              `json:"format,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	MaxItems    *int                `json:"maxItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into a single line suitable for a BPMN error message.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Validator is a compiled schema. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// Compile turns a JSONSchema into a reusable Validator.
func Compile(schema JSONSchema) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// MustCompile is Compile for package-level schemas that are known to be well formed.
func MustCompile(schema JSONSchema) *Validator {
	v, err := Compile(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a raw JSON document. The error is only set when the document is not JSON at all.
func (v *Validator) Validate(document []byte) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return toResult(result), nil
}

// ValidateInput checks already-decoded job variables.
func (v *Validator) ValidateInput(input map[string]interface{}) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return toResult(result), nil
}

// ValidateJSON compiles schema and validates document in one go.
func ValidateJSON(document []byte, schema JSONSchema) (*ValidationResult, error) {
	v, err := Compile(schema)
	if err != nil {
		return nil, err
	}
	return v.Validate(document)
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		field := e.Field()
		if prop, ok := e.Details()["property"].(string); ok && field == "(root)" {
			field = prop
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out
}

// String renders the schema as JSON, handy for the catalog tool and debugging.
func (s JSONSchema) String() string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
