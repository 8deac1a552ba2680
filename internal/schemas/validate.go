// Package schemas checks canonical analysis results against the published JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis_result.schema.json
var analysisResultSchema string

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateResult checks any value that serializes to an analysis result.
func ValidateResult(v any) error {
	return validate(gojsonschema.NewGoLoader(v))
}

// ValidateResultJSON checks a serialized analysis result.
func ValidateResultJSON(data []byte) error {
	return validate(gojsonschema.NewBytesLoader(data))
}

func validate(document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(analysisResultSchema), document)
	if err != nil {
		return fmt.Errorf("validating analysis result: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, e := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return ve
}
