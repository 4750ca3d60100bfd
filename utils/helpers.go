package utils

import (
	"encoding/json"
	"io"

	"github.com/awantoch/foundryflow/constants"
)

// WriteJSONIndent writes v as indented JSON followed by a newline.
func WriteJSONIndent(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", constants.JSONIndent)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ============================================================================
// STANDARDIZED VALIDATION HELPERS
// ============================================================================

// ValidateOneOf checks if value is one of the allowed values
func ValidateOneOf(fieldName string, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Errorf("field '%s' must be one of %v, got '%s'", fieldName, allowed, value)
}
