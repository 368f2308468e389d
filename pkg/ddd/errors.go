package ddd

import "fmt"

// ValidationError reports a violated aggregate or value-object invariant.
// It is raised at construction or mutation time and never persisted.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Code)
}

// Invalid reports an invalid value for a field.
func Invalid(field string) error {
	return &ValidationError{Field: field, Code: "invalid_" + field}
}

// Missing reports a required field that was not provided.
func Missing(field string) error {
	return &ValidationError{Field: field, Code: "required"}
}
