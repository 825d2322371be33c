package schema

import (
	"fmt"
	"strings"
)

// FieldError names the field of an input that failed a rule.
// Path is a dotted path from the root of the validated document,
// e.g. "level" or "image.uri".
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationError reports every field violation found in a single input.
// Callers should use errors.As to detect it.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// FieldFor returns the first violation recorded for the given path,
// or nil if the path validated.
func (e *ValidationError) FieldFor(path string) *FieldError {
	for i := range e.Fields {
		if e.Fields[i].Path == path {
			return &e.Fields[i]
		}
	}
	return nil
}

func newValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
