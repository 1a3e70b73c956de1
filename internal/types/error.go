package types

import "fmt"

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// FieldError carries a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects malformed or incomplete input. Fields is empty
// when the failure is not attributable to a single field.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%d field errors)", e.Message, len(e.Fields))
	}
	return e.Message
}

// PolicyViolation rejects an operation that is well formed but forbidden
// by current portal policy, such as submitting while the window is closed
// or editing an application a second time.
type PolicyViolation struct {
	Message string `json:"message"`
}

func (e *PolicyViolation) Error() string {
	return e.Message
}

// NotFound reports a missing entity by kind and identifier.
type NotFound struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// SelectionError reports an institution or course selection that does not
// hold together, such as a course belonging to a different institution.
type SelectionError struct {
	Message string `json:"message"`
}

func (e *SelectionError) Error() string {
	return e.Message
}

// ConflictError reports a state conflict with an existing record, such as
// a duplicate application for the same cycle.
type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}
