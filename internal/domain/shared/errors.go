package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every field problem found while validating one input
type ValidationErrors []*ValidationError

// Add appends a field problem
func (v *ValidationErrors) Add(field, format string, args ...interface{}) {
	*v = append(*v, NewValidationError(field, fmt.Sprintf(format, args...)))
}

// Empty reports whether no problems were collected
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Fields returns the names of the invalid fields in the order they were reported
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	return fields
}
