package usecase

import (
	"errors"
	"fmt"
)

// Validation error kinds. A *ValidationError always matches exactly one of them
// with errors.Is.
var (
	ErrMissingUnit     = errors.New("missing weight unit")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// User-facing messages, one per validation kind.
const (
	MessageMissingUnit     = "Please select either pounds or ounces for the actual weight."
	MessageInvalidNumber   = "Please provide valid inputs for length, width, height, and actual weight."
	MessageInvalidGeometry = "Error: Length must be greater than or equal to both height and width."

	// MessageCalculated is shown once the carrier table has been filled.
	MessageCalculated = "Dimensional Weight has been calculated on the table."
)

// Field names a raw input field.
type Field string

const (
	FieldLength       Field = "length"
	FieldWidth        Field = "width"
	FieldHeight       Field = "height"
	FieldActualWeight Field = "actual-weight"
	FieldUnit         Field = "unit"
)

// ValidationError reports the first validation rule a calculation input failed.
type ValidationError struct {
	// Kind is ErrMissingUnit, ErrInvalidNumber or ErrInvalidGeometry.
	Kind error

	// Field is the offending field. Set for ErrInvalidNumber and ErrMissingUnit.
	Field Field

	// Value is the raw text that failed to parse, if any.
	Value string

	// Err is the underlying cause (e.g., a strconv error).
	Err error
}

func newValidationError(kind error, field Field, value string, cause error) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value, Err: cause}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code returns a stable machine-readable code for the kind.
func (e *ValidationError) Code() string {
	switch {
	case errors.Is(e.Kind, ErrMissingUnit):
		return "MISSING_UNIT"
	case errors.Is(e.Kind, ErrInvalidNumber):
		return "INVALID_NUMBER"
	case errors.Is(e.Kind, ErrInvalidGeometry):
		return "INVALID_GEOMETRY"
	default:
		return "VALIDATION_ERROR"
	}
}

// Message returns the message shown to the user.
func (e *ValidationError) Message() string {
	switch {
	case errors.Is(e.Kind, ErrMissingUnit):
		return MessageMissingUnit
	case errors.Is(e.Kind, ErrInvalidNumber):
		return MessageInvalidNumber
	default:
		return MessageInvalidGeometry
	}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
