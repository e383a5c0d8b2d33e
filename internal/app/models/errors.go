package models

import (
	"errors"
	"fmt"
)

// Domain specific errors shared by the data layer.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrValidation = errors.New("validation failed")
	ErrConstraint = errors.New("constraint violation")
)

// ValidationError reports which field failed and why. It matches
// ErrValidation; an ownership error also matches ErrConstraint, the class the
// store reports for the same rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrConstraint {
		return e.Reason == ReasonSingleOwner
	}
	return target == ErrValidation
}

// Validation reasons, kept stable so callers can map them to localized text.
const (
	ReasonRequired    = "required"
	ReasonInvalidDate = "invalid date"
	ReasonDateOrder   = "start date after end date"
	ReasonSingleOwner = "exactly one owner must be set"
)

// NewValidationError builds a *ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
