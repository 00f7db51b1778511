package task

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every error caused by rejected task input.
var ErrValidation = errors.New("invalid task input")

// Sentinel validation errors. All of them satisfy errors.Is(err, ErrValidation).
var (
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: status must be one of todo, in-progress, done", ErrValidation)
	ErrInvalidPriority = fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	ErrInvalidSort     = fmt.Errorf("%w: sort must be one of createdAt, priority, dueDate", ErrValidation)
)

// validationCodes gives each sentinel a stable name so it can cross the
// service bus and be rebuilt on the other side.
var validationCodes = []struct {
	code string
	err  error
}{
	{"title_required", ErrTitleRequired},
	{"invalid_status", ErrInvalidStatus},
	{"invalid_priority", ErrInvalidPriority},
	{"invalid_sort", ErrInvalidSort},
}

// ValidationCode returns the stable code for a validation error, or "" if err
// is not a validation error.
func ValidationCode(err error) string {
	if !errors.Is(err, ErrValidation) {
		return ""
	}
	for _, vc := range validationCodes {
		if errors.Is(err, vc.err) {
			return vc.code
		}
	}
	return "invalid"
}

// ValidationError is the inverse of ValidationCode. Unknown codes map to
// ErrValidation itself.
func ValidationError(code string) error {
	for _, vc := range validationCodes {
		if vc.code == code {
			return vc.err
		}
	}
	return ErrValidation
}
