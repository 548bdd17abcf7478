package body

import (
	"errors"
	"fmt"
)

// Validation errors returned by the body factories.
var (
	ErrAreaTooSmall   = errors.New("body: area below minimum")
	ErrAreaTooLarge   = errors.New("body: area above maximum")
	ErrDensityTooLow  = errors.New("body: density below minimum")
	ErrDensityTooHigh = errors.New("body: density above maximum")
)

// ValidationError reports which construction bound was violated.
type ValidationError struct {
	Field   string
	Value   float64
	Bound   float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	switch e.Wrapped {
	case ErrAreaTooSmall, ErrDensityTooLow:
		return fmt.Sprintf("body: min %s is %g (got %g)", e.Field, e.Bound, e.Value)
	default:
		return fmt.Sprintf("body: max %s is %g (got %g)", e.Field, e.Bound, e.Value)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
