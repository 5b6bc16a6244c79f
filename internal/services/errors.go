package services

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidStatus      = errors.New("alert status cannot be set back to active")
	ErrInvalidTransition  = errors.New("alert status transition not allowed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports bad caller input. Its message is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// inRange reports whether v is a finite number within [lo, hi]. NaN fails
// every comparison, so it has to be ruled out explicitly.
func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= lo && v <= hi
}
