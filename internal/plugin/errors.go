package plugin

import (
	"errors"
	"fmt"
)

// ValidationError flags a parameter whose value failed a check. It is the
// only error kind surfaced to users; the cause is kept for logs.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
	Value string `json:"value,omitempty"`
	Err   error  `json:"-"`
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("plugin: %s is invalid (%s)", e.Field, e.Code)
	}
	return fmt.Sprintf("plugin: %s is invalid (%s): %v", e.Field, e.Code, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AsValidationError extracts the ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
