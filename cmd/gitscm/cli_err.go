package main

import (
	"errors"
	"fmt"

	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/store"
)

// Exit codes for different error types
const (
	ExitSuccess         = 0 // Successful execution
	ExitGenericError    = 1 // Generic error
	ExitConfigError     = 2 // Configuration error
	ExitValidationError = 3 // Parameter rejected by the remote or admin check
	ExitNetworkError    = 4 // Server could not be started or reached
	ExitFileError       = 5 // Store file could not be written
	ExitNotFoundError   = 6 // Unknown node or subscription
	ExitUsageError      = 7 // Missing or malformed arguments
	ExitInterruptError  = 9 // User interruption (SIGINT, etc.)
)

// CLIError carries the exit code alongside the message.
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

func (e *CLIError) ExitCode() int {
	return e.Code
}

func newConfigError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitConfigError, Message: message, Cause: cause}
}

func newUsageError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitUsageError, Message: message, Cause: cause}
}

func newNetworkError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitNetworkError, Message: message, Cause: cause}
}

func newFileError(message string, cause error) *CLIError {
	return &CLIError{Code: ExitFileError, Message: message, Cause: cause}
}

// classifyError maps plugin and store failures onto exit codes.
func classifyError(message string, err error) error {
	if err == nil {
		return nil
	}

	if verr, ok := plugin.AsValidationError(err); ok {
		return &CLIError{
			Code:    ExitValidationError,
			Message: fmt.Sprintf("%s: %s check failed for %q", message, verr.Code, verr.Value),
			Cause:   verr.Err,
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return &CLIError{Code: ExitNotFoundError, Message: message, Cause: err}
	}
	return &CLIError{Code: ExitGenericError, Message: message, Cause: err}
}
