package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("config validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate inspects the configuration for missing or invalid fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{
			Field:   "config",
			Value:   nil,
			Message: "configuration cannot be nil",
		}
	}

	var errors ValidationErrors

	errors = append(errors, validateTimeout("git.timeout", cfg.Git.Timeout)...)
	errors = append(errors, validateTimeout("admin.timeout", cfg.Admin.Timeout)...)
	if cfg.Git.CacheTTL < 0 {
		errors = append(errors, ValidationError{
			Field:   "git.cache_ttl",
			Value:   cfg.Git.CacheTTL,
			Message: "cache ttl cannot be negative",
		})
	}
	errors = append(errors, validateLogging(&cfg.Logging)...)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   cfg.Server.Addr,
			Message: "listen address is required",
		})
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

func validateTimeout(field string, timeout time.Duration) []ValidationError {
	switch {
	case timeout <= 0:
		return []ValidationError{{Field: field, Value: timeout, Message: "timeout must be positive"}}
	case timeout > 10*time.Minute:
		return []ValidationError{{Field: field, Value: timeout, Message: "timeout cannot exceed 10 minutes"}}
	}
	return nil
}

// validateLogging validates logging configuration settings.
func validateLogging(logging *LoggingConfig) []ValidationError {
	var errors []ValidationError

	if !isValidLogLevel(logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   logging.Level,
			Message: "log level must be one of: debug, info, warn, error",
		})
	}

	if !isValidLogFormat(logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   logging.Format,
			Message: "log format must be one of: text, json",
		})
	}

	if logging.Verbose && logging.Quiet {
		errors = append(errors, ValidationError{
			Field:   "logging",
			Value:   "verbose+quiet",
			Message: "verbose and quiet are mutually exclusive",
		})
	}

	return errors
}

// ApplyDefaults applies sensible defaults to the configuration.
// It should be called after parsing but before validation.
func ApplyDefaults(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{
			Field:   "config",
			Value:   nil,
			Message: "configuration cannot be nil",
		}
	}

	if !cfg.gitSSLVerifySet() {
		cfg.Git.SSLVerify = true
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = DefaultGitTimeout
	}
	if cfg.Admin.Timeout == 0 {
		cfg.Admin.Timeout = DefaultAdminTimeout
	}

	switch {
	case cfg.Logging.Verbose:
		cfg.Logging.Level = "debug"
	case cfg.Logging.Quiet:
		cfg.Logging.Level = "warn"
	case cfg.Logging.Level == "":
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	return nil
}
