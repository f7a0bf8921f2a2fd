package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvParser provides functionality to parse configuration from environment variables.
// It handles type conversions, validation, and error reporting for all supported
// environment variables defined in the GITSCM_* namespace.
type EnvParser struct {
	// getEnv allows injection of environment variable retrieval for testing
	getEnv func(string) string
}

// NewEnvParser creates a new environment variable parser.
func NewEnvParser() *EnvParser {
	return &EnvParser{
		getEnv: os.Getenv,
	}
}

// NewEnvParserWithGetter creates a new environment variable parser with custom getter.
// This is primarily used for testing with mock environment variables.
func NewEnvParserWithGetter(getter func(string) string) *EnvParser {
	return &EnvParser{
		getEnv: getter,
	}
}

// ParseEnv parses all GITSCM environment variables and returns a populated Config.
// It returns an error if any environment variables contain invalid values.
func (p *EnvParser) ParseEnv() (*Config, error) {
	var errs []string
	config := New()

	if err := p.parseGit(config); err != nil {
		errs = append(errs, err.Error())
	}

	if err := p.parseAdmin(config); err != nil {
		errs = append(errs, err.Error())
	}

	if err := p.parseLogging(config); err != nil {
		errs = append(errs, err.Error())
	}

	if path := p.getEnv(EnvStorePath); path != "" {
		config.Store.Path = path
	}

	if addr := p.getEnv(EnvServerAddr); addr != "" {
		config.Server.Addr = addr
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("environment variable parsing errors: %s", strings.Join(errs, "; "))
	}

	return config, nil
}

// parseGit parses remote listing environment variables
func (p *EnvParser) parseGit(config *Config) error {
	var errs []string

	if verifyStr := p.getEnv(EnvSSLVerify); verifyStr != "" {
		verify, err := ParseBool(verifyStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvSSLVerify, err))
		} else {
			config.setGitSSLVerify(verify)
		}
	}

	if timeoutStr := p.getEnv(EnvGitTimeout); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvGitTimeout, err))
		} else {
			config.Git.Timeout = timeout
		}
	}

	if ttlStr := p.getEnv(EnvGitCacheTTL); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvGitCacheTTL, err))
		} else {
			config.Git.CacheTTL = ttl
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("git configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// parseAdmin parses admin probe environment variables
func (p *EnvParser) parseAdmin(config *Config) error {
	if agent := p.getEnv(EnvUserAgent); agent != "" {
		config.Admin.UserAgent = agent
	}

	if timeoutStr := p.getEnv(EnvAdminTimeout); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("admin configuration errors: invalid %s: %v", EnvAdminTimeout, err)
		}
		config.Admin.Timeout = timeout
	}

	return nil
}

// parseLogging parses logging-related environment variables
func (p *EnvParser) parseLogging(config *Config) error {
	var errs []string

	if level := p.getEnv(EnvLogLevel); level != "" {
		if !isValidLogLevel(level) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [debug, info, warn, error], got %q", EnvLogLevel, level))
		} else {
			config.Logging.Level = strings.ToLower(level)
		}
	}

	if format := p.getEnv(EnvLogFormat); format != "" {
		if !isValidLogFormat(format) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [text, json], got %q", EnvLogFormat, format))
		} else {
			config.Logging.Format = strings.ToLower(format)
		}
	}

	if verboseStr := p.getEnv(EnvVerbose); verboseStr != "" {
		verbose, err := ParseBool(verboseStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvVerbose, err))
		} else {
			config.setLoggingVerbose(verbose)
		}
	}

	if quietStr := p.getEnv(EnvQuiet); quietStr != "" {
		quiet, err := ParseBool(quietStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvQuiet, err))
		} else {
			config.setLoggingQuiet(quiet)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ParseBool parses a boolean value from a string, supporting multiple formats.
// It is shared with subscription parameters, which carry the same boolean-like values.
func ParseBool(value string) (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch lower {
	case "true", "1", "yes", "on", "enabled":
		return true, nil
	case "false", "0", "no", "off", "disabled", "":
		return false, nil
	default:
		return false, fmt.Errorf("must be one of [true, false, 1, 0, yes, no, on, off, enabled, disabled], got %q", value)
	}
}

// isValidLogLevel checks if the given log level is valid
func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// isValidLogFormat checks if the given log format is valid
func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}

// FromEnv is a convenience function that creates a new parser and parses the environment.
func FromEnv() (*Config, error) {
	return NewEnvParser().ParseEnv()
}
