package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Builder orchestrates config assembly from various sources.
// Later sources take precedence: file < env < flags.
type Builder interface {
	FromFile(path string) Builder
	FromEnv() Builder
	FromFlags(cmd *cobra.Command) Builder
	Build() (*Config, error)
}

// NewBuilder returns a builder seeded with no sources.
func NewBuilder() Builder {
	return &builder{}
}

type builder struct {
	layers []*Config
	errs   []error
}

// FromFile loads the given file. An empty path falls back to GITSCM_CONFIG
// and then to the discovered default location; a missing default is not an error.
func (b *builder) FromFile(path string) Builder {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = DiscoverConfigFile()
	}
	if path == "" {
		return b
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.layers = append(b.layers, cfg)
	return b
}

func (b *builder) FromEnv() Builder {
	cfg, err := FromEnv()
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.layers = append(b.layers, cfg)
	return b
}

func (b *builder) FromFlags(cmd *cobra.Command) Builder {
	if cmd == nil {
		return b
	}
	cfg, err := LoadFromFlags(cmd)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.layers = append(b.layers, cfg)
	return b
}

// Build merges all layers, applies defaults and validates the result.
func (b *builder) Build() (*Config, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(b.errs...))
	}

	cfg := New()
	for _, layer := range b.layers {
		Merge(cfg, layer)
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge copies every value set in src over dst.
func Merge(dst, src *Config) {
	if dst == nil || src == nil {
		return
	}

	if src.gitSSLVerifySet() {
		dst.setGitSSLVerify(src.Git.SSLVerify)
	}
	if src.Git.Timeout != 0 {
		dst.Git.Timeout = src.Git.Timeout
	}
	if src.Git.CacheTTL != 0 {
		dst.Git.CacheTTL = src.Git.CacheTTL
	}
	if src.Admin.Timeout != 0 {
		dst.Admin.Timeout = src.Admin.Timeout
	}
	if src.Admin.UserAgent != "" {
		dst.Admin.UserAgent = src.Admin.UserAgent
	}

	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.loggingVerboseSet() {
		dst.setLoggingVerbose(src.Logging.Verbose)
	}
	if src.loggingQuietSet() {
		dst.setLoggingQuiet(src.Logging.Quiet)
	}

	if src.Store.Path != "" {
		dst.Store.Path = src.Store.Path
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
}

// Default returns a validated configuration built only from defaults.
func Default() *Config {
	cfg := New()
	_ = ApplyDefaults(cfg)
	return cfg
}
