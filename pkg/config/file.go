package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding. Booleans are pointers so an
// absent key can be told apart from an explicit false.
type fileConfig struct {
	Git struct {
		SSLVerify *bool  `yaml:"ssl_verify"`
		Timeout   string `yaml:"timeout"`
		CacheTTL  string `yaml:"cache_ttl"`
	} `yaml:"git"`
	Admin struct {
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"admin"`
	Logging struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		Verbose *bool  `yaml:"verbose"`
		Quiet   *bool  `yaml:"quiet"`
	} `yaml:"logging"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// LoadFromFile reads configuration from the provided YAML path.
// Relative store paths are resolved against the directory of the file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg, err := parseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), cfg.Store.Path)
	}

	return cfg, nil
}

func parseFile(data []byte) (*Config, error) {
	var raw fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg := New()
	var err error

	if raw.Git.SSLVerify != nil {
		cfg.setGitSSLVerify(*raw.Git.SSLVerify)
	}
	if cfg.Git.Timeout, err = parseDuration("git.timeout", raw.Git.Timeout); err != nil {
		return nil, err
	}
	if cfg.Git.CacheTTL, err = parseDuration("git.cache_ttl", raw.Git.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.Admin.Timeout, err = parseDuration("admin.timeout", raw.Admin.Timeout); err != nil {
		return nil, err
	}
	cfg.Admin.UserAgent = raw.Admin.UserAgent

	cfg.Logging.Level = raw.Logging.Level
	cfg.Logging.Format = raw.Logging.Format
	if raw.Logging.Verbose != nil {
		cfg.setLoggingVerbose(*raw.Logging.Verbose)
	}
	if raw.Logging.Quiet != nil {
		cfg.setLoggingQuiet(*raw.Logging.Quiet)
	}

	cfg.Store.Path = raw.Store.Path
	cfg.Server.Addr = raw.Server.Addr

	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

// DiscoverConfigFile returns the default configuration file location when it exists.
// Resolution: $XDG_CONFIG_HOME/gitscm/config.yaml -> ~/.config/gitscm/config.yaml.
func DiscoverConfigFile() string {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "gitscm", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "gitscm", "config.yaml"))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
