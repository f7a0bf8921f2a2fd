package config

import "time"

// Config represents the complete configuration for the Git SCM plugin.
// It aggregates remote listing, admin probe, logging, parameter store
// and REST server settings.
type Config struct {
	// Git contains remote listing settings
	Git GitConfig `json:"git" yaml:"git"`

	// Admin contains settings for the admin index probe
	Admin AdminConfig `json:"admin" yaml:"admin"`

	// Logging contains logging level and output configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Store contains the location of the subscription parameter store
	Store StoreConfig `json:"store" yaml:"store"`

	// Server contains REST surface settings
	Server ServerConfig `json:"server" yaml:"server"`

	setFlags boolFlags `json:"-" yaml:"-"`
}

type boolFlags struct {
	gitSSLVerify   bool
	loggingVerbose bool
	loggingQuiet   bool
}

// GitConfig controls how remote repositories are listed.
type GitConfig struct {
	// SSLVerify controls TLS certificate verification for https remotes.
	// It is the fallback for the service:scm:git:sslVerify configuration value.
	// Default: true
	SSLVerify bool `json:"ssl_verify" yaml:"ssl_verify"`

	// Timeout bounds a single remote listing.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// CacheTTL keeps successful listings for the given duration.
	// Default: 0 (disabled)
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// AdminConfig controls the HTTP probe against the repository index page.
type AdminConfig struct {
	// Timeout bounds a single index request.
	// Default: 15 seconds
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent overrides the User-Agent header sent to the admin endpoint.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// LoggingConfig manages logging level, output format, and
// structured logging configuration.
type LoggingConfig struct {
	// Level controls the logging verbosity level.
	// Valid values: debug, info, warn, error
	// Default: info
	Level string `json:"level" yaml:"level"`

	// Format controls the log output format.
	// Valid values: text, json
	// Default: text
	Format string `json:"format" yaml:"format"`

	// Verbose is equivalent to setting Level to "debug"
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Quiet is equivalent to setting Level to "warn"
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// StoreConfig locates the YAML document holding nodes, subscriptions
// and platform configuration values.
type StoreConfig struct {
	// Path of the store file. Empty means an in-memory store.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig contains the REST listener settings.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: :8080
	Addr string `json:"addr" yaml:"addr"`
}

// Environment variable names recognised by the env parser.
const (
	EnvConfigFile   = "GITSCM_CONFIG"
	EnvSSLVerify    = "GITSCM_SSL_VERIFY"
	EnvGitTimeout   = "GITSCM_GIT_TIMEOUT"
	EnvGitCacheTTL  = "GITSCM_GIT_CACHE_TTL"
	EnvAdminTimeout = "GITSCM_ADMIN_TIMEOUT"
	EnvUserAgent    = "GITSCM_USER_AGENT"
	EnvLogLevel     = "GITSCM_LOG_LEVEL"
	EnvLogFormat    = "GITSCM_LOG_FORMAT"
	EnvVerbose      = "GITSCM_VERBOSE"
	EnvQuiet        = "GITSCM_QUIET"
	EnvStorePath    = "GITSCM_STORE"
	EnvServerAddr   = "GITSCM_ADDR"
)

// Built-in defaults.
const (
	DefaultGitTimeout   = 30 * time.Second
	DefaultAdminTimeout = 15 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultServerAddr   = ":8080"
)

// New returns an empty configuration. Use ApplyDefaults to populate it.
func New() *Config {
	return &Config{}
}
