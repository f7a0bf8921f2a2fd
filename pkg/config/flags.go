package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagConfig represents flag parsing configuration and results
type FlagConfig struct {
	ConfigFile   string
	StorePath    string
	SSLVerify    bool
	GitTimeout   time.Duration
	GitCacheTTL  time.Duration
	AdminTimeout time.Duration
	UserAgent    string
	Addr         string

	// Logging flags
	Verbose   bool
	Quiet     bool
	LogLevel  string
	LogFormat string

	sslVerifySet    bool
	gitTimeoutSet   bool
	gitCacheTTLSet  bool
	adminTimeoutSet bool
	verboseSet      bool
	quietSet        bool
	logLevelSet     bool
	logFormatSet    bool
}

// AddFlags adds all configuration flags to the provided cobra command.
// Flags are persistent so every subcommand inherits them.
func AddFlags(cmd *cobra.Command) *FlagConfig {
	fc := &FlagConfig{}
	flags := cmd.PersistentFlags()

	flags.StringVarP(&fc.ConfigFile, "config", "c", "",
		"Configuration file path (default: $XDG_CONFIG_HOME/gitscm/config.yaml)")
	flags.StringVarP(&fc.StorePath, "store", "s", "",
		"Subscription parameter store file")
	flags.BoolVar(&fc.SSLVerify, "ssl-verify", true,
		"Verify TLS certificates of https remotes")
	flags.DurationVar(&fc.GitTimeout, "git-timeout", DefaultGitTimeout,
		"Remote listing timeout")
	flags.DurationVar(&fc.GitCacheTTL, "git-cache-ttl", 0,
		"Cache successful remote listings for this long (0 disables)")
	flags.DurationVar(&fc.AdminTimeout, "admin-timeout", DefaultAdminTimeout,
		"Admin index request timeout")
	flags.StringVar(&fc.UserAgent, "user-agent", "",
		"User-Agent sent to the admin endpoint")
	flags.StringVar(&fc.Addr, "addr", "",
		"REST listen address (default: "+DefaultServerAddr+")")

	flags.BoolVarP(&fc.Verbose, "verbose", "v", false,
		"Verbose logging output (equivalent to --log-level=debug)")
	flags.BoolVarP(&fc.Quiet, "quiet", "q", false,
		"Suppress non-essential output (equivalent to --log-level=warn)")
	flags.StringVar(&fc.LogLevel, "log-level", "",
		"Logging level (debug, info, warn, error)")
	flags.StringVar(&fc.LogFormat, "log-format", "",
		"Log output format (text, json)")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("verbose", "log-level")
	cmd.MarkFlagsMutuallyExclusive("quiet", "log-level")

	return fc
}

// ValidateFlags validates flag combinations and values.
func (fc *FlagConfig) ValidateFlags() error {
	var errors []string

	if fc.gitTimeoutSet && fc.GitTimeout <= 0 {
		errors = append(errors, "git-timeout must be positive")
	}

	if fc.gitCacheTTLSet && fc.GitCacheTTL < 0 {
		errors = append(errors, "git-cache-ttl cannot be negative")
	}

	if fc.adminTimeoutSet && fc.AdminTimeout <= 0 {
		errors = append(errors, "admin-timeout must be positive")
	}

	if fc.logLevelSet && !isValidLogLevel(fc.LogLevel) {
		errors = append(errors, "log-level must be one of: debug, info, warn, error")
	}

	if fc.logFormatSet && !isValidLogFormat(fc.LogFormat) {
		errors = append(errors, "log-format must be one of: text, json")
	}

	if len(errors) > 0 {
		return fmt.Errorf("flag validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ToConfig converts flag configuration to a Config struct.
// It emits only the values explicitly set via flags; callers should merge
// this result with other configuration sources to honour precedence rules.
func (fc *FlagConfig) ToConfig() (*Config, error) {
	config := New()

	config.Store.Path = fc.StorePath
	config.Admin.UserAgent = fc.UserAgent
	config.Server.Addr = fc.Addr

	if fc.sslVerifySet {
		config.setGitSSLVerify(fc.SSLVerify)
	}
	if fc.gitTimeoutSet {
		config.Git.Timeout = fc.GitTimeout
	}
	if fc.gitCacheTTLSet {
		config.Git.CacheTTL = fc.GitCacheTTL
	}
	if fc.adminTimeoutSet {
		config.Admin.Timeout = fc.AdminTimeout
	}

	if fc.verboseSet {
		config.setLoggingVerbose(fc.Verbose)
		if fc.Verbose {
			config.Logging.Level = "debug"
		}
	}
	if fc.quietSet {
		config.setLoggingQuiet(fc.Quiet)
		if fc.Quiet {
			config.Logging.Level = "warn"
		}
	}
	if fc.logLevelSet && fc.LogLevel != "" {
		config.Logging.Level = fc.LogLevel
	}
	if fc.logFormatSet && fc.LogFormat != "" {
		config.Logging.Format = fc.LogFormat
	}

	return config, nil
}

// LoadFromFlags loads configuration from command-line flags using cobra.
func LoadFromFlags(cmd *cobra.Command) (*Config, error) {
	if cmd == nil {
		return nil, fmt.Errorf("command cannot be nil")
	}

	// cmd.Flags() returns both local and inherited flags
	fc := extractFlagConfig(cmd.Flags())

	if err := fc.ValidateFlags(); err != nil {
		return nil, err
	}

	return fc.ToConfig()
}

// extractFlagConfig extracts changed flag values from a flag set into FlagConfig
func extractFlagConfig(flags *pflag.FlagSet) *FlagConfig {
	fc := &FlagConfig{}

	if flags.Changed("config") {
		fc.ConfigFile, _ = flags.GetString("config")
	}
	if flags.Changed("store") {
		fc.StorePath, _ = flags.GetString("store")
	}
	if flags.Changed("ssl-verify") {
		fc.SSLVerify, _ = flags.GetBool("ssl-verify")
		fc.sslVerifySet = true
	}
	if flags.Changed("git-timeout") {
		fc.GitTimeout, _ = flags.GetDuration("git-timeout")
		fc.gitTimeoutSet = true
	}
	if flags.Changed("git-cache-ttl") {
		fc.GitCacheTTL, _ = flags.GetDuration("git-cache-ttl")
		fc.gitCacheTTLSet = true
	}
	if flags.Changed("admin-timeout") {
		fc.AdminTimeout, _ = flags.GetDuration("admin-timeout")
		fc.adminTimeoutSet = true
	}
	if flags.Changed("user-agent") {
		fc.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("addr") {
		fc.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("verbose") {
		fc.Verbose, _ = flags.GetBool("verbose")
		fc.verboseSet = true
	}
	if flags.Changed("quiet") {
		fc.Quiet, _ = flags.GetBool("quiet")
		fc.quietSet = true
	}
	if flags.Changed("log-level") {
		fc.LogLevel, _ = flags.GetString("log-level")
		fc.logLevelSet = true
	}
	if flags.Changed("log-format") {
		fc.LogFormat, _ = flags.GetString("log-format")
		fc.logFormatSet = true
	}

	return fc
}
