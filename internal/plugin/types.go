package plugin

import (
	"context"

	"github.com/goliatone/gitscm/internal/admin"
)

// Key identifies the plugin inside the host framework.
const Key = "service:scm:git"

// Parameter names, all namespaced by Key.
const (
	ParameterURL        = Key + ":url"
	ParameterRepository = Key + ":repository"
	ParameterUser       = Key + ":user"
	ParameterPassword   = Key + ":password"
	ParameterIndex      = Key + ":index"

	// ConfSSLVerify is the platform configuration toggling TLS verification.
	ConfSSLVerify = Key + ":sslVerify"
)

// Error codes reported in ValidationError.Code.
const (
	CodeRepository = "git-repository"
	CodeAdmin      = "git-admin"
)

// DefaultSearchLimit caps FindAllByName results.
const DefaultSearchLimit = 10

// Parameters holds the string parameters attached to a node or subscription.
type Parameters map[string]string

// SubscriptionStatus is the outcome of a subscription health check.
type SubscriptionStatus struct {
	Up   bool           `json:"up"`
	Data map[string]any `json:"data,omitempty"`
}

// NamedBean is a search result entry.
type NamedBean struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IndexFetcher retrieves the raw admin index page.
type IndexFetcher interface {
	Fetch(ctx context.Context, req admin.Request) (string, error)
}

// Config tunes the resource behaviour.
type Config struct {
	// SSLVerify is used when the platform configuration has no sslVerify value.
	SSLVerify bool

	// SearchLimit caps FindAllByName; zero means DefaultSearchLimit.
	SearchLimit int
}

// DefaultConfig returns the defaults used by New when no config is supplied.
func DefaultConfig() Config {
	return Config{SSLVerify: true, SearchLimit: DefaultSearchLimit}
}

// Logger defines the logging interface used by the plugin.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
