package api

import (
	"context"

	"github.com/goliatone/gitscm/internal/plugin"
)

// BasePath is where the plugin routes are mounted.
const BasePath = "/service/scm/git"

// Service is the plugin surface exposed over HTTP.
type Service interface {
	ValidateRepository(ctx context.Context, params plugin.Parameters) (string, error)
	CheckStatus(ctx context.Context, params plugin.Parameters) (bool, error)
	CheckSubscriptionStatus(ctx context.Context, params plugin.Parameters) (*plugin.SubscriptionStatus, error)
	Link(ctx context.Context, subscription int) error
	FindAllByName(ctx context.Context, node, criteria string) ([]plugin.NamedBean, error)
}

// ErrorResponse is returned for failures that are not parameter validations.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ValidationResponse reports the parameter that failed a check.
type ValidationResponse struct {
	Field string `json:"field"`
	Code  string `json:"code"`
	Value string `json:"value,omitempty"`
}

// ListingResponse wraps a repository listing.
type ListingResponse struct {
	Listing string `json:"listing"`
}

// StatusResponse wraps the admin probe outcome.
type StatusResponse struct {
	Up bool `json:"up"`
}

// Logger defines the logging interface used by the HTTP layer.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
