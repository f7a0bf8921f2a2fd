package remote

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
)

// Lister queries a remote repository for its references without fetching content.
type Lister interface {
	List(ctx context.Context, req Request) ([]*plumbing.Reference, error)
}

// Request describes a single remote listing.
type Request struct {
	// URL is the full repository URL (server URL + repository name).
	URL string

	// Username and Password are passed through to the transport when Username is not blank.
	Username string
	Password string

	// InsecureSkipTLS disables certificate verification. Only honoured for https URLs.
	InsecureSkipTLS bool
}

// Logger defines the logging interface used by the remote package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
