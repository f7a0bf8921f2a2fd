package remote

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/goliatone/gitscm/pkg/gitutil"
)

const (
	remoteName     = "origin"
	defaultTimeout = 30 * time.Second
)

// GitLister lists remote references with go-git against an in-memory storage,
// the equivalent of `git ls-remote <url>`.
type GitLister struct {
	timeout time.Duration
	logger  Logger
}

// NewGitLister creates a lister bounded by the given timeout.
func NewGitLister(timeout time.Duration, logger Logger) *GitLister {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &GitLister{timeout: timeout, logger: logger}
}

// List returns the references advertised by the remote.
func (l *GitLister) List(ctx context.Context, req Request) ([]*plumbing.Reference, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrEmptyURL
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	protocol := gitutil.DetectProtocol(req.URL)
	opts := &git.ListOptions{
		Auth: gitutil.AuthMethod(req.URL, gitutil.Credentials{
			Username: req.Username,
			Password: req.Password,
		}),
		// Plain http never negotiates TLS
		InsecureSkipTLS: req.InsecureSkipTLS && protocol == gitutil.ProtocolHTTPS,
	}

	rem := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{req.URL},
	})

	start := time.Now()
	refs, err := rem.ListContext(ctx, opts)
	if err != nil {
		return nil, &ListError{URL: req.URL, Err: err}
	}

	l.logger.Debug("remote listed",
		"url", gitutil.RedactURL(req.URL),
		"protocol", string(protocol),
		"authenticated", opts.Auth != nil,
		"insecure_skip_tls", opts.InsecureSkipTLS,
		"refs", len(refs),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return refs, nil
}
