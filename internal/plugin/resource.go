// Package plugin implements the Git source-control service plugin: remote
// repository validation, admin index probing and repository search.
package plugin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/goliatone/gitscm/internal/remote"
	"github.com/goliatone/gitscm/internal/store"
	"github.com/goliatone/gitscm/pkg/config"
	"github.com/goliatone/gitscm/pkg/gitutil"
)

// Resource is the plugin entry point used by the host framework, the REST
// surface and the CLI.
type Resource struct {
	lister  remote.Lister
	fetcher IndexFetcher
	store   store.Store
	config  Config
	logger  Logger
}

// New creates a plugin resource.
func New(lister remote.Lister, fetcher IndexFetcher, st store.Store, cfg Config, logger Logger) *Resource {
	if logger == nil {
		logger = nopLogger{}
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	return &Resource{
		lister:  lister,
		fetcher: fetcher,
		store:   st,
		config:  cfg,
		logger:  logger,
	}
}

// Key returns the plugin key.
func (r *Resource) Key() string {
	return Key
}

// RepositoryURL returns the server URL joined with the repository name.
func (r *Resource) RepositoryURL(params Parameters) string {
	return gitutil.JoinRepositoryURL(params[ParameterURL], params[ParameterRepository])
}

// ValidateRepository lists the remote repository and returns the listing.
// Any failure is reported against the repository parameter.
func (r *Resource) ValidateRepository(ctx context.Context, params Parameters) (string, error) {
	refs, err := r.listRepository(ctx, params)
	if err != nil {
		return "", err
	}
	return remote.Format(refs), nil
}

func (r *Resource) listRepository(ctx context.Context, params Parameters) ([]*plumbing.Reference, error) {
	repository := params[ParameterRepository]
	url := r.RepositoryURL(params)

	if err := gitutil.ValidateRepositoryName(repository); err != nil {
		r.logger.Error("Git validation failed", "url", gitutil.RedactURL(url), "error", err)
		return nil, repositoryError(repository, err)
	}

	req := remote.Request{
		URL:             url,
		InsecureSkipTLS: !r.sslVerify(),
	}
	if user := params[ParameterUser]; !isBlank(user) {
		req.Username = user
		req.Password = params[ParameterPassword]
	}

	start := time.Now()
	refs, err := r.lister.List(ctx, req)
	if err != nil {
		r.logger.Error("Git validation failed", "url", gitutil.RedactURL(url), "error", err)
		return nil, repositoryError(repository, err)
	}

	r.logger.Debug("Git repository validated",
		"url", gitutil.RedactURL(url),
		"refs", len(refs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return refs, nil
}

// CheckStatus probes the admin index when the index parameter is enabled and
// the server is reached over http(s). Other protocols are reported up.
func (r *Resource) CheckStatus(ctx context.Context, params Parameters) (bool, error) {
	url := params[ParameterURL]
	if !parseBool(params[ParameterIndex]) || !gitutil.IsHTTPURL(url) {
		return true, nil
	}

	if _, err := r.fetchIndex(ctx, params); err != nil {
		r.logger.Error("Git admin check failed", "url", gitutil.RedactURL(url), "error", err)
		return false, adminError(url, err)
	}
	return true, nil
}

// CheckSubscriptionStatus validates the repository and summarises its references.
func (r *Resource) CheckSubscriptionStatus(ctx context.Context, params Parameters) (*SubscriptionStatus, error) {
	refs, err := r.listRepository(ctx, params)
	if err != nil {
		return nil, err
	}

	summary := remote.Summarize(refs)
	data := map[string]any{
		"info":     remote.Format(refs),
		"refs":     summary.Refs,
		"branches": summary.Branches,
		"tags":     summary.Tags,
	}
	if summary.Head != "" {
		data["head"] = summary.Head
	}
	if summary.LatestTag != "" {
		data["latestTag"] = summary.LatestTag
	}

	return &SubscriptionStatus{Up: true, Data: data}, nil
}

// Link validates the repository of an existing subscription.
func (r *Resource) Link(ctx context.Context, subscription int) error {
	params, err := r.store.SubscriptionParameters(subscription)
	if err != nil {
		return fmt.Errorf("plugin: load subscription %d: %w", subscription, err)
	}

	if _, err := r.ValidateRepository(ctx, params); err != nil {
		return err
	}

	r.logger.Info("subscription linked", "subscription", subscription, "repository", params[ParameterRepository])
	return nil
}

// Create behaves like Link; nothing is provisioned on the server.
func (r *Resource) Create(ctx context.Context, subscription int) error {
	return r.Link(ctx, subscription)
}

// Delete has nothing to clean up.
func (r *Resource) Delete(_ context.Context, subscription int, remoteData bool) error {
	r.logger.Debug("subscription deleted", "subscription", subscription, "remote_data", remoteData)
	return nil
}

// Version returns an empty string, no tool version is exposed.
func (r *Resource) Version(context.Context, Parameters) (string, error) {
	return "", nil
}

// LastVersion returns an empty string, no tool version is exposed.
func (r *Resource) LastVersion(context.Context) (string, error) {
	return "", nil
}

func (r *Resource) sslVerify() bool {
	if r.store == nil {
		return r.config.SSLVerify
	}

	value, ok, err := r.store.Configuration(ConfSSLVerify)
	if err != nil {
		r.logger.Warn("failed to read configuration", "key", ConfSSLVerify, "error", err)
		return r.config.SSLVerify
	}
	if !ok {
		return r.config.SSLVerify
	}

	verify, err := config.ParseBool(value)
	if err != nil {
		r.logger.Warn("invalid configuration value", "key", ConfSSLVerify, "value", value, "error", err)
		return r.config.SSLVerify
	}
	return verify
}

func repositoryError(repository string, err error) error {
	return &ValidationError{Field: ParameterRepository, Code: CodeRepository, Value: repository, Err: err}
}

func adminError(url string, err error) error {
	return &ValidationError{Field: ParameterURL, Code: CodeAdmin, Value: url, Err: err}
}

// parseBool treats anything unrecognised as false.
func parseBool(value string) bool {
	b, err := config.ParseBool(value)
	return err == nil && b
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
