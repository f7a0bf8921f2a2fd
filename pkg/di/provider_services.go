package di

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/gitscm/internal/api"
	"github.com/goliatone/gitscm/internal/metrics"
	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/remote"
	"github.com/goliatone/gitscm/internal/store"
	"github.com/goliatone/gitscm/pkg/config"
)

// provideStore opens the YAML store when a path is configured and falls back
// to an empty in-memory store otherwise.
func provideStore(cfg *config.Config, fs afero.Fs, logger Logger) (store.Store, error) {
	path := strings.TrimSpace(cfg.Store.Path)
	if path == "" {
		logger.Debug("no store path configured, using in-memory store")
		return store.NewMemoryStore(store.Document{}), nil
	}
	return store.NewFileStore(fs, path, logger)
}

// provideLister stacks cache over instrumentation over go-git so only real
// remote round trips are counted.
func provideLister(cfg *config.Config, m *metrics.Metrics, logger Logger) remote.Lister {
	var lister remote.Lister = remote.NewGitLister(cfg.Git.Timeout, logger)
	lister = metrics.InstrumentLister(lister, m)
	return remote.NewCachedLister(lister, cfg.Git.CacheTTL)
}

func providePlugin(cfg *config.Config, lister remote.Lister, fetcher plugin.IndexFetcher, st store.Store, logger Logger) *plugin.Resource {
	pcfg := plugin.DefaultConfig()
	pcfg.SSLVerify = cfg.Git.SSLVerify
	return plugin.New(lister, fetcher, st, pcfg, logger)
}

// provideHandler builds the REST router. The request timeout covers one
// listing plus one admin probe.
func provideHandler(cfg *config.Config, svc api.Service, m *metrics.Metrics, logger Logger) *api.Handler {
	opts := []api.HandlerOption{
		api.WithTimeout(cfg.Git.Timeout + cfg.Admin.Timeout),
	}
	if m != nil {
		opts = append(opts, api.WithMetrics(m, m.Handler()))
	}
	return api.NewHandler(svc, logger, opts...)
}
