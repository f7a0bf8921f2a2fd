package di

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/gitscm/internal/metrics"
	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/remote"
	"github.com/goliatone/gitscm/internal/store"
	"github.com/goliatone/gitscm/pkg/config"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Container exposes resolved dependencies for the CLI and the REST server.
type Container interface {
	// Core service accessors
	Plugin() *plugin.Resource
	Store() store.Store
	Lister() remote.Lister
	IndexFetcher() plugin.IndexFetcher
	Handler() http.Handler

	// Configuration and infrastructure
	Config() *config.Config
	Logger() Logger
	Metrics() *metrics.Metrics

	// Resource management
	Close() error
}

// Option customises container construction using the functional options pattern.
type Option func(*builder) error

// New creates a container with default wiring and applies the provided options.
func New(opts ...Option) (Container, error) {
	b := &builder{}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("di: failed to apply option: %w", err)
		}
	}

	return b.build()
}

type builder struct {
	cfg *config.Config

	enableInstrumentation bool
	disableMetrics        bool

	logger  Logger
	fs      afero.Fs
	metrics *metrics.Metrics

	store   store.Store
	lister  remote.Lister
	fetcher plugin.IndexFetcher
}

type container struct {
	cfg     *config.Config
	logger  Logger
	metrics *metrics.Metrics
	store   store.Store
	lister  remote.Lister
	fetcher plugin.IndexFetcher
	plugin  *plugin.Resource
	handler http.Handler
}

func (c *container) Plugin() *plugin.Resource          { return c.plugin }
func (c *container) Store() store.Store                { return c.store }
func (c *container) Lister() remote.Lister             { return c.lister }
func (c *container) IndexFetcher() plugin.IndexFetcher { return c.fetcher }
func (c *container) Handler() http.Handler             { return c.handler }

func (c *container) Config() *config.Config    { return c.cfg }
func (c *container) Logger() Logger            { return c.logger }
func (c *container) Metrics() *metrics.Metrics { return c.metrics }

// Close releases pooled connections held by the admin client.
func (c *container) Close() error {
	if closer, ok := unwrapFetcher(c.fetcher).(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
	if closer, ok := c.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("store close: %w", err)
		}
	}
	return nil
}

// build assembles the container. Configuration is resolved first since every
// provider reads from it.
func (b *builder) build() (Container, error) {
	start := time.Now()

	if b.cfg == nil {
		cfg, err := provideConfigWithDefaults()
		if err != nil {
			return nil, fmt.Errorf("di: failed to provide default config: %w", err)
		}
		b.cfg = cfg
	}

	if b.logger == nil {
		b.logger = provideLoggerWithConfig(b.cfg)
	}

	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}

	if b.metrics == nil && !b.disableMetrics {
		b.metrics = metrics.New()
	}

	if b.store == nil {
		st, err := provideStore(b.cfg, b.fs, b.logger)
		if err != nil {
			return nil, fmt.Errorf("di: failed to provide store: %w", err)
		}
		b.store = st
	}

	if b.lister == nil {
		b.lister = provideLister(b.cfg, b.metrics, b.logger)
	}

	if b.fetcher == nil {
		b.fetcher = provideIndexFetcher(b.cfg, b.metrics)
	}

	resource := providePlugin(b.cfg, b.lister, b.fetcher, b.store, b.logger)
	handler := provideHandler(b.cfg, resource, b.metrics, b.logger).Routes()

	c := &container{
		cfg:     b.cfg,
		logger:  b.logger,
		metrics: b.metrics,
		store:   b.store,
		lister:  b.lister,
		fetcher: b.fetcher,
		plugin:  resource,
		handler: handler,
	}

	if b.enableInstrumentation {
		b.logger.Debug("DI container created",
			"duration_ms", time.Since(start).Milliseconds(),
			"store_path", b.cfg.Store.Path,
			"cache_ttl", b.cfg.Git.CacheTTL.String(),
			"metrics", b.metrics != nil,
		)
	}

	return c, nil
}

// WithConfig injects an explicit configuration object into the container.
func WithConfig(cfg *config.Config) Option {
	return func(b *builder) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		b.cfg = cfg
		return nil
	}
}

// WithLogger overrides the slog backed logger.
func WithLogger(logger Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		b.logger = logger
		return nil
	}
}

// WithFilesystem sets the filesystem the parameter store is read from.
func WithFilesystem(fs afero.Fs) Option {
	return func(b *builder) error {
		if fs == nil {
			return fmt.Errorf("filesystem cannot be nil")
		}
		b.fs = fs
		return nil
	}
}

// WithStore replaces the configured parameter store.
func WithStore(st store.Store) Option {
	return func(b *builder) error {
		if st == nil {
			return fmt.Errorf("store cannot be nil")
		}
		b.store = st
		return nil
	}
}

// WithLister replaces the remote lister. The supplied lister is used as is,
// without caching or instrumentation.
func WithLister(lister remote.Lister) Option {
	return func(b *builder) error {
		if lister == nil {
			return fmt.Errorf("lister cannot be nil")
		}
		b.lister = lister
		return nil
	}
}

// WithIndexFetcher replaces the admin index client.
func WithIndexFetcher(fetcher plugin.IndexFetcher) Option {
	return func(b *builder) error {
		if fetcher == nil {
			return fmt.Errorf("index fetcher cannot be nil")
		}
		b.fetcher = fetcher
		return nil
	}
}

// WithMetrics uses m instead of a fresh registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *builder) error {
		if m == nil {
			return fmt.Errorf("metrics cannot be nil")
		}
		b.metrics = m
		return nil
	}
}

// WithoutMetrics disables collectors and the /metrics route.
func WithoutMetrics() Option {
	return func(b *builder) error {
		b.disableMetrics = true
		b.metrics = nil
		return nil
	}
}

// WithInstrumentation logs container construction timings at debug level.
func WithInstrumentation() Option {
	return func(b *builder) error {
		b.enableInstrumentation = true
		return nil
	}
}
