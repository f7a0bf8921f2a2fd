// Package api exposes the Git plugin operations over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestRecorder receives one call per served request.
type RequestRecorder interface {
	RecordHTTPRequest(method, route string, code int)
}

// Handler routes plugin requests to a Service.
type Handler struct {
	service  Service
	logger   Logger
	timeout  time.Duration
	recorder RequestRecorder
	metrics  http.Handler
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithTimeout bounds every request. Zero disables the deadline.
func WithTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.timeout = timeout
	}
}

// WithMetrics records requests and serves the given handler at /metrics.
func WithMetrics(recorder RequestRecorder, exposition http.Handler) HandlerOption {
	return func(h *Handler) {
		h.recorder = recorder
		h.metrics = exposition
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(service Service, logger Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = nopLogger{}
	}
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	if h.timeout > 0 {
		r.Use(middleware.Timeout(h.timeout))
	}

	r.Get("/health", h.handleHealth)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/validate", h.handleValidate)
		r.Post("/status", h.handleStatus)
		r.Post("/subscription-status", h.handleSubscriptionStatus)
		r.Post("/link/{subscription}", h.handleLink)
		r.Get("/{node}/{criteria}", h.handleFindAllByName)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		if h.recorder != nil {
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			h.recorder.RecordHTTPRequest(r.Method, route, ww.Status())
		}

		h.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Server runs the handler until its context is cancelled.
type Server struct {
	addr       string
	handler    http.Handler
	logger     Logger
	httpServer *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, logger Logger) *Server {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Server{addr: addr, handler: handler, logger: logger}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-serverErrChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
