// Package admin probes the administration index page of a Git server.
package admin

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/gitscm/pkg/gitutil"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 15 * time.Second

// maxIndexSize caps how much of the index page is read.
const maxIndexSize = 4 << 20

// Config contains configuration options for creating a new Client.
type Config struct {
	// Timeout is the HTTP request timeout (defaults to DefaultTimeout if zero)
	Timeout time.Duration

	// UserAgent is sent with every request when not empty
	UserAgent string

	// Transport overrides the base round tripper, mainly for tests
	Transport http.RoundTripper
}

// Client fetches admin index pages. Verified and unverified transports are
// kept apart so a subscription with sslVerify off never weakens the others.
type Client struct {
	secure    *http.Client
	insecure  *http.Client
	userAgent string
}

// New creates a new admin client with the given configuration.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := cfg.Transport
	if base == nil {
		if t, ok := http.DefaultTransport.(*http.Transport); ok {
			base = t.Clone()
		} else {
			base = http.DefaultTransport
		}
	}

	insecureTransport := base
	if t, ok := base.(*http.Transport); ok {
		clone := t.Clone()
		clone.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // sslVerify explicitly disabled
		insecureTransport = clone
	}

	return &Client{
		secure:    &http.Client{Timeout: timeout, Transport: base},
		insecure:  &http.Client{Timeout: timeout, Transport: insecureTransport},
		userAgent: cfg.UserAgent,
	}
}

// Request describes one index fetch.
type Request struct {
	URL      string
	Username string
	Password string

	// InsecureSkipVerify disables certificate verification; ignored for plain http.
	InsecureSkipVerify bool
}

// Fetch performs a GET on the index URL and returns the page body.
func (c *Client) Fetch(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.URL) == "" {
		return "", &FetchError{URL: req.URL, Err: errors.New("url cannot be empty")}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return "", &FetchError{URL: req.URL, Err: err}
	}
	if !isBlank(req.Username) {
		httpReq.SetBasicAuth(req.Username, req.Password)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := c.secure
	if req.InsecureSkipVerify && gitutil.DetectProtocol(req.URL) == gitutil.ProtocolHTTPS {
		client = c.insecure
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", &FetchError{URL: req.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxIndexSize))
		return "", &FetchError{URL: req.URL, Err: &StatusError{StatusCode: resp.StatusCode}}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexSize))
	if err != nil {
		return "", &FetchError{URL: req.URL, Err: fmt.Errorf("read body: %w", err)}
	}

	return string(body), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CloseIdleConnections releases pooled connections of both transports.
func (c *Client) CloseIdleConnections() {
	c.secure.CloseIdleConnections()
	c.insecure.CloseIdleConnections()
}
