package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/gitscm/pkg/gitutil"
)

// ErrInvalidIndex is returned when a page is reachable but lists nothing.
var ErrInvalidIndex = errors.New("admin: page is not a repository index")

// StatusError reports a non-200 answer from the admin endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// FetchError wraps a failed index request with the URL it targeted.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("admin: fetch %s failed: %v", gitutil.RedactURL(e.URL), e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, code int) bool {
	var target *StatusError
	return errors.As(err, &target) && target.StatusCode == code
}
