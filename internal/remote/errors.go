package remote

import (
	"errors"
	"fmt"

	"github.com/goliatone/gitscm/pkg/gitutil"
)

// ErrEmptyURL is returned when a listing is requested without a URL.
var ErrEmptyURL = errors.New("remote: repository URL cannot be empty")

// ListError wraps a failed remote listing with the URL it targeted.
type ListError struct {
	URL string
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("remote: ls-remote failed for %s: %v", gitutil.RedactURL(e.URL), e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// IsListError reports whether err came from a failed remote listing.
func IsListError(err error) bool {
	var target *ListError
	return errors.As(err, &target)
}
