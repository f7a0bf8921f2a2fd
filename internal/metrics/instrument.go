package metrics

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/goliatone/gitscm/internal/admin"
	"github.com/goliatone/gitscm/internal/remote"
	"github.com/goliatone/gitscm/pkg/gitutil"
)

// IndexFetcher matches the admin client fetch method.
type IndexFetcher interface {
	Fetch(ctx context.Context, req admin.Request) (string, error)
}

type instrumentedLister struct {
	next    remote.Lister
	metrics *Metrics
}

// InstrumentLister records every listing made through next.
func InstrumentLister(next remote.Lister, m *Metrics) remote.Lister {
	if m == nil {
		return next
	}
	return &instrumentedLister{next: next, metrics: m}
}

func (l *instrumentedLister) List(ctx context.Context, req remote.Request) ([]*plumbing.Reference, error) {
	start := time.Now()
	refs, err := l.next.List(ctx, req)

	protocol := string(gitutil.DetectProtocol(req.URL))
	if protocol == "" {
		protocol = "unknown"
	}
	l.metrics.RecordListing(protocol, len(refs), time.Since(start).Seconds(), err)
	return refs, err
}

type instrumentedFetcher struct {
	next    IndexFetcher
	metrics *Metrics
}

// InstrumentFetcher records every admin index request made through next.
func InstrumentFetcher(next IndexFetcher, m *Metrics) IndexFetcher {
	if m == nil {
		return next
	}
	return &instrumentedFetcher{next: next, metrics: m}
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, req admin.Request) (string, error) {
	start := time.Now()
	page, err := f.next.Fetch(ctx, req)
	f.metrics.RecordAdminProbe(time.Since(start).Seconds(), err)
	return page, err
}

// Unwrap returns the wrapped fetcher.
func (f *instrumentedFetcher) Unwrap() IndexFetcher {
	return f.next
}
