package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

type countingLister struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingLister) List(context.Context, Request) ([]*plumbing.Reference, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return sampleRefs(), nil
}

func TestNewCachedLister_DisabledReturnsNext(t *testing.T) {
	next := &countingLister{}
	if got := NewCachedLister(next, 0); got != Lister(next) {
		t.Errorf("expected the wrapped lister to be returned unchanged")
	}
}

func TestCachedLister_HitsWithinTTL(t *testing.T) {
	next := &countingLister{}
	cached := NewCachedLister(next, time.Minute).(*CachedLister)

	req := Request{URL: "https://host/repo.git"}
	for i := 0; i < 3; i++ {
		if _, err := cached.List(context.Background(), req); err != nil {
			t.Fatalf("List() error = %v", err)
		}
	}

	if next.calls != 1 {
		t.Errorf("expected 1 remote call, got %d", next.calls)
	}
	stats := cached.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestCachedLister_KeyIncludesCredentials(t *testing.T) {
	next := &countingLister{}
	cached := NewCachedLister(next, time.Minute)

	_, _ = cached.List(context.Background(), Request{URL: "https://host/repo.git", Username: "a", Password: "1"})
	_, _ = cached.List(context.Background(), Request{URL: "https://host/repo.git", Username: "a", Password: "2"})

	if next.calls != 2 {
		t.Errorf("expected distinct credentials to miss, got %d calls", next.calls)
	}
}

func TestCachedLister_Expires(t *testing.T) {
	next := &countingLister{}
	cached := NewCachedLister(next, time.Minute).(*CachedLister)

	current := time.Now()
	cached.now = func() time.Time { return current }

	req := Request{URL: "https://host/repo.git"}
	_, _ = cached.List(context.Background(), req)
	current = current.Add(2 * time.Minute)
	_, _ = cached.List(context.Background(), req)

	if next.calls != 2 {
		t.Errorf("expected expired entry to be refreshed, got %d calls", next.calls)
	}
}

func TestCachedLister_EvictsExpiredEntries(t *testing.T) {
	next := &countingLister{}
	cached := NewCachedLister(next, time.Minute).(*CachedLister)

	current := time.Now()
	cached.now = func() time.Time { return current }

	_, _ = cached.List(context.Background(), Request{URL: "https://host/a.git", Username: "u", Password: "old"})
	_, _ = cached.List(context.Background(), Request{URL: "https://host/b.git", Username: "u", Password: "old"})

	current = current.Add(2 * time.Minute)
	_, _ = cached.List(context.Background(), Request{URL: "https://host/c.git"})

	if size := cached.Stats().Size; size != 1 {
		t.Fatalf("expected expired entries to be evicted, cache holds %d", size)
	}

	cached.mu.RLock()
	defer cached.mu.RUnlock()
	for key := range cached.entries {
		if key.password == "old" {
			t.Errorf("stale credentials still cached for %s", key.url)
		}
	}
}

func TestCachedLister_ErrorsAreNotCached(t *testing.T) {
	next := &countingLister{err: errors.New("unreachable")}
	cached := NewCachedLister(next, time.Minute).(*CachedLister)

	req := Request{URL: "https://host/repo.git"}
	for i := 0; i < 2; i++ {
		if _, err := cached.List(context.Background(), req); err == nil {
			t.Fatal("expected error")
		}
	}

	if next.calls != 2 {
		t.Errorf("expected failures to reach the remote each time, got %d calls", next.calls)
	}
	if cached.Stats().Size != 0 {
		t.Error("expected empty cache after failures")
	}

	cached.Clear()
	if stats := cached.Stats(); stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("expected reset stats, got %+v", stats)
	}
}
