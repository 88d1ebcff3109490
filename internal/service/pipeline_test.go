package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opeyemi/lenddesk/internal/cache"
	"github.com/opeyemi/lenddesk/internal/domain"
	"github.com/opeyemi/lenddesk/internal/generator"
	"github.com/opeyemi/lenddesk/internal/source"
)

// newPipeline assembles the service exactly the way cmd/server does: cached
// remote source chained with the synthetic fallback.
func newPipeline(t *testing.T, url string) *Users {
	t.Helper()

	remote, err := source.NewHTTPSource(source.Options{URL: url, Timeout: time.Second})
	if err != nil {
		t.Fatalf("building remote source: %v", err)
	}
	usersCache := cache.New(5 * time.Minute)
	fallback := source.NewSyntheticSource(generator.Config{NumUsers: 500, Seed: 17})
	chain := source.NewChain(discardLogger(), source.NewCached(remote, usersCache), fallback)

	return NewUsers(discardLogger(), chain, usersCache, fallback, newStubRecords())
}

func TestPipelineFallsBackToSyntheticCollection(t *testing.T) {
	var healthy atomic.Bool
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"users":[{"id":"remote-1","organization":"Lendsqr","status":"Active"}]}`))
	}))
	defer srv.Close()

	svc := newPipeline(t, srv.URL)
	ctx := context.Background()

	page, err := svc.GetUsers(ctx, domain.Pagination{Limit: 500}, domain.Filter{}, domain.Sort{})
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if page.Total != 500 {
		t.Fatalf("expected fallback collection of 500, got %d", page.Total)
	}

	// The fallback is memoized: repeated calls see the identical collection.
	again, err := svc.GetUsers(ctx, domain.Pagination{Limit: 500}, domain.Filter{}, domain.Sort{})
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	for i := range page.Users {
		if page.Users[i] != again.Users[i] {
			t.Fatalf("fallback collection changed between calls at index %d", i)
		}
	}

	// Remote failures are never cached, so the endpoint was retried.
	if hits.Load() < 2 {
		t.Fatalf("expected the remote endpoint to be retried, got %d hits", hits.Load())
	}

	// Once the endpoint recovers, remote data wins over the memoized fallback.
	healthy.Store(true)
	page, err = svc.GetUsers(ctx, domain.Pagination{}, domain.Filter{}, domain.Sort{})
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if page.Total != 1 || page.Users[0].ID != "remote-1" {
		t.Fatalf("expected remote collection after recovery, got total=%d", page.Total)
	}

	// And the successful fetch is cached: no further endpoint hits.
	before := hits.Load()
	if _, err := svc.GetUsers(ctx, domain.Pagination{}, domain.Filter{}, domain.Sort{}); err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if hits.Load() != before {
		t.Fatalf("expected cached collection to be served, endpoint hits went %d -> %d", before, hits.Load())
	}
}

func TestPipelineClearCacheForcesRefetch(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"id":"remote-1","organization":"Lendsqr","status":"Active"}]`))
	}))
	defer srv.Close()

	svc := newPipeline(t, srv.URL)
	ctx := context.Background()

	if _, err := svc.GetUsers(ctx, domain.Pagination{}, domain.Filter{}, domain.Sort{}); err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if _, err := svc.GetUsers(ctx, domain.Pagination{}, domain.Filter{}, domain.Sort{}); err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single fetch while cache is warm, got %d", hits.Load())
	}

	svc.ClearCache()

	if _, err := svc.GetUsers(ctx, domain.Pagination{}, domain.Filter{}, domain.Sort{}); err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected refetch after ClearCache, got %d hits", hits.Load())
	}
}
