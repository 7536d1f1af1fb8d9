package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/graphwalk/pkg/observability"
)

func TestCacheCounters(t *testing.T) {
	h := Hooks{}
	ctx := context.Background()

	hits := testutil.ToFloat64(CacheRequests.WithLabelValues("graph", "hit"))
	misses := testutil.ToFloat64(CacheRequests.WithLabelValues("graph", "miss"))
	written := testutil.ToFloat64(CacheBytesWritten.WithLabelValues("graph"))

	h.OnCacheHit(ctx, "graph")
	h.OnCacheHit(ctx, "graph")
	h.OnCacheMiss(ctx, "graph")
	h.OnCacheSet(ctx, "graph", 128)

	if got := testutil.ToFloat64(CacheRequests.WithLabelValues("graph", "hit")) - hits; got != 2 {
		t.Errorf("hits += %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheRequests.WithLabelValues("graph", "miss")) - misses; got != 1 {
		t.Errorf("misses += %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheBytesWritten.WithLabelValues("graph")) - written; got != 128 {
		t.Errorf("bytes += %v, want 128", got)
	}
}

func TestErrorsCountedPerStage(t *testing.T) {
	h := Hooks{}
	ctx := context.Background()
	boom := errors.New("boom")

	before := testutil.ToFloat64(ErrorsTotal.WithLabelValues("search"))
	h.OnSearchComplete(ctx, "bfs", false, -1, time.Millisecond, boom)
	h.OnSearchComplete(ctx, "bfs", true, 3, time.Millisecond, nil)
	if got := testutil.ToFloat64(ErrorsTotal.WithLabelValues("search")) - before; got != 1 {
		t.Errorf("search errors += %v, want 1", got)
	}
}

func TestHTTPCounters(t *testing.T) {
	h := Hooks{}
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/v1/search", "200"))
	h.OnResponse(context.Background(), "GET", "/v1/search", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/v1/search", "200")) - before; got != 1 {
		t.Errorf("requests += %v, want 1", got)
	}
}

func TestInstall(t *testing.T) {
	Install()
	defer observability.Reset()

	if _, ok := observability.Pipeline().(Hooks); !ok {
		t.Error("pipeline hooks not installed")
	}
	if _, ok := observability.Cache().(Hooks); !ok {
		t.Error("cache hooks not installed")
	}
	if _, ok := observability.HTTP().(Hooks); !ok {
		t.Error("HTTP hooks not installed")
	}
}
