// Package metrics defines Prometheus metrics for graphwalk and connects them
// to the observability hooks.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/graphwalk/pkg/observability"
)

var (
	BuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_build_duration_seconds",
			Help:    "Graph construction time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"kind"},
	)

	GraphEdges = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_graph_edges",
			Help:    "Edge count of built graphs",
			Buckets: prometheus.ExponentialBuckets(10, 10, 8),
		},
		[]string{"kind"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_search_duration_seconds",
			Help:    "Path search time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"strategy", "found"},
	)

	SearchHops = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_search_hops",
			Help:    "Length in edges of paths found",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100, 1000},
		},
		[]string{"strategy"},
	)

	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_render_duration_seconds",
			Help:    "Rendering time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_cache_requests_total",
			Help: "Cache lookups by key type and result",
		},
		[]string{"type", "result"},
	)

	CacheBytesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_cache_bytes_written_total",
			Help: "Bytes written to the cache",
		},
		[]string{"type"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphwalk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_errors_total",
			Help: "Total errors by stage",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(
		BuildDuration, GraphEdges,
		SearchDuration, SearchHops,
		RenderDuration,
		CacheRequests, CacheBytesWritten,
		RequestDuration, RequestsTotal, ErrorsTotal,
	)
}

// Hooks records observability events into the package metrics.
type Hooks struct{}

// Install registers Hooks for pipeline, cache and HTTP events.
func Install() {
	h := Hooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (Hooks) OnBuildStart(context.Context, string, int) {}

func (Hooks) OnBuildComplete(_ context.Context, kind string, _, edges int, d time.Duration, err error) {
	if err != nil {
		ErrorsTotal.WithLabelValues("build").Inc()
		return
	}
	BuildDuration.WithLabelValues(kind).Observe(d.Seconds())
	GraphEdges.WithLabelValues(kind).Observe(float64(edges))
}

func (Hooks) OnSearchStart(context.Context, string) {}

func (Hooks) OnSearchComplete(_ context.Context, strategy string, found bool, hops int, d time.Duration, err error) {
	if err != nil {
		ErrorsTotal.WithLabelValues("search").Inc()
		return
	}
	SearchDuration.WithLabelValues(strategy, strconv.FormatBool(found)).Observe(d.Seconds())
	if found {
		SearchHops.WithLabelValues(strategy).Observe(float64(hops))
	}
}

func (Hooks) OnRenderStart(context.Context, string) {}

func (Hooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	if err != nil {
		ErrorsTotal.WithLabelValues("render").Inc()
		return
	}
	RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (Hooks) OnCacheHit(_ context.Context, keyType string) {
	CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (Hooks) OnCacheMiss(_ context.Context, keyType string) {
	CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	CacheBytesWritten.WithLabelValues(keyType).Add(float64(size))
}

func (Hooks) OnRequest(context.Context, string, string) {}

func (Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	RequestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
	RequestsTotal.WithLabelValues(method, route, code).Inc()
}

func (Hooks) OnError(context.Context, string, string, error) {
	ErrorsTotal.WithLabelValues("http").Inc()
}

var (
	_ observability.PipelineHooks = Hooks{}
	_ observability.CacheHooks    = Hooks{}
	_ observability.HTTPHooks     = Hooks{}
)
