// Package cache stores built graphs and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance, for the HTTP server.
//   - [NullCache]: stores nothing, for --no-cache and tests.
//
// [Open] selects a backend from [Options].
//
// # Keys
//
// Keys are produced by a [Keyer]. A graph key is derived from the builder
// [graph.Params]; an artifact key combines the hash of the serialized graph
// with everything that affects the rendered output. [ScopedKeyer] adds a
// namespace prefix.
//
// Search results are never cached: elapsed time is part of a result and a
// cached one would report a stale measurement.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

// Default TTLs.
const (
	GraphTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A miss is (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey identifies a graph built from p.
	GraphKey(p graph.Params) string
	// ArtifactKey identifies a rendering of the graph whose JSON hashes to graphHash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Layout   string  `json:"layout,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Title    string  `json:"title,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Strategy string  `json:"strategy,omitempty"`
	Start    int     `json:"start,omitempty"`
	Goal     int     `json:"goal,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey returns "graph:<hash>" for p.
func (DefaultKeyer) GraphKey(p graph.Params) string {
	return hashKey("graph", p)
}

// ArtifactKey returns "artifact:<hash>" for the graph hash and options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
