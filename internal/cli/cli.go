// Package cli implements the graphwalk command-line interface.
//
// # Commands
//
//   - generate: build a graph and export it as JSON
//   - search: find a path with BFS, DFS or DLS
//   - bench: compare strategies on the same endpoints
//   - render: draw a graph with its search path highlighted
//   - interactive: pick a preset, endpoints and strategy from a menu
//   - presets: list the configured graph presets
//   - serve: run the HTTP API
//   - cache: inspect and clear the cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and handed to the pipeline runner.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/internal/config"
	"github.com/matzehuels/graphwalk/pkg/cache"
	"github.com/matzehuels/graphwalk/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphwalk"

	// redisPasswordEnv holds the Redis password; it is never read from the config file.
	redisPasswordEnv = "GRAPHWALK_REDIS_PASSWORD"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is loaded when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.Config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// openCache opens the configured backend. --no-cache wins over the config.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	opts := cache.Options{
		Backend:   c.Config.Cache.Backend,
		Dir:       c.Config.Cache.Dir,
		RedisAddr: c.Config.Cache.RedisAddr,
		RedisDB:   c.Config.Cache.RedisDB,
		Password:  os.Getenv(redisPasswordEnv),
	}
	if c.noCache {
		opts.Backend = cache.BackendNone
	}
	if opts.Backend == cache.BackendFile || opts.Backend == "" {
		if opts.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "error", err)
				return cache.NewNullCache(), nil
			}
			opts.Dir = dir
		}
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphwalk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseList splits a comma-separated flag value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
