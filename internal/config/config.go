// Package config loads graphwalk's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/graphwalk/config.toml (or
// ~/.config/graphwalk/config.toml) unless --config names another one:
//
//	[defaults]
//	strategy = "dls"
//	limit = 10
//	format = "svg"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	max_edges = 1000000
//
//	[[presets]]
//	name = "tiny"
//	kind = "connected"
//	nodes = 6
//	fanout = 2
//
// Values missing from the file keep their built-in defaults. A [[presets]]
// list replaces the built-in presets entirely.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/search"
)

const appName = "graphwalk"

// Config is the decoded configuration file.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
	Presets  []Preset `toml:"presets"`
}

// Defaults are used for flags the user did not set.
type Defaults struct {
	Strategy string  `toml:"strategy"`
	Limit    int     `toml:"limit"`
	Format   string  `toml:"format"`
	Layout   string  `toml:"layout"`
	Scale    float64 `toml:"scale"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	// Prefix scopes every key, so deployments can share one Redis.
	Prefix string `toml:"prefix"`
}

// Server configures `graphwalk serve`.
type Server struct {
	Addr string `toml:"addr"`
	// MaxNodes caps the graph size a request may build.
	MaxNodes int `toml:"max_nodes"`
	// MaxEdges caps the edge bound of a requested graph. K10000 alone has
	// about 50M edges.
	MaxEdges int `toml:"max_edges"`
}

// Preset is a named graph recipe.
type Preset struct {
	Name   string     `toml:"name"`
	Kind   graph.Kind `toml:"kind"`
	Nodes  int        `toml:"nodes"`
	Fanout int        `toml:"fanout"`
	Seed   uint64     `toml:"seed"`
}

// Params returns the builder parameters of the preset.
func (p Preset) Params() graph.Params {
	return graph.Params{Kind: p.Kind, Nodes: p.Nodes, Fanout: p.Fanout, Seed: p.Seed}
}

// Default returns the built-in configuration: connected graphs of 500, 5000
// and 10000 nodes with fanout 3, 5 and 7, plus K10000.
func Default() *Config {
	cfg := &Config{
		Defaults: Defaults{
			Strategy: "bfs",
			Limit:    10,
			Format:   render.FormatSVG,
			Scale:    2.0,
		},
		Cache:  Cache{Backend: "file"},
		Server: Server{Addr: ":8080", MaxNodes: 10000, MaxEdges: 1_000_000},
	}
	for _, n := range []int{500, 5000, 10000} {
		for _, f := range []int{3, 5, 7} {
			cfg.Presets = append(cfg.Presets, Preset{
				Name:   fmt.Sprintf("c%d-%d", n, f),
				Kind:   graph.KindConnected,
				Nodes:  n,
				Fanout: f,
			})
		}
	}
	cfg.Presets = append(cfg.Presets, Preset{Name: "k10000", Kind: graph.KindComplete, Nodes: 10000})
	return cfg
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means [Path], and a missing default file is not an error. A missing
// explicit path fails with FILE_NOT_FOUND.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gwerrors.Wrap(gwerrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	builtin := cfg.Presets
	cfg.Presets = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("presets") {
		cfg.Presets = builtin
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks defaults, cache backend and presets. Preset kinds are
// normalized, so an empty kind becomes connected.
func (c *Config) Validate() error {
	if _, err := search.ParseStrategy(c.Defaults.Strategy, c.Defaults.Limit); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := gwerrors.ValidateFormats([]string{c.Defaults.Format}, render.Formats); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "cache: unknown backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "cache: redis backend requires redis_addr")
	}

	if c.Server.MaxNodes < 0 || c.Server.MaxEdges < 0 {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "server: max_nodes and max_edges must be >= 0")
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if p.Name == "" {
			return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "presets[%d]: name is required", i)
		}
		if seen[p.Name] {
			return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "presets[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		kind, err := graph.ParseKind(string(p.Kind))
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		c.Presets[i].Kind = kind
		if err := gwerrors.ValidatePositive("nodes", p.Nodes); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		if p.Fanout < 0 {
			return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "preset %q: fanout must be >= 0", p.Name)
		}
	}
	return nil
}

// Preset returns the preset called name (case-insensitive).
func (c *Config) Preset(name string) (Preset, error) {
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, gwerrors.New(gwerrors.ErrCodePresetNotFound, "no preset named %q", name)
}
