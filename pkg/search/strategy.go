package search

import (
	"fmt"
	"strings"
	"time"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

// Kind identifies a search algorithm.
type Kind string

const (
	KindBFS Kind = "bfs"
	KindDFS Kind = "dfs"
	KindDLS Kind = "dls"
)

// Kinds lists the supported algorithms in presentation order.
var Kinds = []Kind{KindBFS, KindDFS, KindDLS}

// Title returns a human-readable name for the algorithm.
func (k Kind) Title() string {
	switch k {
	case KindBFS:
		return "Breadth-first"
	case KindDFS:
		return "Depth-first"
	case KindDLS:
		return "Depth-limited"
	default:
		return string(k)
	}
}

// Strategy selects an algorithm together with its parameters.
// Limit is only meaningful for KindDLS.
type Strategy struct {
	Kind  Kind `json:"kind"`
	Limit int  `json:"limit,omitempty"`
}

// BFS returns the breadth-first strategy.
func BFS() Strategy { return Strategy{Kind: KindBFS} }

// DFS returns the depth-first strategy.
func DFS() Strategy { return Strategy{Kind: KindDFS} }

// DLS returns the depth-limited strategy with the given limit.
func DLS(limit int) Strategy { return Strategy{Kind: KindDLS, Limit: limit} }

// String returns "bfs", "dfs" or "dls(limit)".
func (s Strategy) String() string {
	if s.Kind == KindDLS {
		return fmt.Sprintf("dls(%d)", s.Limit)
	}
	return string(s.Kind)
}

// Validate checks that the strategy is known and its limit is usable.
func (s Strategy) Validate() error {
	switch s.Kind {
	case KindBFS, KindDFS:
		return nil
	case KindDLS:
		if s.Limit <= 0 {
			return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "depth limit must be > 0, got %d", s.Limit)
		}
		return nil
	default:
		return gwerrors.New(gwerrors.ErrCodeInvalidStrategy, "unknown strategy: %q", s.Kind)
	}
}

// ParseStrategy converts a user-facing name into a Strategy.
//
// Accepted names are case-insensitive: "bfs" or "b" for breadth-first,
// "dfs", "d" or "p" for depth-first, and "dls" or "l" for depth-limited.
// limit is used only for depth-limited search and must then be positive.
func ParseStrategy(name string, limit int) (Strategy, error) {
	var s Strategy
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "b", "breadth":
		s = BFS()
	case "dfs", "d", "p", "depth":
		s = DFS()
	case "dls", "l", "limited":
		s = DLS(limit)
	default:
		return Strategy{}, gwerrors.New(gwerrors.ErrCodeInvalidStrategy,
			"unknown strategy %q (must be bfs, dfs, or dls)", name)
	}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

// Search runs the algorithm selected by s.
func Search(g *graph.Graph, start, goal graph.NodeID, s Strategy) (graph.Path, bool, error) {
	switch s.Kind {
	case KindBFS:
		return BreadthFirst(g, start, goal)
	case KindDFS:
		return DepthFirst(g, start, goal)
	case KindDLS:
		return DepthLimited(g, start, goal, s.Limit)
	default:
		return nil, false, gwerrors.New(gwerrors.ErrCodeInvalidStrategy, "unknown strategy: %q", s.Kind)
	}
}

// Result is a timed search outcome.
type Result struct {
	Strategy Strategy      `json:"strategy"`
	Start    graph.NodeID  `json:"start"`
	Goal     graph.NodeID  `json:"goal"`
	Path     graph.Path    `json:"path"`
	Found    bool          `json:"found"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Hops returns the number of edges on the path, or -1 if no path was found.
func (r Result) Hops() int {
	if !r.Found {
		return -1
	}
	return r.Path.Len()
}

// Run executes Search and records the wall-clock time of the call.
// Errors are returned as-is; a missing path is reported through Result.Found.
func Run(g *graph.Graph, start, goal graph.NodeID, s Strategy) (Result, error) {
	began := time.Now()
	path, found, err := Search(g, start, goal, s)
	elapsed := time.Since(began)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Strategy: s,
		Start:    start,
		Goal:     goal,
		Path:     path,
		Found:    found,
		Elapsed:  elapsed,
	}, nil
}
