package search

import (
	"fmt"
	"slices"
	"testing"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

func mustConnected(t *testing.T, n, fanout int) *graph.Graph {
	t.Helper()
	g, err := graph.BuildConnected(n, fanout)
	if err != nil {
		t.Fatalf("BuildConnected(%d, %d) error: %v", n, fanout, err)
	}
	return g
}

// distances returns hop counts from src computed level by level.
func distances(g *graph.Graph, src graph.NodeID) map[graph.NodeID]int {
	dist := map[graph.NodeID]int{src: 0}
	level := []graph.NodeID{src}
	for d := 1; len(level) > 0; d++ {
		var next []graph.NodeID
		for _, u := range level {
			for _, v := range g.Neighbors(u) {
				if _, ok := dist[v]; !ok {
					dist[v] = d
					next = append(next, v)
				}
			}
		}
		level = next
	}
	return dist
}

func TestBreadthFirstScenario(t *testing.T) {
	g := mustConnected(t, 6, 2)
	path, found, err := BreadthFirst(g, 1, 6)
	if err != nil || !found {
		t.Fatalf("BreadthFirst(1, 6) = %v, %v, %v", path, found, err)
	}
	if want := (graph.Path{1, 6}); !slices.Equal(path, want) {
		t.Errorf("BreadthFirst(1, 6) = %v, want %v", path, want)
	}
	if path.Len() > 5 {
		t.Errorf("path length %d exceeds backbone length 5", path.Len())
	}

	k5, _ := graph.BuildComplete(5)
	path, found, err = BreadthFirst(k5, 1, 3)
	if err != nil || !found || !slices.Equal(path, graph.Path{1, 3}) {
		t.Errorf("BreadthFirst(K5, 1, 3) = %v, %v, %v, want [1 3]", path, found, err)
	}
}

func TestDepthFirstStaleEntries(t *testing.T) {
	// Node 4 is pushed twice: once from 6 and once from 2. Marking at pop time
	// lets the later push from 2 win.
	g := mustConnected(t, 6, 2)
	path, found, err := DepthFirst(g, 1, 4)
	if err != nil || !found {
		t.Fatalf("DepthFirst(1, 4) = %v, %v, %v", path, found, err)
	}
	if want := (graph.Path{1, 6, 2, 4}); !slices.Equal(path, want) {
		t.Errorf("DepthFirst(1, 4) = %v, want %v", path, want)
	}

	k5, _ := graph.BuildComplete(5)
	path, _, _ = DepthFirst(k5, 1, 3)
	if want := (graph.Path{1, 5, 4, 3}); !slices.Equal(path, want) {
		t.Errorf("DepthFirst(K5, 1, 3) = %v, want %v", path, want)
	}
}

func TestDepthLimited(t *testing.T) {
	g := mustConnected(t, 6, 2)
	line := mustConnected(t, 10, 0)

	tests := []struct {
		name      string
		g         *graph.Graph
		start     graph.NodeID
		goal      graph.NodeID
		limit     int
		want      graph.Path
		wantFound bool
	}{
		{"limit below distance", g, 1, 4, 1, nil, false},
		{"limit reaches goal", g, 1, 4, 2, graph.Path{1, 6, 4}, true},
		{"neighbor at limit one", g, 1, 6, 1, graph.Path{1, 6}, true},
		{"line too short", line, 1, 10, 5, nil, false},
		{"line one short", line, 1, 10, 8, nil, false},
		{"line exact", line, 1, 10, 9, graph.Path{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, true},
		{"line generous", line, 1, 10, 50, graph.Path{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, found, err := DepthLimited(tt.g, tt.start, tt.goal, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if !slices.Equal(path, tt.want) {
				t.Errorf("path = %v, want %v", path, tt.want)
			}
		})
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := mustConnected(t, 6, 2)
	for _, s := range []Strategy{BFS(), DFS(), DLS(1)} {
		for id := graph.NodeID(1); id <= 6; id++ {
			path, found, err := Search(g, id, id, s)
			if err != nil || !found || !slices.Equal(path, graph.Path{id}) {
				t.Errorf("%s(%d, %d) = %v, %v, %v, want [%d]", s, id, id, path, found, err, id)
			}
		}
	}

	// A lone node has no neighbors, so only the base case can answer.
	single, _ := graph.FromEdges(1)
	for _, s := range []Strategy{BFS(), DFS(), DLS(3)} {
		path, found, _ := Search(single, 1, 1, s)
		if !found || !slices.Equal(path, graph.Path{1}) {
			t.Errorf("%s on single node = %v, %v", s, path, found)
		}
	}
}

func TestDisconnectedNotFound(t *testing.T) {
	g, err := graph.FromEdges(5,
		graph.Edge{U: 1, V: 2}, graph.Edge{U: 2, V: 3},
		graph.Edge{U: 4, V: 5},
	)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []Strategy{BFS(), DFS(), DLS(10)} {
		t.Run(s.String(), func(t *testing.T) {
			path, found, err := Search(g, 1, 5, s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found || path != nil {
				t.Errorf("Search(1, 5) = %v, %v, want not found", path, found)
			}
		})
	}
}

func TestPreconditionErrors(t *testing.T) {
	g := mustConnected(t, 6, 2)

	tests := []struct {
		name        string
		strategy    Strategy
		start, goal graph.NodeID
		wantCode    gwerrors.Code
	}{
		{"bfs unknown start", BFS(), 0, 3, gwerrors.ErrCodeNodeNotFound},
		{"bfs unknown goal", BFS(), 1, 7, gwerrors.ErrCodeNodeNotFound},
		{"dfs unknown start", DFS(), 99, 3, gwerrors.ErrCodeNodeNotFound},
		{"dfs unknown goal", DFS(), 1, -1, gwerrors.ErrCodeNodeNotFound},
		{"dls unknown goal", DLS(3), 1, 100, gwerrors.ErrCodeNodeNotFound},
		{"dls zero limit", DLS(0), 1, 4, gwerrors.ErrCodeInvalidParameter},
		{"dls negative limit", DLS(-2), 1, 4, gwerrors.ErrCodeInvalidParameter},
		{"dls zero limit same node", DLS(0), 2, 2, gwerrors.ErrCodeInvalidParameter},
		{"unknown kind", Strategy{Kind: "astar"}, 1, 4, gwerrors.ErrCodeInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, found, err := Search(g, tt.start, tt.goal, tt.strategy)
			if !gwerrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
			if found || path != nil {
				t.Errorf("result = %v, %v, want nil, false", path, found)
			}
		})
	}

	if _, _, err := BreadthFirst(nil, 1, 1); !gwerrors.Is(err, gwerrors.ErrCodeInvalidParameter) {
		t.Errorf("nil graph error = %v, want INVALID_PARAMETER", err)
	}
}

func TestSearchProperties(t *testing.T) {
	graphs := map[string]*graph.Graph{}
	for _, nf := range [][2]int{{1, 0}, {2, 1}, {7, 0}, {12, 2}, {25, 3}, {40, 5}} {
		graphs[fmt.Sprintf("connected(%d,%d)", nf[0], nf[1])] = mustConnected(t, nf[0], nf[1])
	}
	k8, _ := graph.BuildComplete(8)
	graphs["complete(8)"] = k8
	rnd, _ := graph.BuildRandom(30, 2, 11)
	graphs["random(30,2)"] = rnd

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			n := g.NodeCount()
			for _, start := range g.Nodes() {
				dist := distances(g, start)
				for _, goal := range g.Nodes() {
					want, reachable := dist[goal]

					bfs, found, err := BreadthFirst(g, start, goal)
					if err != nil {
						t.Fatalf("BreadthFirst(%d, %d) error: %v", start, goal, err)
					}
					if found != reachable {
						t.Fatalf("BreadthFirst(%d, %d) found = %v, want %v", start, goal, found, reachable)
					}
					if found && (bfs.Len() != want || !bfs.Valid(g) || bfs.Start() != start || bfs.Goal() != goal) {
						t.Errorf("BreadthFirst(%d, %d) = %v, want valid path of length %d", start, goal, bfs, want)
					}

					dfs, found, _ := DepthFirst(g, start, goal)
					if found != reachable {
						t.Fatalf("DepthFirst(%d, %d) found = %v, want %v", start, goal, found, reachable)
					}
					if found && (!dfs.Valid(g) || dfs.Start() != start || dfs.Goal() != goal || dfs.Len() < want) {
						t.Errorf("DepthFirst(%d, %d) = %v is not a valid path", start, goal, dfs)
					}

					// With a limit no path can reach, DLS expands exactly like DFS.
					dls, found, _ := DepthLimited(g, start, goal, n+1)
					if !slices.Equal(dls, dfs) || found != reachable {
						t.Errorf("DepthLimited(%d, %d, %d) = %v, want DFS result %v", start, goal, n+1, dls, dfs)
					}

					for limit := 1; limit <= 3; limit++ {
						p, found, _ := DepthLimited(g, start, goal, limit)
						if found && (p.Len() > limit || !p.Valid(g)) {
							t.Errorf("DepthLimited(%d, %d, %d) = %v exceeds limit", start, goal, limit, p)
						}
						if reachable && want > limit && found {
							t.Errorf("DepthLimited(%d, %d, %d) found a path beyond distance %d", start, goal, limit, want)
						}
					}
				}
			}
		})
	}
}

func TestFreshPathPerEntry(t *testing.T) {
	// Sibling results must not alias: mutating one path leaves a rerun intact.
	g := mustConnected(t, 6, 2)
	p1, _, _ := BreadthFirst(g, 1, 4)
	p1[0] = 99
	p2, _, _ := BreadthFirst(g, 1, 4)
	if p2[0] != 1 {
		t.Errorf("second search returned %v, paths are shared", p2)
	}

	base := graph.Path{1, 2}
	a := extend(base, 3)
	b := extend(base, 4)
	if a[2] != 3 || b[2] != 4 || len(base) != 2 {
		t.Errorf("extend aliases its input: a=%v b=%v base=%v", a, b, base)
	}
}
