package bench

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/search"
)

func TestRunDefaultStrategies(t *testing.T) {
	g, _ := graph.BuildConnected(6, 2)
	for _, sequential := range []bool{false, true} {
		report, err := Run(context.Background(), g, Options{Start: 1, Goal: 4, Sequential: sequential})
		if err != nil {
			t.Fatalf("Run(sequential=%v): %v", sequential, err)
		}
		if _, err := uuid.Parse(report.ID); err != nil {
			t.Errorf("ID %q is not a UUID: %v", report.ID, err)
		}
		if report.Nodes != 6 || report.Edges != 12 || report.Params.Kind != graph.KindConnected {
			t.Errorf("report graph = %+v nodes=%d edges=%d", report.Params, report.Nodes, report.Edges)
		}

		want := []struct {
			kind search.Kind
			path string
		}{
			{search.KindBFS, "1 -> 2 -> 4"},
			{search.KindDFS, "1 -> 6 -> 2 -> 4"},
			{search.KindDLS, "1 -> 6 -> 2 -> 4"},
		}
		if len(report.Results) != len(want) {
			t.Fatalf("got %d results, want %d", len(report.Results), len(want))
		}
		for i, w := range want {
			res := report.Results[i]
			if res.Strategy.Kind != w.kind {
				t.Errorf("result %d strategy = %s, want %s", i, res.Strategy, w.kind)
			}
			if !res.Found || res.Path.String() != w.path {
				t.Errorf("%s path = %s (found=%v), want %s", w.kind, res.Path, res.Found, w.path)
			}
		}
	}
}

func TestRunKeepsRequestedOrder(t *testing.T) {
	g, _ := graph.BuildConnected(10, 0)
	strategies := []search.Strategy{search.DLS(5), search.DLS(9), search.BFS()}
	report, err := Run(context.Background(), g, Options{Start: 1, Goal: 10, Strategies: strategies})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range strategies {
		if report.Results[i].Strategy != s {
			t.Errorf("result %d = %s, want %s", i, report.Results[i].Strategy, s)
		}
	}
	if report.Results[0].Found {
		t.Error("dls(5) should not reach node 10")
	}
	if !report.Results[1].Found || report.Results[1].Hops() != 9 {
		t.Errorf("dls(9) = %+v, want 9 hops", report.Results[1])
	}
}

func TestRunErrors(t *testing.T) {
	g, _ := graph.BuildConnected(6, 2)
	tests := []struct {
		name string
		g    *graph.Graph
		opts Options
		want gwerrors.Code
	}{
		{"nil graph", nil, Options{Start: 1, Goal: 2}, gwerrors.ErrCodeInvalidParameter},
		{"unknown start", g, Options{Start: 0, Goal: 2}, gwerrors.ErrCodeNodeNotFound},
		{"unknown goal", g, Options{Start: 1, Goal: 7}, gwerrors.ErrCodeNodeNotFound},
		{"bad limit", g, Options{Start: 1, Goal: 2, Strategies: []search.Strategy{search.DLS(0)}}, gwerrors.ErrCodeInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.g, tt.opts)
			if !gwerrors.Is(err, tt.want) {
				t.Errorf("Run = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	g, _ := graph.BuildConnected(6, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, g, Options{Start: 1, Goal: 4}); err == nil {
		t.Error("Run with cancelled context should fail")
	}
}

func TestFastest(t *testing.T) {
	report := Report{Results: []search.Result{
		{Strategy: search.BFS(), Found: true, Elapsed: 3 * time.Millisecond},
		{Strategy: search.DFS(), Found: true, Elapsed: time.Millisecond},
		{Strategy: search.DLS(2), Found: false, Elapsed: time.Microsecond},
	}}
	best, ok := report.Fastest()
	if !ok || best.Strategy != search.DFS() {
		t.Errorf("Fastest() = %s, %v; want dfs", best.Strategy, ok)
	}
	if _, ok := (Report{}).Fastest(); ok {
		t.Error("empty report has no fastest result")
	}
}

func TestRandomEndpoints(t *testing.T) {
	g, _ := graph.BuildConnected(500, 3)
	s1, g1, err := RandomEndpoints(g, 7)
	if err != nil {
		t.Fatal(err)
	}
	s2, g2, _ := RandomEndpoints(g, 7)
	if s1 != s2 || g1 != g2 {
		t.Errorf("same seed gave (%d,%d) and (%d,%d)", s1, g1, s2, g2)
	}

	for seed := range uint64(200) {
		start, goal, err := RandomEndpoints(g, seed)
		if err != nil {
			t.Fatal(err)
		}
		if start == goal {
			t.Fatalf("seed %d: endpoints must differ, got %d", seed, start)
		}
		if !g.HasNode(start) || !g.HasNode(goal) {
			t.Fatalf("seed %d: (%d,%d) outside graph", seed, start, goal)
		}
	}

	single, _ := graph.BuildConnected(1, 0)
	if _, _, err := RandomEndpoints(single, 1); !gwerrors.Is(err, gwerrors.ErrCodeInvalidParameter) {
		t.Errorf("RandomEndpoints(1 node) = %v, want INVALID_PARAMETER", err)
	}
}
