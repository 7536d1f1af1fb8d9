package search

import (
	"encoding/json"
	"slices"
	"testing"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		want     Strategy
		wantCode gwerrors.Code
	}{
		{"bfs", 0, BFS(), ""},
		{"B", 0, BFS(), ""},
		{"dfs", 0, DFS(), ""},
		{"P", 0, DFS(), ""},
		{"d", 7, DFS(), ""},
		{" dls ", 3, DLS(3), ""},
		{"L", 1, DLS(1), ""},
		{"dls", 0, Strategy{}, gwerrors.ErrCodeInvalidParameter},
		{"l", -4, Strategy{}, gwerrors.ErrCodeInvalidParameter},
		{"astar", 0, Strategy{}, gwerrors.ErrCodeInvalidStrategy},
		{"", 0, Strategy{}, gwerrors.ErrCodeInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.name, tt.limit)
			if tt.wantCode != "" {
				if !gwerrors.Is(err, tt.wantCode) {
					t.Errorf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q, %d) = %+v, want %+v", tt.name, tt.limit, got, tt.want)
			}
		})
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{BFS(), "bfs"},
		{DFS(), "dfs"},
		{DLS(4), "dls(4)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if KindDLS.Title() != "Depth-limited" {
		t.Errorf("Title() = %q", KindDLS.Title())
	}
}

func TestRun(t *testing.T) {
	g, _ := graph.BuildConnected(6, 2)

	res, err := Run(g, 1, 4, DLS(2))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Found || !slices.Equal(res.Path, graph.Path{1, 6, 4}) {
		t.Errorf("Run path = %v, found = %v", res.Path, res.Found)
	}
	if res.Start != 1 || res.Goal != 4 || res.Strategy != DLS(2) {
		t.Errorf("Run metadata = %+v", res)
	}
	if res.Hops() != 2 {
		t.Errorf("Hops() = %d, want 2", res.Hops())
	}
	if res.Elapsed < 0 {
		t.Errorf("Elapsed = %v", res.Elapsed)
	}

	miss, err := Run(g, 1, 4, DLS(1))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if miss.Found || miss.Hops() != -1 {
		t.Errorf("Run(DLS(1)) = %+v, want not found", miss)
	}

	if _, err := Run(g, 1, 40, BFS()); !gwerrors.Is(err, gwerrors.ErrCodeNodeNotFound) {
		t.Errorf("Run unknown goal error = %v", err)
	}
}

func TestResultJSON(t *testing.T) {
	g, _ := graph.BuildComplete(5)
	res, _ := Run(g, 1, 3, BFS())

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["found"] != true {
		t.Errorf("found = %v", decoded["found"])
	}
	strategy, _ := decoded["strategy"].(map[string]any)
	if strategy["kind"] != "bfs" {
		t.Errorf("strategy = %v", decoded["strategy"])
	}
	if _, ok := strategy["limit"]; ok {
		t.Error("limit should be omitted for bfs")
	}
}
