package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/search"
)

func TestRoundTripPreservesNeighborOrder(t *testing.T) {
	builds := map[string]func() (*graph.Graph, error){
		"connected": func() (*graph.Graph, error) { return graph.BuildConnected(30, 4) },
		"complete":  func() (*graph.Graph, error) { return graph.BuildComplete(7) },
		"random":    func() (*graph.Graph, error) { return graph.BuildRandom(25, 3, 42) },
		"manual": func() (*graph.Graph, error) {
			return graph.FromEdges(4, graph.Edge{U: 3, V: 1}, graph.Edge{U: 1, V: 2})
		},
	}

	for name, build := range builds {
		t.Run(name, func(t *testing.T) {
			src, err := build()
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := WriteJSON(src, &buf); err != nil {
				t.Fatalf("WriteJSON error: %v", err)
			}
			got, err := ReadJSON(&buf)
			if err != nil {
				t.Fatalf("ReadJSON error: %v", err)
			}

			if got.Params() != src.Params() {
				t.Errorf("Params() = %+v, want %+v", got.Params(), src.Params())
			}
			if !slices.Equal(got.Edges(), src.Edges()) {
				t.Errorf("Edges() differ after round trip")
			}
			for _, id := range src.Nodes() {
				if !slices.Equal(got.Neighbors(id), src.Neighbors(id)) {
					t.Errorf("Neighbors(%d) = %v, want %v", id, got.Neighbors(id), src.Neighbors(id))
				}
			}
		})
	}
}

func TestRoundTripPreservesSearch(t *testing.T) {
	src, _ := graph.BuildConnected(6, 2)
	var buf bytes.Buffer
	_ = WriteJSON(src, &buf)
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	path, _, _ := search.DepthFirst(got, 1, 4)
	if want := (graph.Path{1, 6, 2, 4}); !slices.Equal(path, want) {
		t.Errorf("DepthFirst after import = %v, want %v", path, want)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode gwerrors.Code
	}{
		{"malformed", `{"nodes": [1,`, gwerrors.ErrCodeInvalidFormat},
		{"wrong type", `{"nodes": ["a"]}`, gwerrors.ErrCodeInvalidFormat},
		{"self-loop", `{"nodes": [1, 2], "edges": [{"u": 1, "v": 1}]}`, gwerrors.ErrCodeInvalidParameter},
		{"unknown endpoint", `{"nodes": [1, 2], "edges": [{"u": 1, "v": 3}]}`, gwerrors.ErrCodeNodeNotFound},
		{"zero node", `{"nodes": [0]}`, gwerrors.ErrCodeInvalidParameter},
		{"count mismatch", `{"params": {"kind": "complete", "nodes": 3}, "nodes": [1, 2]}`, gwerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !gwerrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestReadJSONCollapsesDuplicates(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(`{"nodes": [1, 2], "edges": [{"u": 1, "v": 2}, {"u": 2, "v": 1}]}`))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.Params().Kind != graph.KindManual {
		t.Errorf("Kind = %q, want manual", g.Params().Kind)
	}
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")

	src, _ := graph.BuildComplete(4)
	if err := ExportJSON(src, path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if got.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", got.EdgeCount())
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); !gwerrors.Is(err, gwerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONEmptyEdges(t *testing.T) {
	g, _ := graph.BuildConnected(1, 0)
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("expected empty edges array, got:\n%s", buf.String())
	}
}

func TestWriteResultJSON(t *testing.T) {
	g, _ := graph.BuildConnected(6, 2)

	tests := []struct {
		name      string
		strategy  search.Strategy
		wantFound bool
		wantPath  []float64
	}{
		{"found", search.DLS(2), true, []float64{1, 6, 4}},
		{"not found", search.DLS(1), false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := search.Run(g, 1, 4, tt.strategy)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := WriteResultJSON(res, &buf); err != nil {
				t.Fatal(err)
			}

			var decoded struct {
				Found bool      `json:"found"`
				Path  []float64 `json:"path"`
			}
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if decoded.Found != tt.wantFound || !slices.Equal(decoded.Path, tt.wantPath) {
				t.Errorf("decoded = %+v, want found=%v path=%v", decoded, tt.wantFound, tt.wantPath)
			}
		})
	}
}
