package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/search"
)

type document struct {
	Params graph.Params   `json:"params"`
	Nodes  []graph.NodeID `json:"nodes"`
	Edges  []graph.Edge   `json:"edges"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// Edges are written in insertion order, which is what lets [ReadJSON]
// restore the exact neighbor order.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Params: g.Params(),
		Nodes:  g.Nodes(),
		Edges:  g.Edges(),
	}
	if out.Edges == nil {
		out.Edges = []graph.Edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteResultJSON encodes a search result as indented JSON.
// A result with no path is written with "path": null and "found": false.
func WriteResultJSON(res search.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
