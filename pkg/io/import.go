package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with "nodes" and "edges" arrays and an optional
// "params" object:
//
//	{
//	  "params": {"kind": "connected", "nodes": 3, "fanout": 0},
//	  "nodes": [1, 2, 3],
//	  "edges": [{"u": 2, "v": 1}, {"u": 3, "v": 2}]
//	}
//
// Nodes must be positive. Edges are added in order through [graph.Graph.AddEdge],
// so self-loops and unknown endpoints are rejected and duplicates collapse.
// A missing "params" object yields a manual graph.
//
// Malformed JSON fails with INVALID_FORMAT. Structural problems fail with the
// graph package's INVALID_PARAMETER or NODE_NOT_FOUND codes.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g, err := graph.Restore(data.Params, data.Nodes, data.Edges)
	if err != nil {
		return nil, fmt.Errorf("restore graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validate graph: %w", err)
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// A missing file fails with FILE_NOT_FOUND; everything else is as [ReadJSON].
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gwerrors.Wrap(gwerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
