package graph_test

import (
	"fmt"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

func ExampleBuildConnected() {
	// Six nodes, backbone plus two chords per node
	g, _ := graph.BuildConnected(6, 2)

	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Neighbors of 1:", g.Neighbors(1))
	fmt.Println("Connected:", g.Connected())
	// Output:
	// Edges: 12
	// Neighbors of 1: [2 3 5 6]
	// Connected: true
}

func ExampleBuildComplete() {
	g, _ := graph.BuildComplete(5)

	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Degree of 3:", g.Degree(3))
	// Output:
	// Edges: 10
	// Degree of 3: 4
}

func ExampleFromEdges() {
	// Two components: 1-2 and 3-4
	g, _ := graph.FromEdges(4, graph.Edge{U: 1, V: 2}, graph.Edge{U: 3, V: 4})

	fmt.Println("Nodes:", g.Nodes())
	fmt.Println("Connected:", g.Connected())
	// Output:
	// Nodes: [1 2 3 4]
	// Connected: false
}

func ExamplePath_String() {
	p := graph.Path{1, 6, 4}
	fmt.Println(p, "len", p.Len())
	// Output:
	// 1 -> 6 -> 4 len 2
}
