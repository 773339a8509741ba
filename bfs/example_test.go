package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/indoornav/bfs"
	"github.com/katalvlaran/indoornav/core"
)

// ExampleBFS counts hops from the lobby on a small floor plan.
func ExampleBFS() {
	g := core.NewGraph()
	_ = g.AddNode("lobby", 0, 0, 1)
	_ = g.AddNode("hall", 10, 0, 1)
	_ = g.AddNode("r101", 10, 5, 1)
	_ = g.AddNode("r102", 15, 0, 1)
	_ = g.AddEdge("lobby", "hall", 10)
	_ = g.AddEdge("hall", "r101", 5)
	_ = g.AddEdge("hall", "r102", 5)

	res, err := bfs.BFS(g, "lobby")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, id := range res.Order {
		fmt.Printf("%s:%d ", id, res.Depth[id])
	}
	fmt.Println()
	// Output: lobby:0 hall:1 r101:2 r102:2
}
