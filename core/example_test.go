package core_test

import (
	"fmt"

	"github.com/katalvlaran/indoornav/core"
)

// ExampleGraph demonstrates loading a small two-floor building and querying it.
func ExampleGraph() {
	// 1) Create an empty graph.
	g := core.NewGraph()

	// 2) Add nodes: entrance and stairwell on floor 1, stairwell on floor 2.
	_ = g.AddNode("A", 0, 0, 1)
	_ = g.AddNode("C", 20, 0, 1)
	_ = g.AddNode("D", 20, 0, 2)

	// 3) Connect them; C─D crosses floors and becomes a floor transition.
	_ = g.AddEdge("A", "C", 20)
	_ = g.AddEdge("C", "D", 5)

	// 4) Name the entrance.
	_ = g.AddSpecialLocation("1楼入口", "A")

	n, _ := g.NodeByLocation("1楼入口")
	nbrs, _ := g.Neighbors("C")
	fmt.Println("entrance:", n.ID, "floor", n.Floor)
	for _, nb := range nbrs {
		fmt.Printf("C→%s %.0fm transition=%v\n", nb.ID, nb.Distance, nb.FloorTransition)
	}

	// Output:
	// entrance: A floor 1
	// C→A 20m transition=false
	// C→D 5m transition=true
}
