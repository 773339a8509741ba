// SPDX-License-Identifier: MIT

// File: view.go
// Role: Non-mutating graph views and summaries.
// Determinism:
//   - Views copy nodes in ID order and edges in insertion order, so two views
//     of the same Graph are identical.

package core

// GraphStats is a compact summary of a Graph's contents.
type GraphStats struct {
	NodeCount            int
	EdgeCount            int
	LocationCount        int
	FloorCount           int
	FloorTransitionCount int
	TotalDistance        float64
}

// Stats returns a summary of the graph, used for load diagnostics.
// Complexity: O(V + E).
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{
		NodeCount:     len(g.nodes),
		EdgeCount:     len(g.edges),
		LocationCount: len(g.aliases),
		FloorCount:    len(g.Floors()),
	}
	for _, e := range g.edges {
		if e.FloorTransition {
			stats.FloorTransitionCount++
		}
		stats.TotalDistance += e.Distance
	}

	return stats
}

// FloorView returns a new Graph holding only the nodes on the given floor
// and the edges with both endpoints on it. Aliases bound to kept nodes are
// carried over. The input graph is not mutated.
//
// Complexity: O(V log V + E + A).
func FloorView(g *Graph, floor int) *Graph {
	return InducedSubgraph(g, func(n Node) bool { return n.Floor == floor })
}

// InducedSubgraph returns a new Graph induced by the nodes for which keep
// returns true: kept nodes, every edge whose endpoints are both kept, and
// every alias that targets a kept node.
//
// Complexity: O(V log V + E + A).
func InducedSubgraph(g *Graph, keep func(Node) bool) *Graph {
	out := NewGraph()

	// Copy kept nodes in ID order so handles are deterministic.
	for _, n := range g.Nodes() {
		if keep(n) {
			_ = out.AddNode(n.ID, n.X, n.Y, n.Floor) // IDs are unique in g
		}
	}

	// Copy edges whose endpoints both survived.
	for _, e := range g.edges {
		if out.HasNode(e.From) && out.HasNode(e.To) {
			_ = out.AddEdge(e.From, e.To, e.Distance) // validated when added to g
		}
	}

	// Carry over aliases of kept nodes.
	for name, h := range g.aliases {
		id := g.nodes[h].ID
		if out.HasNode(id) {
			_ = out.AddSpecialLocation(name, id)
		}
	}

	return out
}
