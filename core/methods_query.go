// SPDX-License-Identifier: MIT

// Read-only queries. None of these mutate the Graph, so a fully loaded Graph
// may serve them from many goroutines at once.

package core

import (
	"fmt"
	"sort"
)

// HasNode reports whether a node with the given ID exists.
// Complexity: O(1).
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given ID.
// Returns ErrUnknownNode if id is absent.
// Complexity: O(1).
func (g *Graph) Node(id string) (Node, error) {
	h, ok := g.index[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return g.nodes[h], nil
}

// NodeByLocation resolves an alias name to its node by exact match.
// Returns ErrLocationNotFound if no alias matches.
// Complexity: O(1).
func (g *Graph) NodeByLocation(name string) (Node, error) {
	h, ok := g.aliases[name]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	}
	return g.nodes[h], nil
}

// Neighbors lists the edges incident to id as seen from id, ordered by
// neighbor ID ascending.
// Returns ErrUnknownNode if id is absent.
// Complexity: O(deg(id)).
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	h, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	list := g.adjacency[h]
	out := make([]Neighbor, 0, len(list))
	var e Edge
	for _, eh := range list {
		e = g.edges[eh]
		out = append(out, Neighbor{
			ID:              e.Other(id),
			Distance:        e.Distance,
			FloorTransition: e.FloorTransition,
		})
	}

	return out, nil
}

// NeighborIDs returns the IDs adjacent to id in ascending order.
// Returns ErrUnknownNode if id is absent.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	h, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	out := make([]string, 0, len(g.adjacency[h]))
	for _, eh := range g.adjacency[h] {
		out = append(out, g.edges[eh].Other(id))
	}
	return out, nil
}

// EdgeBetween returns the edge joining a and b in either orientation.
// The boolean is false when either node is unknown or they are not adjacent.
// Complexity: O(1).
func (g *Graph) EdgeBetween(a, b string) (Edge, bool) {
	ha, ok := g.index[a]
	if !ok {
		return Edge{}, false
	}
	hb, ok := g.index[b]
	if !ok {
		return Edge{}, false
	}
	eh, ok := g.pairs[makePairKey(ha, hb)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[eh], true
}

// Nodes returns a copy of all nodes sorted by ID.
// Complexity: O(V log V).
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns a copy of all edges in insertion order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Locations returns every alias binding sorted by name.
// Complexity: O(A log A).
func (g *Graph) Locations() []Location {
	out := make([]Location, 0, len(g.aliases))
	for name, h := range g.aliases {
		out = append(out, Location{Name: name, NodeID: g.nodes[h].ID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LocationsOf returns the alias names bound to node id, sorted.
// Unknown ids yield an empty slice.
// Complexity: O(A log A).
func (g *Graph) LocationsOf(id string) []string {
	h, ok := g.index[id]
	if !ok {
		return nil
	}
	var names []string
	for name, target := range g.aliases {
		if target == h {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Floors returns the distinct floor numbers present, ascending.
// Complexity: O(V log F).
func (g *Graph) Floors() []int {
	seen := make(map[int]struct{})
	for _, n := range g.nodes {
		seen[n.Floor] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
