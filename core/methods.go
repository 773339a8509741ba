// SPDX-License-Identifier: MIT

// Load-time mutations. These append to the arenas and are not safe to call
// while other goroutines read the same Graph.

package core

import (
	"fmt"
	"sort"
)

// AddNode inserts a node at (x, y) on the given floor.
// Returns ErrEmptyNodeID if id is empty and ErrDuplicateNode if id exists.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string, x, y float64, floor int) error {
	// 1) Input validation
	if id == "" {
		return ErrEmptyNodeID
	}
	// 2) Node IDs are unique; a second AddNode never overwrites.
	if _, exists := g.index[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}

	// 3) Append to the arena and register the handle.
	h := int32(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, X: x, Y: y, Floor: floor})
	g.adjacency = append(g.adjacency, nil)
	g.index[id] = h

	return nil
}

// AddEdge connects nodes a and b with a bidirectional edge of the given
// distance. The edge is marked as a floor transition when a and b are on
// different floors.
//
// Returns ErrUnknownNode if either endpoint is absent, ErrSelfLoop if a == b,
// ErrInvalidDistance if distance is not a finite positive number and
// ErrDuplicateEdge if the unordered pair {a, b} already has an edge.
// Complexity: O(deg(a) + deg(b)) for the sorted adjacency insert.
func (g *Graph) AddEdge(a, b string, distance float64) error {
	// 1) Resolve both endpoints.
	ha, ok := g.index[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, a)
	}
	hb, ok := g.index[b]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, b)
	}
	// 2) Loop constraint
	if ha == hb {
		return fmt.Errorf("%w: %q", ErrSelfLoop, a)
	}
	// 3) Distance constraint
	if !validDistance(distance) {
		return fmt.Errorf("%w: %s-%s distance=%v", ErrInvalidDistance, a, b, distance)
	}
	// 4) At most one edge per unordered pair.
	key := makePairKey(ha, hb)
	if _, exists := g.pairs[key]; exists {
		return fmt.Errorf("%w: %s-%s", ErrDuplicateEdge, a, b)
	}

	// 5) Append the edge and index the pair.
	eh := int32(len(g.edges))
	g.edges = append(g.edges, Edge{
		From:            a,
		To:              b,
		Distance:        distance,
		FloorTransition: g.nodes[ha].Floor != g.nodes[hb].Floor,
	})
	g.pairs[key] = eh

	// 6) Mirror into both adjacency lists.
	g.insertAdjacent(ha, eh)
	g.insertAdjacent(hb, eh)

	return nil
}

// insertAdjacent adds edge handle eh to node h's adjacency, keeping the list
// ordered by the ID of the opposite endpoint.
func (g *Graph) insertAdjacent(h, eh int32) {
	self := g.nodes[h].ID
	other := g.edges[eh].Other(self)
	list := g.adjacency[h]
	i := sort.Search(len(list), func(i int) bool {
		return g.edges[list[i]].Other(self) >= other
	})
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = eh
	g.adjacency[h] = list
}

// AddSpecialLocation binds a human-readable location name to node nodeID.
// Several names may point at the same node; binding an existing name again
// rebinds it (last write wins).
// Returns ErrEmptyLocation for an empty name and ErrUnknownNode if nodeID is absent.
// Complexity: O(1).
func (g *Graph) AddSpecialLocation(name, nodeID string) error {
	if name == "" {
		return ErrEmptyLocation
	}
	h, ok := g.index[nodeID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}
	g.aliases[name] = h

	return nil
}
