// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"math"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that the provided node ID is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrDuplicateNode indicates that a node with the same ID was already added.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrUnknownNode indicates an operation referenced a node that does not exist.
	ErrUnknownNode = errors.New("core: unknown node")

	// ErrInvalidDistance indicates a non-positive, NaN or infinite edge distance.
	ErrInvalidDistance = errors.New("core: edge distance must be a finite positive number")

	// ErrDuplicateEdge indicates that the unordered node pair already has an edge.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrSelfLoop indicates an edge whose endpoints are the same node.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrEmptyLocation indicates that the provided location name is empty.
	ErrEmptyLocation = errors.New("core: location name is empty")

	// ErrLocationNotFound indicates that no alias matches the requested name.
	ErrLocationNotFound = errors.New("core: location not found")
)

// Node is a positioned point in the building.
//
// X and Y are planar coordinates in meters; Floor identifies the storey the
// node belongs to. Nodes are values: once added they never change.
type Node struct {
	// ID uniquely identifies this node within its Graph.
	ID string

	// X is the east-west coordinate (east is positive).
	X float64

	// Y is the south-north coordinate (north is positive).
	Y float64

	// Floor is the storey number the node is on.
	Floor int
}

// Edge is a bidirectional connection between two nodes.
//
// From and To record the orientation in which the edge was added; traversal
// is allowed both ways at the same base Distance.
type Edge struct {
	// From is the first endpoint, as passed to AddEdge.
	From string

	// To is the second endpoint, as passed to AddEdge.
	To string

	// Distance is the physical length of the connection in meters.
	Distance float64

	// FloorTransition is true when the endpoints sit on different floors
	// (stairs, elevators, ramps).
	FloorTransition bool
}

// Other returns the endpoint of e that is not id.
// If id is not an endpoint, Other returns From.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Neighbor describes one edge as seen from a given node.
type Neighbor struct {
	ID              string  // neighbor node ID
	Distance        float64 // base distance of the connecting edge
	FloorTransition bool    // the connecting edge changes floor
}

// Location pairs an alias name with the node it resolves to.
type Location struct {
	Name   string
	NodeID string
}

// Graph is the building connectivity graph.
//
// Nodes and edges live in dense arenas addressed by int32 handles; the string
// index and alias map point into the node arena. See the package doc for the
// load/serve lifecycle.
type Graph struct {
	// Storage
	nodes []Node
	edges []Edge

	// adjacency[h] lists the edge handles incident to node h, kept sorted by
	// the ID of the opposite endpoint so expansions are deterministic.
	adjacency [][]int32

	// Indices
	index   map[string]int32 // node ID → node handle
	pairs   map[pairKey]int32
	aliases map[string]int32 // location name → node handle
}

// pairKey identifies an unordered pair of node handles, lower handle first.
type pairKey struct{ a, b int32 }

func makePairKey(a, b int32) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// GraphOption configures a Graph before any data is added.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the node and edge arenas.
// Negative hints are ignored.
func WithCapacity(nodes, edges int) GraphOption {
	return func(g *Graph) {
		if nodes > 0 {
			g.nodes = make([]Node, 0, nodes)
			g.adjacency = make([][]int32, 0, nodes)
			g.index = make(map[string]int32, nodes)
		}
		if edges > 0 {
			g.edges = make([]Edge, 0, edges)
			g.pairs = make(map[pairKey]int32, edges)
		}
	}
}

// NewGraph creates an empty Graph.
// Complexity: O(1) unless WithCapacity pre-allocates.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		index:   make(map[string]int32),
		pairs:   make(map[pairKey]int32),
		aliases: make(map[string]int32),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// validDistance reports whether d is usable as an edge distance.
func validDistance(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
