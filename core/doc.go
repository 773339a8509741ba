// SPDX-License-Identifier: MIT

// Package core defines the building connectivity graph used by every other
// indoornav package: positioned nodes, weighted bidirectional edges, and
// named-location aliases that bind human-readable names to nodes.
//
// Layout:
//
//	nodes     []Node             dense arena, index = stable node handle
//	edges     []Edge             dense arena, index = stable edge handle
//	adjacency [][]int32          per-node edge handles, sorted by neighbor ID
//	index     map[string]int32   node ID → node handle
//	aliases   map[string]int32   location name → node handle
//
// The arena avoids pointer cycles between nodes and edges while keeping
// neighbor lookups O(1) per node.
//
// Lifecycle:
//
//   - Load: AddNode, AddEdge and AddSpecialLocation append to the arena.
//     They are meant to run once while building data is loaded.
//   - Serve: all remaining methods are read-only. Once loading is complete a
//     Graph may be shared by any number of goroutines without locking.
//
// A running service that needs new topology builds a fresh Graph and
// publishes it atomically (see navigator.Navigator.Swap); it never mutates a
// Graph that requests may be reading.
//
// Errors (sentinel):
//
//	ErrEmptyNodeID      - node ID is the empty string.
//	ErrDuplicateNode    - a node with that ID already exists.
//	ErrUnknownNode      - an operation referenced a node that was never added.
//	ErrInvalidDistance  - edge distance is not a finite positive number.
//	ErrDuplicateEdge    - the unordered node pair already has an edge.
//	ErrSelfLoop         - both endpoints of an edge are the same node.
//	ErrEmptyLocation    - alias name is the empty string.
//	ErrLocationNotFound - no alias matches the requested name.
//
// Example:
//
//	g := core.NewGraph()
//	_ = g.AddNode("A", 0, 0, 1)
//	_ = g.AddNode("B", 10, 0, 1)
//	_ = g.AddEdge("A", "B", 10)
//	_ = g.AddSpecialLocation("1楼入口", "A")
//	n, _ := g.NodeByLocation("1楼入口") // n.ID == "A"
package core
