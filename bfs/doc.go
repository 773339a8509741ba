// SPDX-License-Identifier: MIT

// Package bfs walks a building graph breadth-first by hop count.
//
// It answers structural questions that ignore distances: which nodes a
// start can reach, how many hops away they are, and how the graph splits
// into connected components. Building validation uses it to find rooms that
// no route can reach.
//
// Options:
//
//   - WithContext    cancellation, checked once per dequeued node.
//   - WithOnVisit    callback per visited node; an error aborts the walk.
//   - WithMaxDepth   hop limit (0 means none).
//   - WithFollow     edge filter; SameFloor refuses floor transitions.
//
// Determinism
//
//	core.Graph returns neighbors sorted by ID and BFS enqueues them in that
//	order, so the visit sequence is fully reproducible.
//
// Complexity: O(V + E) time and O(V) space.
package bfs
