// SPDX-License-Identifier: MIT

// Package dijkstra finds the cheapest route between two nodes of a building
// graph, weighting each edge by its distance and current congestion.
//
// The effective cost of an edge with distance d and congestion factor f is
// d / (1 - f). Factors come from a congestion.Snapshot supplied per call;
// edges missing from the snapshot cost exactly their distance.
//
// Determinism:
//
//   - The frontier is ordered by (cost, node ID), so among equally cheap
//     nodes the lexically smallest ID is settled first.
//   - Neighbors are expanded in ascending ID order (core.Graph keeps its
//     adjacency sorted).
//   - A predecessor is only replaced by a strictly cheaper one.
//
// Together these make the returned path a pure function of the graph,
// the snapshot and the endpoints.
//
// Complexity:
//
//   - Time:  O((V + E) log V), with lazy decrease-key on a binary heap.
//   - Space: O(V + E) in the worst case for stale heap entries.
//
// Errors:
//
//   - ErrNilGraph      if g is nil.
//   - core.ErrUnknownNode (wrapped) if start or end is absent.
//   - ErrNoPathFound   if end is unreachable.
//   - ErrBadCost       if a custom CostFunc yields an unusable cost.
//
// Example:
//
//	path, err := dijkstra.FindPath(g, "A", "F",
//	    dijkstra.WithCongestion(snap),
//	)
package dijkstra
