// SPDX-License-Identifier: MIT

// Package dfs walks a building graph depth-first and finds its weak spots.
//
// DFS gives pre-order and post-order hooks and a full-forest mode. Tarjan's
// low-link analysis runs on those hooks:
//
//   - Bridges lists corridors whose closure splits the building.
//   - CutNodes lists junctions whose closure splits the building.
//   - Weaknesses returns both from one walk.
//
// Building validation reports both, so a single stairwell or a corridor
// that every route must use shows up before congestion does.
//
// Determinism
//
//	Neighbors are expanded in ID order and forests start from the smallest
//	unvisited ID, so results never depend on map iteration.
//
// Complexity: O(V + E) time, O(V) space plus recursion depth.
package dfs
