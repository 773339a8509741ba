// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/indoornav/core"
)

// walker encapsulates state during DFS.
type walker struct {
	graph *core.Graph
	opts  Options
	res   *Result
}

// DFS walks g depth-first from start, or over every component with
// WithFullTraversal (start is then ignored). On error the partial Result is
// returned alongside it.
// Complexity: O(V + E).
func DFS(g *core.Graph, start string, opts ...Option) (*Result, error) {
	// 1) Validate
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.FullTraversal && !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNodeNotFound, start)
	}

	// 2) Walk
	n := g.NodeCount()
	w := &walker{graph: g, opts: o, res: &Result{
		Order:  make([]string, 0, n),
		Depth:  make(map[string]int, n),
		Parent: make(map[string]string, n),
	}}
	if !o.FullTraversal {
		return w.res, w.traverse(start, 0)
	}
	for _, node := range g.Nodes() {
		if w.res.Visited(node.ID) {
			continue
		}
		if err := w.traverse(node.ID, 0); err != nil {
			return w.res, err
		}
	}
	return w.res, nil
}

// traverse visits id at depth and recurses into unvisited neighbors.
func (w *walker) traverse(id string, depth int) error {
	// 1) Cancellation
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}

	// 2) Discover
	w.res.Depth[id] = depth
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id, depth); err != nil {
			return fmt.Errorf("dfs: OnVisit at %q: %w", id, err)
		}
	}

	// 3) Descend
	nbs, err := w.graph.NeighborIDs(id)
	if err != nil {
		return err
	}
	for _, nb := range nbs {
		if w.res.Visited(nb) {
			continue
		}
		w.res.Parent[nb] = id
		if err := w.traverse(nb, depth+1); err != nil {
			return err
		}
	}

	// 4) Finish
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit at %q: %w", id, err)
		}
	}
	w.res.Order = append(w.res.Order, id)
	return nil
}
