// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"

	"github.com/katalvlaran/indoornav/core"
)

// queueItem pairs a node ID with its depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS walks g breadth-first from start, ignoring edge lengths.
// Returns ErrGraphNil, ErrStartNodeNotFound, ErrOptionViolation, the
// context's error on cancellation, or an OnVisit error.
// Complexity: O(V + E).
func BFS(g *core.Graph, start string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNodeNotFound, start)
	}

	n := g.NodeCount()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order: make([]string, 0, n),
			Depth: make(map[string]int, n),
		},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

// Components splits g into connected components. Each component lists its
// node IDs in BFS order from its smallest ID; components are ordered by that
// smallest ID.
// Complexity: O(V log V + E).
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[string]bool, g.NodeCount())
	var out [][]string
	for _, n := range g.Nodes() {
		if seen[n.ID] {
			continue
		}
		res, err := BFS(g, n.ID, opts...)
		if err != nil {
			return nil, err
		}
		for _, id := range res.Order {
			seen[id] = true
		}
		out = append(out, res.Order)
	}
	return out, nil
}

func (w *walker) enqueue(id string, d int) {
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.expand(item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	n, err := w.graph.Node(item.id)
	if err != nil {
		return err
	}
	if err := w.opts.OnVisit(n, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}
	return nil
}

// expand enqueues each unseen neighbor the options allow. Neighbors come
// sorted by ID, so the visit order is reproducible.
func (w *walker) expand(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	neighbors, err := w.graph.Neighbors(item.id)
	if err != nil {
		return err
	}
	for _, nb := range neighbors {
		if _, seen := w.res.Depth[nb.ID]; seen {
			continue
		}
		if !w.opts.Follow(item.id, nb) {
			continue
		}
		w.enqueue(nb.ID, next)
	}
	return nil
}
