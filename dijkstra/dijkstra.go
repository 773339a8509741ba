// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/indoornav/core"
)

// FindPath returns the minimum effective-cost path from start to end.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. start and end must exist in g (core.ErrUnknownNode, wrapped).
//
// If start == end the path is [start]. If end cannot be reached, FindPath
// returns ErrNoPathFound.
//
// Complexity: O((V + E) log V).
func FindPath(g *core.Graph, start, end string, opts ...Option) (Path, error) {
	res, err := Find(g, start, end, opts...)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Find is FindPath returning the path's total effective cost and physical
// distance alongside it.
func Find(g *core.Graph, start, end string, opts ...Option) (Result, error) {
	// 1) Build options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if g == nil {
		return Result{}, ErrNilGraph
	}
	if !g.HasNode(start) {
		return Result{}, fmt.Errorf("dijkstra: start: %w: %q", core.ErrUnknownNode, start)
	}
	if !g.HasNode(end) {
		return Result{}, fmt.Errorf("dijkstra: end: %w: %q", core.ErrUnknownNode, end)
	}

	// 3) Trivial route
	if start == end {
		return Result{Path: Path{start}}, nil
	}

	// 4) Search
	r := &runner{
		g:       g,
		options: cfg,
		target:  end,
		cost:    make(map[string]float64, g.NodeCount()),
		dist:    make(map[string]float64, g.NodeCount()),
		prev:    make(map[string]string, g.NodeCount()),
		visited: make(map[string]bool, g.NodeCount()),
	}
	r.init(start)
	if err := r.process(); err != nil {
		return Result{}, err
	}

	// 5) Reconstruct
	if !r.visited[end] {
		return Result{}, fmt.Errorf("%w: %s → %s", ErrNoPathFound, start, end)
	}
	return Result{
		Path:     r.path(start, end),
		Cost:     r.cost[end],
		Distance: r.dist[end],
	}, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g       *core.Graph
	options Options
	target  string

	cost    map[string]float64 // best known effective cost from start
	dist    map[string]float64 // physical distance along the best route
	prev    map[string]string  // predecessor on the best route
	visited map[string]bool    // settled nodes
	pq      nodePQ
}

func (r *runner) init(start string) {
	r.cost[start] = 0
	r.dist[start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: start, cost: 0})
}

// process settles nodes in (cost, id) order until the target is settled,
// the frontier is empty, or the frontier exceeds MaxCost.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the cheapest entry; skip stale duplicates.
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}

		// 2) Everything left is beyond the cap.
		if item.cost > r.options.MaxCost {
			break
		}

		// 3) Settle.
		r.visited[item.id] = true
		if item.id == r.target {
			return nil
		}

		// 4) Relax.
		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve every unsettled neighbor of u through u.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: neighbors of %q: %w", u, err)
	}

	base := r.cost[u]
	var c, next float64
	for _, nb := range neighbors {
		if r.visited[nb.ID] {
			continue
		}

		c = r.options.Cost(nb.Distance, r.options.Congestion.Factor(u, nb.ID))
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: %s-%s cost=%v", ErrBadCost, u, nb.ID, c)
		}

		next = base + c
		if next > r.options.MaxCost {
			continue
		}
		// Strict improvement only; equal-cost alternatives keep the
		// predecessor found first.
		if old, seen := r.cost[nb.ID]; seen && next >= old {
			continue
		}

		r.cost[nb.ID] = next
		r.dist[nb.ID] = r.dist[u] + nb.Distance
		r.prev[nb.ID] = u
		heap.Push(&r.pq, &nodeItem{id: nb.ID, cost: next})
	}

	return nil
}

// path walks predecessors back from end.
func (r *runner) path(start, end string) Path {
	var rev Path
	for v := end; ; v = r.prev[v] {
		rev = append(rev, v)
		if v == start {
			break
		}
	}
	out := make(Path, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// nodeItem is a frontier entry.
type nodeItem struct {
	id   string
	cost float64
}

// nodePQ is a min-heap of *nodeItem ordered by cost, then by node ID.
// Stale entries stay in the heap and are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
