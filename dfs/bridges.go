// SPDX-License-Identifier: MIT

package dfs

import (
	"sort"

	"github.com/katalvlaran/indoornav/core"
)

// Bridge is an edge whose removal disconnects its endpoints. A is the
// lexically smaller ID.
type Bridge struct {
	A, B string
}

// Weakness lists the single points of failure of a graph.
type Weakness struct {
	// Bridges sorted by (A, B).
	Bridges []Bridge
	// CutNodes (articulation points) sorted by ID.
	CutNodes []string
}

// Weaknesses finds bridges and cut nodes in one full DFS. Only WithContext
// among opts is honoured; the hooks are used internally.
// Complexity: O(V + E).
func Weaknesses(g *core.Graph, opts ...Option) (Weakness, error) {
	if g == nil {
		return Weakness{}, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	l := &lowlink{
		graph:  g,
		disc:   make(map[string]int, g.NodeCount()),
		low:    make(map[string]int, g.NodeCount()),
		parent: make(map[string]string, g.NodeCount()),
		cut:    make(map[string]bool),
	}
	if _, err := DFS(g, "",
		WithContext(o.Ctx),
		WithFullTraversal(),
		WithOnVisit(l.enter),
		WithOnExit(l.exit),
	); err != nil {
		return Weakness{}, err
	}

	w := Weakness{Bridges: l.bridges, CutNodes: make([]string, 0, len(l.cut))}
	sort.Slice(w.Bridges, func(i, j int) bool {
		if w.Bridges[i].A != w.Bridges[j].A {
			return w.Bridges[i].A < w.Bridges[j].A
		}
		return w.Bridges[i].B < w.Bridges[j].B
	})
	for id := range l.cut {
		w.CutNodes = append(w.CutNodes, id)
	}
	sort.Strings(w.CutNodes)
	return w, nil
}

// Bridges returns every bridge of g, sorted by (A, B).
func Bridges(g *core.Graph, opts ...Option) ([]Bridge, error) {
	w, err := Weaknesses(g, opts...)
	return w.Bridges, err
}

// CutNodes returns the articulation points of g, sorted by ID.
func CutNodes(g *core.Graph, opts ...Option) ([]string, error) {
	w, err := Weaknesses(g, opts...)
	return w.CutNodes, err
}

// lowlink holds Tarjan discovery times and low-links, filled in by DFS
// hooks. stack mirrors the recursion so enter knows each node's parent.
type lowlink struct {
	graph  *core.Graph
	disc   map[string]int
	low    map[string]int
	parent map[string]string
	time   int
	stack  []string

	bridges []Bridge
	cut     map[string]bool
}

func (l *lowlink) enter(id string, _ int) error {
	l.time++
	l.disc[id], l.low[id] = l.time, l.time
	if n := len(l.stack); n > 0 {
		l.parent[id] = l.stack[n-1]
	}
	l.stack = append(l.stack, id)
	return nil
}

// exit runs once every child of u has finished. core.Graph has at most one
// edge per pair, so skipping the parent by ID is exact. Non-tree neighbors
// are either ancestors (back edges) or finished descendants, whose
// discovery time never lowers low[u].
func (l *lowlink) exit(u string) error {
	l.stack = l.stack[:len(l.stack)-1]
	parent := l.parent[u]

	nbs, err := l.graph.NeighborIDs(u)
	if err != nil {
		return err
	}
	children := 0
	for _, v := range nbs {
		if v == parent {
			continue
		}
		if l.parent[v] == u {
			children++
			l.low[u] = min(l.low[u], l.low[v])
			if l.low[v] > l.disc[u] {
				a, b := u, v
				if a > b {
					a, b = b, a
				}
				l.bridges = append(l.bridges, Bridge{A: a, B: b})
			}
			if parent != "" && l.low[v] >= l.disc[u] {
				l.cut[u] = true
			}
			continue
		}
		l.low[u] = min(l.low[u], l.disc[v])
	}
	if parent == "" && children > 1 {
		l.cut[u] = true
	}
	return nil
}
