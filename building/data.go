// SPDX-License-Identifier: MIT

// Package building loads building topology from external sources and turns
// it into a validated core.Graph.
//
// Every source (HCL files, Neo4j, the synthetic Tower generator) produces a
// plain Data value. Build replays Data through the core.Graph load
// operations, so the graph's own checks (duplicate IDs, bad distances,
// unknown endpoints) apply to every source the same way. Validate then
// reports structural problems such as nodes no route can reach.
//
// A typical load:
//
//	data, err := building.LoadHCL(ctx, "campus.hcl")
//	g, err := data.Build()
//	report, err := building.Validate(g, "A")
package building

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/indoornav/core"
)

var (
	// ErrNoNodes indicates building data without any node.
	ErrNoNodes = errors.New("building: no nodes defined")

	// ErrDistanceRequired indicates an edge without a distance whose
	// endpoints share X and Y, such as stacked stairs or lift stops.
	ErrDistanceRequired = errors.New("building: edge between stacked nodes needs an explicit distance")
)

// NodeSpec describes one node.
type NodeSpec struct {
	ID      string
	X, Y    float64
	Floor   int
	Aliases []string // location names bound to this node
}

// EdgeSpec describes one connection. A zero Distance means "use the planar
// distance between the endpoints"; vertical edges between nodes at the same
// X and Y must set it.
type EdgeSpec struct {
	From, To string
	Distance float64
}

// LocationSpec binds a location name to a node.
type LocationSpec struct {
	Name string
	Node string
}

// Data is building topology in source-independent form.
type Data struct {
	Name      string
	Nodes     []NodeSpec
	Edges     []EdgeSpec
	Locations []LocationSpec
}

// Source produces building Data.
type Source interface {
	Load(ctx context.Context) (Data, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Data, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (Data, error) { return f(ctx) }

// Static returns a Source that always yields d.
func Static(d Data) Source {
	return SourceFunc(func(context.Context) (Data, error) { return d, nil })
}

// Build creates a fresh graph from d.
//
// Nodes are added first, then edges, then node aliases, then standalone
// locations; a later binding of the same name wins. Errors from core are
// wrapped with the offending element.
func (d Data) Build() (*core.Graph, error) {
	if len(d.Nodes) == 0 {
		return nil, ErrNoNodes
	}

	g := core.NewGraph(core.WithCapacity(len(d.Nodes), len(d.Edges)))
	pos := make(map[string]NodeSpec, len(d.Nodes))

	// 1) Nodes
	for _, n := range d.Nodes {
		if err := g.AddNode(n.ID, n.X, n.Y, n.Floor); err != nil {
			return nil, fmt.Errorf("building: node %q: %w", n.ID, err)
		}
		pos[n.ID] = n
	}

	// 2) Edges
	for _, e := range d.Edges {
		dist := e.Distance
		if dist == 0 {
			a, b := pos[e.From], pos[e.To]
			dist = math.Hypot(b.X-a.X, b.Y-a.Y)
			if dist == 0 && e.From != e.To && a.Floor != b.Floor {
				return nil, fmt.Errorf("building: edge %s-%s: %w (%w)", e.From, e.To, ErrDistanceRequired, core.ErrInvalidDistance)
			}
		}
		if err := g.AddEdge(e.From, e.To, dist); err != nil {
			return nil, fmt.Errorf("building: edge %s-%s: %w", e.From, e.To, err)
		}
	}

	// 3) Aliases
	for _, n := range d.Nodes {
		for _, name := range n.Aliases {
			if err := g.AddSpecialLocation(name, n.ID); err != nil {
				return nil, fmt.Errorf("building: alias %q: %w", name, err)
			}
		}
	}
	for _, l := range d.Locations {
		if err := g.AddSpecialLocation(l.Name, l.Node); err != nil {
			return nil, fmt.Errorf("building: location %q: %w", l.Name, err)
		}
	}

	return g, nil
}

// FromGraph captures g as Data. Node aliases are returned as Locations.
func FromGraph(name string, g *core.Graph) Data {
	d := Data{Name: name}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, NodeSpec{ID: n.ID, X: n.X, Y: n.Y, Floor: n.Floor})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, EdgeSpec{From: e.From, To: e.To, Distance: e.Distance})
	}
	for _, l := range g.Locations() {
		d.Locations = append(d.Locations, LocationSpec{Name: l.Name, Node: l.NodeID})
	}
	return d
}
