// SPDX-License-Identifier: MIT

// Package directions renders a node path as step-by-step walking
// instructions in Chinese.
//
// Consecutive same-floor edges heading the same compass way are merged into
// one "向东走20.0米" step. Each floor-transition edge becomes its own step,
// and the walk after it is prefixed with the new floor. The last step names
// the destination by its alias when it has one.
//
// Generate is pure: the same path and graph always give the same steps.
package directions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/indoornav/core"
)

var (
	// ErrEmptyPath indicates a path with no nodes.
	ErrEmptyPath = errors.New("directions: path is empty")

	// ErrNotAdjacent indicates two consecutive path nodes with no edge
	// between them.
	ErrNotAdjacent = errors.New("directions: consecutive path nodes are not adjacent")
)

// Generate returns the instructions for walking path through g.
// Returns ErrEmptyPath, core.ErrUnknownNode or ErrNotAdjacent for paths that
// do not fit g.
func Generate(path []string, g *core.Graph) ([]string, error) {
	nodes, err := Resolve(path, g)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return []string{"您已在目的地：" + PlaceName(g, nodes[0].ID)}, nil
	}

	var (
		out     []string
		cur     walk
		pending string // floor prefix for the next walk after a floor change
	)
	for i := 0; i+1 < len(nodes); i++ {
		from, to := nodes[i], nodes[i+1]
		e, ok := g.EdgeBetween(from.ID, to.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %s-%s", ErrNotAdjacent, from.ID, to.ID)
		}

		// 1) Floor change: close the walk and emit its own step.
		if e.FloorTransition {
			out = cur.flush(out)
			out = append(out, floorChange(g, from, to))
			pending = "在" + FloorLabel(to.Floor)
			continue
		}

		// 2) Same heading: extend the walk.
		b := BearingOf(from, to)
		if cur.active && cur.bearing == b {
			cur.distance += e.Distance
			continue
		}

		// 3) New heading: start a new walk.
		out = cur.flush(out)
		cur = walk{active: true, prefix: pending, bearing: b, distance: e.Distance}
		pending = ""
	}
	out = cur.flush(out)

	return append(out, "到达目的地："+PlaceName(g, nodes[len(nodes)-1].ID)), nil
}

// Resolve looks up every node on path.
func Resolve(path []string, g *core.Graph) ([]core.Node, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	nodes := make([]core.Node, len(path))
	for i, id := range path {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// PlaceName returns the first alias of id in sorted order, or id itself.
func PlaceName(g *core.Graph, id string) string {
	if names := g.LocationsOf(id); len(names) > 0 {
		return names[0]
	}
	return id
}

// FloorLabel renders a floor number, e.g. "2楼" or "地下1层".
func FloorLabel(floor int) string {
	if floor < 0 {
		return fmt.Sprintf("地下%d层", -floor)
	}
	return fmt.Sprintf("%d楼", floor)
}

// walk is a run of same-floor edges sharing one bearing.
type walk struct {
	active   bool
	prefix   string
	bearing  Bearing
	distance float64
}

func (w *walk) flush(out []string) []string {
	if !w.active {
		return out
	}
	var step string
	if w.bearing == BearingNone {
		step = fmt.Sprintf("%s前行%.1f米", w.prefix, w.distance)
	} else {
		step = fmt.Sprintf("%s向%s走%.1f米", w.prefix, w.bearing, w.distance)
	}
	*w = walk{}
	return append(out, step)
}

func floorChange(g *core.Graph, from, to core.Node) string {
	verb := "上"
	if to.Floor < from.Floor {
		verb = "下"
	}
	return fmt.Sprintf("%s%s到%s", transport(g, from.ID, to.ID), verb, FloorLabel(to.Floor))
}

// transport names the means of changing floor from the endpoints' aliases.
func transport(g *core.Graph, a, b string) string {
	names := strings.Join(append(g.LocationsOf(a), g.LocationsOf(b)...), " ")
	switch {
	case strings.Contains(names, "电梯"):
		return "乘电梯"
	case strings.Contains(names, "楼梯"):
		return "走楼梯"
	default:
		return "乘楼梯/电梯"
	}
}
