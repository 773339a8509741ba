// SPDX-License-Identifier: MIT

package building

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/indoornav/bfs"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dfs"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
)

// ErrUnreachable indicates nodes that no route from the root can reach.
var ErrUnreachable = errors.New("building: unreachable nodes")

// Report summarizes a structural check of a building graph.
type Report struct {
	Stats core.GraphStats

	// Root is the node reachability was measured from.
	Root string

	// Unreachable lists nodes with no path from Root, sorted by ID.
	Unreachable []string

	// Components holds every connected component in BFS order.
	Components [][]string

	// Isolated lists floors whose nodes have no floor-transition edge, so
	// they can only be reached by staying on them.
	Isolated []int

	// Bridges are corridors whose closure disconnects the building.
	Bridges []dfs.Bridge

	// CutNodes are junctions whose closure disconnects the building.
	CutNodes []string

	// Stranded lists nodes of a multi-floor building whose same-floor area
	// has no stairs or lift, sorted by ID.
	Stranded []string
}

// OK reports whether every node is reachable from Root.
func (r Report) OK() bool { return len(r.Unreachable) == 0 }

// Err returns ErrUnreachable with the offending nodes, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w from %q: %v", ErrUnreachable, r.Root, r.Unreachable)
}

// Validate checks g from root. An empty root uses the smallest node ID.
// The returned error is non-nil only when the check cannot run; a graph
// with unreachable nodes yields a Report with OK() == false.
// Complexity: O(V log V + E).
func Validate(g *core.Graph, root string) (Report, error) {
	return validate(context.Background(), g, root)
}

func validate(ctx context.Context, g *core.Graph, root string) (Report, error) {
	if g == nil || g.NodeCount() == 0 {
		return Report{}, ErrNoNodes
	}
	if root == "" {
		root = g.Nodes()[0].ID
	}

	rep := Report{Stats: g.Stats(), Root: root}

	// 1) Reachability from root.
	res, err := bfs.BFS(g, root)
	if err != nil {
		return Report{}, fmt.Errorf("building: validate: %w", err)
	}
	for _, n := range g.Nodes() {
		if !res.Reached(n.ID) {
			rep.Unreachable = append(rep.Unreachable, n.ID)
		}
	}

	// 2) Components.
	if rep.Components, err = bfs.Components(g); err != nil {
		return Report{}, fmt.Errorf("building: validate: %w", err)
	}

	// 3) Floors without vertical access, only meaningful with >1 floor.
	floors := g.Floors()
	if len(floors) > 1 {
		linked := make(map[int]bool, len(floors))
		for _, e := range g.Edges() {
			if !e.FloorTransition {
				continue
			}
			a, _ := g.Node(e.From)
			b, _ := g.Node(e.To)
			linked[a.Floor] = true
			linked[b.Floor] = true
		}
		for _, f := range floors {
			if !linked[f] {
				rep.Isolated = append(rep.Isolated, f)
			}
		}
	}

	// 4) Same-floor areas without vertical access.
	if len(floors) > 1 {
		if rep.Stranded, err = stranded(g); err != nil {
			return Report{}, fmt.Errorf("building: validate: %w", err)
		}
	}

	// 5) Single points of failure.
	weak, err := dfs.Weaknesses(g, dfs.WithContext(ctx))
	if err != nil {
		return Report{}, fmt.Errorf("building: validate: %w", err)
	}
	rep.Bridges, rep.CutNodes = weak.Bridges, weak.CutNodes

	return rep, nil
}

// stranded returns the nodes of same-floor components that touch no
// floor-transition edge.
func stranded(g *core.Graph) ([]string, error) {
	areas, err := bfs.Components(g, bfs.SameFloor())
	if err != nil {
		return nil, err
	}
	var out []string
	for _, area := range areas {
		if !hasVerticalAccess(g, area) {
			out = append(out, area...)
		}
	}
	sort.Strings(out)
	return out, nil
}

func hasVerticalAccess(g *core.Graph, ids []string) bool {
	for _, id := range ids {
		nbs, _ := g.Neighbors(id)
		for _, nb := range nbs {
			if nb.FloorTransition {
				return true
			}
		}
	}
	return false
}

// FloorComponents returns the connected components of one floor, walking
// only same-floor corridors.
func FloorComponents(g *core.Graph, floor int) ([][]string, error) {
	if g == nil {
		return nil, ErrNoNodes
	}
	return bfs.Components(core.FloorView(g, floor))
}

// Load reads src, builds the graph and validates it from root. Unreachable
// nodes are logged as a warning, not returned as an error.
func Load(ctx context.Context, src Source, root string) (*core.Graph, Report, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := src.Load(ctx)
	if err != nil {
		return nil, Report{}, err
	}
	g, err := data.Build()
	if err != nil {
		return nil, Report{}, err
	}
	if root != "" && !g.HasNode(root) {
		if n, lerr := g.NodeByLocation(root); lerr == nil {
			root = n.ID
		} else {
			root = ""
		}
	}
	rep, err := validate(ctx, g, root)
	if err != nil {
		return nil, Report{}, err
	}

	logger.Info("building loaded", "building", data.Name,
		"nodes", rep.Stats.NodeCount, "edges", rep.Stats.EdgeCount,
		"locations", rep.Stats.LocationCount, "floors", rep.Stats.FloorCount,
		"components", len(rep.Components), "bridges", len(rep.Bridges))
	if !rep.OK() {
		logger.Warn("building has unreachable nodes", "root", rep.Root, "nodes", rep.Unreachable)
	}
	if len(rep.Isolated) > 0 {
		logger.Warn("floors without stairs or lifts", "floors", rep.Isolated)
	}
	if len(rep.Stranded) > 0 {
		logger.Warn("areas without stairs or lifts", "nodes", rep.Stranded)
	}
	return g, rep, nil
}
