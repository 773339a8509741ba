package dfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dfs"
)

// lobby builds:
//
//	floor 1: A ── B        X (isolated)
//	          \  /
//	           C
//	           │ stairs
//	floor 2:   D ── E
func lobby(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, n := range []core.Node{
		{ID: "A", X: 0, Floor: 1},
		{ID: "B", X: 10, Floor: 1},
		{ID: "C", X: 5, Y: 5, Floor: 1},
		{ID: "D", X: 5, Y: 5, Floor: 2},
		{ID: "E", X: 15, Y: 5, Floor: 2},
		{ID: "X", X: 99, Floor: 1},
	} {
		require.NoError(t, g.AddNode(n.ID, n.X, n.Y, n.Floor))
	}
	require.NoError(t, g.AddEdge("A", "B", 10))
	require.NoError(t, g.AddEdge("B", "C", 7))
	require.NoError(t, g.AddEdge("C", "A", 7))
	require.NoError(t, g.AddEdge("C", "D", 12))
	require.NoError(t, g.AddEdge("D", "E", 10))
	return g
}

func TestDFS_Errors(t *testing.T) {
	_, err := dfs.DFS(nil, "A")
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	_, err = dfs.DFS(lobby(t), "missing")
	assert.ErrorIs(t, err, dfs.ErrStartNodeNotFound)
}

func TestDFS_PostOrder(t *testing.T) {
	res, err := dfs.DFS(lobby(t), "A")
	require.NoError(t, err)

	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, res.Order)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 3, "E": 4}, res.Depth)
	assert.Equal(t, map[string]string{"B": "A", "C": "B", "D": "C", "E": "D"}, res.Parent)
	assert.False(t, res.Visited("X"))
}

func TestDFS_Hooks(t *testing.T) {
	var pre, post []string
	_, err := dfs.DFS(lobby(t), "A",
		dfs.WithOnVisit(func(id string, _ int) error { pre = append(pre, id); return nil }),
		dfs.WithOnExit(func(id string) error { post = append(post, id); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, pre)
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, post)

	stop := errors.New("stop")
	res, err := dfs.DFS(lobby(t), "A", dfs.WithOnVisit(func(id string, _ int) error {
		if id == "C" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.ErrorContains(t, err, `OnVisit at "C"`)
	assert.True(t, res.Visited("C"))
	assert.False(t, res.Visited("D"))
}

func TestDFS_FullTraversal(t *testing.T) {
	res, err := dfs.DFS(lobby(t), "", dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "D", "C", "B", "A", "X"}, res.Order)
	assert.Equal(t, 0, res.Depth["X"])
}

func TestDFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.DFS(lobby(t), "A", dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBridgesAndCutNodes(t *testing.T) {
	g := lobby(t)

	bridges, err := dfs.Bridges(g)
	require.NoError(t, err)
	assert.Equal(t, []dfs.Bridge{{A: "C", B: "D"}, {A: "D", B: "E"}}, bridges)

	cut, err := dfs.CutNodes(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, cut)

	// A second staircase closes the loop.
	require.NoError(t, g.AddNode("F", 0, 0, 2))
	require.NoError(t, g.AddEdge("A", "F", 12))
	require.NoError(t, g.AddEdge("F", "D", 7))

	bridges, err = dfs.Bridges(g)
	require.NoError(t, err)
	assert.Equal(t, []dfs.Bridge{{A: "D", B: "E"}}, bridges)

	cut, err = dfs.CutNodes(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, cut)
}

func TestWeaknesses(t *testing.T) {
	w, err := dfs.Weaknesses(lobby(t))
	require.NoError(t, err)
	assert.Equal(t, []dfs.Bridge{{A: "C", B: "D"}, {A: "D", B: "E"}}, w.Bridges)
	assert.Equal(t, []string{"C", "D"}, w.CutNodes)

	// A hub with three spokes: the root rule marks it, leaves are never cut.
	g := core.NewGraph()
	for i, id := range []string{"H", "L1", "L2", "L3"} {
		require.NoError(t, g.AddNode(id, float64(i), 0, 1))
	}
	for _, id := range []string{"L1", "L2", "L3"} {
		require.NoError(t, g.AddEdge("H", id, 5))
	}
	w, err = dfs.Weaknesses(g)
	require.NoError(t, err)
	assert.Len(t, w.Bridges, 3)
	assert.Equal(t, []string{"H"}, w.CutNodes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.Weaknesses(lobby(t), dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBridges_Empty(t *testing.T) {
	_, err := dfs.Bridges(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	bridges, err := dfs.Bridges(core.NewGraph())
	require.NoError(t, err)
	assert.Empty(t, bridges)

	cut, err := dfs.CutNodes(core.NewGraph())
	require.NoError(t, err)
	assert.Empty(t, cut)
}
