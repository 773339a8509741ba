package building_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dfs"
)

const campus = "testdata/campus.hcl"

func loadCampus(t *testing.T) *core.Graph {
	t.Helper()
	data, err := building.LoadHCL(context.Background(), campus, building.WithNumber("corridor", 10))
	require.NoError(t, err)
	g, err := data.Build()
	require.NoError(t, err)
	return g
}

func TestLoadHCL_Campus(t *testing.T) {
	data, err := building.LoadHCL(context.Background(), campus, building.WithNumber("corridor", 10))
	require.NoError(t, err)
	assert.Equal(t, "campus", data.Name)
	assert.Len(t, data.Nodes, 7)
	assert.Len(t, data.Edges, 6)
	assert.Equal(t, []building.LocationSpec{{Name: "前台", Node: "A"}}, data.Locations)

	g, err := data.Build()
	require.NoError(t, err)

	stats := g.Stats()
	assert.Equal(t, 7, stats.NodeCount)
	assert.Equal(t, 6, stats.EdgeCount)
	assert.Equal(t, 9, stats.LocationCount)
	assert.Equal(t, 2, stats.FloorCount)
	assert.Equal(t, 1, stats.FloorTransitionCount)

	// distance from var.corridor
	e, ok := g.EdgeBetween("A", "B")
	require.True(t, ok)
	assert.Equal(t, 10.0, e.Distance)

	// planar default
	e, ok = g.EdgeBetween("A", "S1")
	require.True(t, ok)
	assert.InDelta(t, 10.0, e.Distance, 1e-9)

	n, err := g.NodeByLocation("前台")
	require.NoError(t, err)
	assert.Equal(t, "A", n.ID)
}

func TestLoadHCL_MissingVariable(t *testing.T) {
	_, err := building.LoadHCL(context.Background(), campus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building: decode")
}

func TestLoadHCL_MissingFile(t *testing.T) {
	_, err := building.LoadHCL(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building: parse")
}

func TestDecodeHCL(t *testing.T) {
	src := []byte(`
node "A" {
  x     = 0
  y     = 0
  floor = 1
}
node "B" {
  x     = 3
  y     = 4
  floor = 1
  aliases = ["1楼` + "${var.room}" + `"]
}
edge {
  from = "A"
  to   = "B"
}
`)
	data, err := building.DecodeHCL(src, "inline.hcl", building.WithString("room", "102教室"))
	require.NoError(t, err)
	require.Len(t, data.Nodes, 2)
	assert.Equal(t, []string{"1楼102教室"}, data.Nodes[1].Aliases)

	g, err := data.Build()
	require.NoError(t, err)
	e, ok := g.EdgeBetween("A", "B")
	require.True(t, ok)
	assert.InDelta(t, 5.0, e.Distance, 1e-9)
}

func TestDecodeHCL_ExplicitZeroDistance(t *testing.T) {
	src := []byte(`
node "A" {
  x     = 0
  y     = 0
  floor = 1
}
node "B" {
  x     = 1
  y     = 0
  floor = 1
}
edge {
  from     = "A"
  to       = "B"
  distance = 0
}
`)
	_, err := building.DecodeHCL(src, "zero.hcl")
	assert.ErrorIs(t, err, core.ErrInvalidDistance)
}

func TestDecodeHCL_Syntax(t *testing.T) {
	_, err := building.DecodeHCL([]byte(`node "A" {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building: parse broken.hcl")
}

func TestHCLSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
building = "tiny"
node "X" {
  x     = 0
  y     = 0
  floor = 1
}
`), 0o600))

	var src building.Source = building.HCLSource{Path: path}
	data, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tiny", data.Name)
	assert.Len(t, data.Nodes, 1)
}

func TestBuild_Errors(t *testing.T) {
	_, err := building.Data{}.Build()
	assert.ErrorIs(t, err, building.ErrNoNodes)

	base := func() building.Data {
		return building.Data{Nodes: []building.NodeSpec{
			{ID: "A", X: 0, Floor: 1},
			{ID: "B", X: 5, Floor: 1},
		}}
	}

	d := base()
	d.Nodes = append(d.Nodes, building.NodeSpec{ID: "A"})
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrDuplicateNode)

	d = base()
	d.Edges = []building.EdgeSpec{{From: "A", To: "Z", Distance: 1}}
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrUnknownNode)

	d = base()
	d.Edges = []building.EdgeSpec{{From: "A", To: "B", Distance: -1}}
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrInvalidDistance)

	d = base()
	d.Edges = []building.EdgeSpec{{From: "A", To: "B"}, {From: "B", To: "A"}}
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrDuplicateEdge)

	// Stacked lift stops have no planar distance to fall back on.
	d = base()
	d.Nodes = append(d.Nodes, building.NodeSpec{ID: "A2", X: 0, Floor: 2})
	d.Edges = []building.EdgeSpec{{From: "A", To: "A2"}}
	_, err = d.Build()
	assert.ErrorIs(t, err, building.ErrDistanceRequired)
	assert.ErrorIs(t, err, core.ErrInvalidDistance)
	assert.ErrorContains(t, err, "edge A-A2")

	d.Edges = []building.EdgeSpec{{From: "A", To: "A2", Distance: 4}}
	_, err = d.Build()
	assert.NoError(t, err)

	d = base()
	d.Locations = []building.LocationSpec{{Name: "x", Node: "Q"}}
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrUnknownNode)

	d = base()
	d.Nodes[0].Aliases = []string{""}
	_, err = d.Build()
	assert.ErrorIs(t, err, core.ErrEmptyLocation)
}

func TestBuild_LaterBindingWins(t *testing.T) {
	d := building.Data{
		Nodes: []building.NodeSpec{
			{ID: "A", Floor: 1, Aliases: []string{"大厅"}},
			{ID: "B", X: 1, Floor: 1},
		},
		Locations: []building.LocationSpec{{Name: "大厅", Node: "B"}},
	}
	g, err := d.Build()
	require.NoError(t, err)
	n, err := g.NodeByLocation("大厅")
	require.NoError(t, err)
	assert.Equal(t, "B", n.ID)
}

func TestFromGraph_RoundTrip(t *testing.T) {
	g := loadCampus(t)
	g2, err := building.FromGraph("campus", g).Build()
	require.NoError(t, err)
	assert.Equal(t, g.Stats(), g2.Stats())
	assert.Equal(t, g.Locations(), g2.Locations())
}

func TestValidate(t *testing.T) {
	g := loadCampus(t)
	rep, err := building.Validate(g, "A")
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.NoError(t, rep.Err())
	assert.Len(t, rep.Components, 1)
	assert.Empty(t, rep.Isolated)
	assert.Empty(t, rep.Stranded)
	assert.Len(t, rep.Bridges, 6)
	assert.Equal(t, []string{"A", "B", "D", "S1", "S2"}, rep.CutNodes)

	floor2, err := building.FloorComponents(g, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"D", "E", "S2"}}, floor2)
}

func TestValidate_Unreachable(t *testing.T) {
	d := building.Data{
		Nodes: []building.NodeSpec{
			{ID: "A", Floor: 1},
			{ID: "B", X: 1, Floor: 1},
			{ID: "C", X: 1, Floor: 2},
		},
		Edges: []building.EdgeSpec{{From: "A", To: "B"}},
	}
	g, err := d.Build()
	require.NoError(t, err)

	rep, err := building.Validate(g, "")
	require.NoError(t, err)
	assert.Equal(t, "A", rep.Root)
	assert.False(t, rep.OK())
	assert.Equal(t, []string{"C"}, rep.Unreachable)
	assert.Equal(t, [][]string{{"A", "B"}, {"C"}}, rep.Components)
	assert.Equal(t, []int{1, 2}, rep.Isolated)
	assert.Equal(t, []string{"A", "B", "C"}, rep.Stranded)
	assert.ErrorIs(t, rep.Err(), building.ErrUnreachable)

	_, err = building.Validate(g, "missing")
	assert.Error(t, err)

	_, err = building.Validate(nil, "")
	assert.ErrorIs(t, err, building.ErrNoNodes)
}

func TestValidate_StrandedWing(t *testing.T) {
	// The west wing (W1, W2) is on floor 1 but joined to nothing that
	// leads upstairs.
	d := building.Data{
		Nodes: []building.NodeSpec{
			{ID: "A", Floor: 1},
			{ID: "S1", X: 5, Floor: 1},
			{ID: "S2", X: 5, Floor: 2},
			{ID: "W1", X: -20, Floor: 1},
			{ID: "W2", X: -30, Floor: 1},
		},
		Edges: []building.EdgeSpec{
			{From: "A", To: "S1"},
			{From: "S1", To: "S2", Distance: 12},
			{From: "W1", To: "W2"},
		},
	}
	g, err := d.Build()
	require.NoError(t, err)

	rep, err := building.Validate(g, "A")
	require.NoError(t, err)
	assert.Empty(t, rep.Isolated)
	assert.Equal(t, []string{"W1", "W2"}, rep.Stranded)
	assert.Equal(t, []string{"W1", "W2"}, rep.Unreachable)
	assert.Equal(t, []string{"S1"}, rep.CutNodes)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	g, rep, err := building.Load(ctx, building.Static(building.Tower()), "1楼大厅")
	require.NoError(t, err)
	assert.Equal(t, "F1-H", rep.Root)
	assert.True(t, rep.OK())
	assert.Equal(t, 24, g.NodeCount())
	assert.Len(t, rep.Bridges, 15)
	assert.Contains(t, rep.Bridges, dfs.Bridge{A: "F2-R4", B: "F2-W"})
	assert.NotContains(t, rep.CutNodes, "F1-E")

	boom := errors.New("boom")
	_, _, err = building.Load(ctx, building.SourceFunc(func(context.Context) (building.Data, error) {
		return building.Data{}, boom
	}), "")
	assert.ErrorIs(t, err, boom)

	_, _, err = building.Load(ctx, building.Static(building.Data{}), "")
	assert.ErrorIs(t, err, building.ErrNoNodes)
}

func TestTower(t *testing.T) {
	d := building.Tower()
	assert.Equal(t, "tower-3x4", d.Name)
	assert.Len(t, d.Nodes, 24)
	assert.Len(t, d.Edges, 25)

	g, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, g.Floors())
	assert.Equal(t, 4, g.Stats().FloorTransitionCount)

	for name, id := range map[string]string{
		"入口":       "F1-H",
		"2楼大厅":    "F2-H",
		"3楼302教室": "F3-R2",
		"1楼洗手间":  "F1-W",
		"2楼电梯":    "F2-E",
		"3楼楼梯":    "F3-S",
	} {
		n, err := g.NodeByLocation(name)
		require.NoError(t, err, name)
		assert.Equal(t, id, n.ID, name)
	}

	e, ok := g.EdgeBetween("F1-S", "F2-S")
	require.True(t, ok)
	assert.Equal(t, building.DefaultStairLength, e.Distance)
}

func TestTower_Options(t *testing.T) {
	d := building.Tower(building.WithFloors(1), building.WithRooms(12), building.WithSpacing(2),
		building.WithVertical(20, 8))
	g, err := d.Build()
	require.NoError(t, err)
	n, err := g.NodeByLocation("1楼112教室")
	require.NoError(t, err)
	assert.Equal(t, 26.0, n.X)
	assert.Zero(t, g.Stats().FloorTransitionCount)

	assert.Panics(t, func() { building.WithFloors(0) })
	assert.Panics(t, func() { building.WithRooms(100) })
	assert.Panics(t, func() { building.WithSpacing(0) })
	assert.Panics(t, func() { building.WithVertical(1, -1) })
	assert.Panics(t, func() { building.WithString("", "x") })
}
