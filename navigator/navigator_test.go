package navigator_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dijkstra"
	"github.com/katalvlaran/indoornav/directions"
	"github.com/katalvlaran/indoornav/navigator"
	"github.com/katalvlaran/indoornav/parser"
)

var quiet = slog.New(slog.DiscardHandler)

// NavigatorSuite routes through the default four-room, n-floor Tower:
//
//	F<f>-S ── F<f>-H ── F<f>-R1 ── … ── F<f>-R4 ── F<f>-W
//	            │
//	          F<f>-E     (lift; 4 m per storey, stairs 12 m)
type NavigatorSuite struct {
	suite.Suite
	nav *navigator.Navigator
}

func (s *NavigatorSuite) SetupTest() {
	g, err := building.Tower(building.WithFloors(4)).Build()
	s.Require().NoError(err)
	s.nav, err = navigator.New(g, navigator.WithLogger(quiet))
	s.Require().NoError(err)
}

func (s *NavigatorSuite) TestNavigateByLift() {
	res, err := s.nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
	s.Require().NoError(err)
	s.NoError(res.Err())

	s.Equal(parser.ParsedInstruction{
		CommandType: parser.Navigate,
		Destination: "3楼302教室",
		Floor:       "3楼",
		RoomNumber:  "302",
		Marker:      "去",
	}, res.Parsed)
	s.Equal("F1-H", res.Start.ID)
	s.Equal("F3-R2", res.Destination.ID)

	s.Equal(dijkstra.Path{"F1-H", "F1-E", "F2-E", "F3-E", "F3-H", "F3-R1", "F3-R2"}, res.Path)
	s.InDelta(28.0, res.Distance, 1e-9)
	s.InDelta(28.0, res.Cost, 1e-9)
	s.Equal([]string{
		"向北走5.0米",
		"乘电梯上到2楼",
		"乘电梯上到3楼",
		"在3楼向南走5.0米",
		"向东走10.0米",
		"到达目的地：3楼302教室",
	}, res.Instructions)

	s.Len(res.Segments, 6)
	s.InDelta(28.0/1.2+2*15, res.EstimatedSeconds, 1e-9)
	for _, lvl := range res.CongestionLevels() {
		s.Equal(congestion.LevelClear, lvl)
	}
}

func (s *NavigatorSuite) TestCongestionPrefersStairs() {
	snap := congestion.MustSnapshot(map[congestion.Pair]float64{
		congestion.MakePair("F1-E", "F2-E"): 0.9,
	})
	res, err := s.nav.ComputeRoute("去三楼302教室", "1楼大厅", snap)
	s.Require().NoError(err)

	s.Equal(dijkstra.Path{"F1-H", "F1-S", "F2-S", "F3-S", "F3-H", "F3-R1", "F3-R2"}, res.Path)
	s.InDelta(44.0, res.Distance, 1e-9)
	s.Equal("走楼梯上到2楼", res.Instructions[1])
	s.Empty(directions.Congested(res.Segments))
}

func (s *NavigatorSuite) TestCongestedRouteStillTaken() {
	// Only one way into the restroom; its congestion shows up in the result.
	snap := congestion.MustSnapshot(map[congestion.Pair]float64{
		congestion.MakePair("F1-R4", "F1-W"): 0.6,
	})
	res, err := s.nav.ComputeRoute("一楼厕所怎么走", "", snap)
	s.Require().NoError(err)
	s.Equal("1楼洗手间", res.Parsed.Destination)
	s.Equal("F1-W", res.Path.End())

	s.Equal(congestion.LevelHeavy, res.CongestionLevels()["F1-R4_F1-W"])
	s.InDelta(25.0, res.Distance, 1e-9)
	s.InDelta(20+5/0.4, res.Cost, 1e-9)
	s.Len(directions.Congested(res.Segments), 1)
}

func (s *NavigatorSuite) TestSearch() {
	res, err := s.nav.ComputeRoute("四楼洗手间在哪里", "", congestion.Snapshot{})
	s.Require().NoError(err)
	s.Equal(parser.Search, res.Parsed.CommandType)
	s.Equal("4楼洗手间", res.Parsed.Destination)
	s.Equal("F4-W", res.Destination.ID)
	s.Equal(4, res.Destination.Floor)
	s.Equal("F4-W", res.Path.End())
	s.Equal("到达目的地：4楼洗手间", res.Instructions[len(res.Instructions)-1])
}

func (s *NavigatorSuite) TestConversationalRequests() {
	cases := []struct {
		text, dest string
		kind       parser.CommandType
	}{
		{"我去3楼302", "F3-R2", parser.Navigate},
		{"能带我去三楼302教室吗", "F3-R2", parser.Navigate},
		{"到三楼302教室去", "F3-R2", parser.Navigate},
		{"3楼洗手间的位置", "F3-W", parser.Search},
		{"我要找四楼洗手间", "F4-W", parser.Search},
		{"你好，去二楼电梯吧", "F2-E", parser.Navigate},
	}
	for _, tc := range cases {
		res, err := s.nav.ComputeRoute(tc.text, "", congestion.Snapshot{})
		s.Require().NoError(err, tc.text)
		s.False(res.NeedsClarification, tc.text)
		s.Equal(tc.kind, res.Parsed.CommandType, tc.text)
		s.Equal(tc.dest, res.Destination.ID, tc.text)
		s.Equal(tc.dest, res.Path.End(), tc.text)
	}
}

func (s *NavigatorSuite) TestStartForms() {
	for _, start := range []string{"F3-R2", "3楼302教室", "三楼302教室"} {
		res, err := s.nav.ComputeRoute("去三楼302教室", start, congestion.Snapshot{})
		s.Require().NoError(err, start)
		s.Equal(dijkstra.Path{"F3-R2"}, res.Path, start)
		s.Equal([]string{"您已在目的地：3楼302教室"}, res.Instructions, start)
		s.Zero(res.EstimatedSeconds)
	}
}

func (s *NavigatorSuite) TestUnparseable() {
	res, err := s.nav.ComputeRoute("你好", "", congestion.Snapshot{})
	s.Require().NoError(err)
	s.True(res.NeedsClarification)
	s.ErrorIs(res.Err(), navigator.ErrUnparseableInstruction)
	s.Empty(res.Path)
	s.Empty(res.Instructions)
}

func (s *NavigatorSuite) TestLocationNotFound() {
	_, err := s.nav.ComputeRoute("去九楼洗手间", "", congestion.Snapshot{})
	s.Require().Error(err)
	s.ErrorIs(err, core.ErrLocationNotFound)

	var lerr *navigator.LocationError
	s.Require().True(errors.As(err, &lerr))
	s.Equal(navigator.RoleDestination, lerr.Role)
	s.Equal("9楼洗手间", lerr.Name)

	_, err = s.nav.ComputeRoute("去三楼302教室", "天台", congestion.Snapshot{})
	s.Require().True(errors.As(err, &lerr))
	s.Equal(navigator.RoleStart, lerr.Role)
	s.Equal("天台", lerr.Name)
}

func (s *NavigatorSuite) TestLocate() {
	n, err := s.nav.Locate("二楼电梯")
	s.Require().NoError(err)
	s.Equal("F2-E", n.ID)

	_, err = s.nav.Locate("")
	s.ErrorIs(err, core.ErrLocationNotFound)
}

func TestNavigatorSuite(t *testing.T) {
	suite.Run(t, new(NavigatorSuite))
}

func TestNew_NilGraph(t *testing.T) {
	_, err := navigator.New(nil)
	assert.ErrorIs(t, err, navigator.ErrNilGraph)
}

func TestNoDefaultStart(t *testing.T) {
	g, err := building.Tower().Build()
	require.NoError(t, err)
	nav, err := navigator.New(g, navigator.WithLogger(quiet), navigator.WithDefaultStart(""))
	require.NoError(t, err)

	_, err = nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
	var lerr *navigator.LocationError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, navigator.RoleStart, lerr.Role)
	assert.Empty(t, lerr.Name)
}

func TestNoPathFound(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", 0, 0, 1))
	require.NoError(t, g.AddNode("B", 10, 0, 2))
	require.NoError(t, g.AddSpecialLocation("1楼大厅", "A"))
	require.NoError(t, g.AddSpecialLocation("2楼办公室", "B"))

	nav, err := navigator.New(g, navigator.WithLogger(quiet))
	require.NoError(t, err)
	_, err = nav.ComputeRoute("去二楼办公室", "", congestion.Snapshot{})
	assert.ErrorIs(t, err, dijkstra.ErrNoPathFound)
}

func TestOptions(t *testing.T) {
	g, err := building.Tower().Build()
	require.NoError(t, err)

	// Hop-count routing ignores the lift's shorter length: the stairs and
	// the lift are both four hops from the lobby to 3楼大厅.
	hops := func(float64, float64) float64 { return 1 }
	nav, err := navigator.New(g,
		navigator.WithLogger(quiet),
		navigator.WithCostFunc(hops),
		navigator.WithPace(directions.NewPace(directions.WithWalkingSpeed(1), directions.WithFloorChangeSeconds(0))),
		navigator.WithParser(parser.New(parser.WithSearchMarkers("哪"))),
	)
	require.NoError(t, err)

	res, err := nav.ComputeRoute("三楼大厅", "", congestion.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Cost)
	assert.Equal(t, res.Distance, res.EstimatedSeconds)

	assert.Panics(t, func() { navigator.WithCostFunc(nil) })
	assert.Panics(t, func() { navigator.WithParser(nil) })
	assert.Panics(t, func() { navigator.WithPace(directions.Pace{}) })
}

func TestSwapAndReload(t *testing.T) {
	g, err := building.Tower(building.WithFloors(1)).Build()
	require.NoError(t, err)
	nav, err := navigator.New(g, navigator.WithLogger(quiet))
	require.NoError(t, err)

	_, err = nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
	require.ErrorIs(t, err, core.ErrLocationNotFound)

	rep, err := nav.Reload(context.Background(), building.Static(building.Tower()))
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Equal(t, "F1-H", rep.Root)

	_, err = nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
	require.NoError(t, err)

	// A failing reload keeps the current graph.
	before := nav.Graph()
	_, err = nav.Reload(context.Background(), building.Static(building.Data{}))
	assert.ErrorIs(t, err, building.ErrNoNodes)
	assert.Same(t, before, nav.Graph())

	assert.ErrorIs(t, nav.Swap(nil), navigator.ErrNilGraph)
	require.NoError(t, nav.Swap(g))
	assert.Same(t, g, nav.Graph())
}

func TestConcurrentRoutingDuringSwap(t *testing.T) {
	small, err := building.Tower().Build()
	require.NoError(t, err)
	large, err := building.Tower(building.WithFloors(6), building.WithRooms(10)).Build()
	require.NoError(t, err)
	nav, err := navigator.New(small, navigator.WithLogger(quiet))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res, err := nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
				if assert.NoError(t, err) {
					assert.Equal(t, "F3-R2", res.Path.End())
				}
			}
		}()
	}
	for j := 0; j < 50; j++ {
		if j%2 == 0 {
			require.NoError(t, nav.Swap(large))
		} else {
			require.NoError(t, nav.Swap(small))
		}
	}
	wg.Wait()
}
