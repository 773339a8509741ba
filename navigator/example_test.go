package navigator_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/navigator"
)

func ExampleNavigator_ComputeRoute() {
	g, _ := building.Tower().Build()
	nav, _ := navigator.New(g, navigator.WithLogger(slog.New(slog.DiscardHandler)))

	res, err := nav.ComputeRoute("请带我去三楼302教室", "", congestion.Snapshot{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Parsed.CommandType, res.Parsed.Destination)
	for _, step := range res.Instructions {
		fmt.Println(step)
	}
	fmt.Printf("%.0f m, about %.0f s\n", res.Distance, res.EstimatedSeconds)
	// Output:
	// navigate 3楼302教室
	// 向北走5.0米
	// 乘电梯上到2楼
	// 乘电梯上到3楼
	// 在3楼向南走5.0米
	// 向东走10.0米
	// 到达目的地：3楼302教室
	// 28 m, about 53 s
}

func BenchmarkComputeRoute(b *testing.B) {
	g, err := building.Tower(building.WithFloors(10), building.WithRooms(40)).Build()
	if err != nil {
		b.Fatal(err)
	}
	nav, _ := navigator.New(g, navigator.WithLogger(slog.New(slog.DiscardHandler)))
	snap := congestion.MustSnapshot(map[congestion.Pair]float64{
		congestion.MakePair("F1-E", "F2-E"): 0.7,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := nav.ComputeRoute("去九楼935教室", "1楼洗手间", snap); err != nil {
			b.Fatal(err)
		}
	}
}
