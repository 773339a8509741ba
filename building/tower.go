// SPDX-License-Identifier: MIT

package building

import (
	"fmt"
)

// Tower defaults.
const (
	DefaultTowerFloors  = 3
	DefaultTowerRooms   = 4
	DefaultTowerSpacing = 5.0  // meters between neighbouring rooms
	DefaultStairLength  = 12.0 // meters of stairs per storey
	DefaultLiftLength   = 4.0  // lift cost per storey, as an equivalent walk

	maxTowerRooms = 99
)

// TowerOption customizes Tower.
type TowerOption func(*towerConfig)

type towerConfig struct {
	floors  int
	rooms   int
	spacing float64
	stair   float64
	lift    float64
}

// WithFloors sets the number of storeys. Panics if n < 1.
func WithFloors(n int) TowerOption {
	if n < 1 {
		panic(fmt.Sprintf("building: WithFloors(%d): need at least one floor", n))
	}
	return func(c *towerConfig) { c.floors = n }
}

// WithRooms sets the number of classrooms per floor. Panics unless
// 1 <= n <= 99, so room numbers stay <floor><two digits>.
func WithRooms(n int) TowerOption {
	if n < 1 || n > maxTowerRooms {
		panic(fmt.Sprintf("building: WithRooms(%d): want 1..%d", n, maxTowerRooms))
	}
	return func(c *towerConfig) { c.rooms = n }
}

// WithSpacing sets the corridor distance between rooms. Panics if d <= 0.
func WithSpacing(d float64) TowerOption {
	if !(d > 0) {
		panic(fmt.Sprintf("building: WithSpacing(%v): must be positive", d))
	}
	return func(c *towerConfig) { c.spacing = d }
}

// WithVertical sets the per-storey length of the stairs and the lift.
// Panics unless both are positive.
func WithVertical(stair, lift float64) TowerOption {
	if !(stair > 0) || !(lift > 0) {
		panic(fmt.Sprintf("building: WithVertical(%v, %v): must be positive", stair, lift))
	}
	return func(c *towerConfig) { c.stair, c.lift = stair, lift }
}

// Tower generates a regular teaching building for demos, tests and
// benchmarks.
//
// Every floor f has, west to east along y = 0:
//
//	F<f>-S  stairwell  "<f>楼楼梯"
//	F<f>-H  lobby      "<f>楼大厅"          (floor 1 also "入口")
//	F<f>-R<k>  rooms   "<f>楼<f><kk>教室"   k = 1..rooms
//	F<f>-W  restroom   "<f>楼洗手间"
//
// plus a lift F<f>-E "<f>楼电梯" north of the lobby. Stairwells and lifts
// link adjacent floors.
//
// Determinism: IDs and edge order depend only on the options.
// Complexity: O(floors * rooms).
func Tower(opts ...TowerOption) Data {
	cfg := towerConfig{
		floors:  DefaultTowerFloors,
		rooms:   DefaultTowerRooms,
		spacing: DefaultTowerSpacing,
		stair:   DefaultStairLength,
		lift:    DefaultLiftLength,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := Data{Name: fmt.Sprintf("tower-%dx%d", cfg.floors, cfg.rooms)}
	sp := cfg.spacing

	for f := 1; f <= cfg.floors; f++ {
		// 1) Nodes of the floor, west to east.
		d.Nodes = append(d.Nodes,
			NodeSpec{ID: towerID(f, "S"), X: 0, Y: 0, Floor: f, Aliases: []string{fmt.Sprintf("%d楼楼梯", f)}},
			NodeSpec{ID: towerID(f, "H"), X: sp, Y: 0, Floor: f, Aliases: lobbyAliases(f)},
			NodeSpec{ID: towerID(f, "E"), X: sp, Y: sp, Floor: f, Aliases: []string{fmt.Sprintf("%d楼电梯", f)}},
		)
		for k := 1; k <= cfg.rooms; k++ {
			d.Nodes = append(d.Nodes, NodeSpec{
				ID:      towerRoomID(f, k),
				X:       sp * float64(k+1),
				Y:       0,
				Floor:   f,
				Aliases: []string{fmt.Sprintf("%d楼%d%02d教室", f, f, k)},
			})
		}
		d.Nodes = append(d.Nodes, NodeSpec{
			ID:      towerID(f, "W"),
			X:       sp * float64(cfg.rooms+2),
			Y:       0,
			Floor:   f,
			Aliases: []string{fmt.Sprintf("%d楼洗手间", f)},
		})

		// 2) Corridor: stairs - lobby - rooms - restroom, and lobby - lift.
		prev := towerID(f, "H")
		d.Edges = append(d.Edges,
			EdgeSpec{From: towerID(f, "S"), To: prev},
			EdgeSpec{From: prev, To: towerID(f, "E")},
		)
		for k := 1; k <= cfg.rooms; k++ {
			d.Edges = append(d.Edges, EdgeSpec{From: prev, To: towerRoomID(f, k)})
			prev = towerRoomID(f, k)
		}
		d.Edges = append(d.Edges, EdgeSpec{From: prev, To: towerID(f, "W")})

		// 3) Vertical links to the floor below.
		if f > 1 {
			d.Edges = append(d.Edges,
				EdgeSpec{From: towerID(f-1, "S"), To: towerID(f, "S"), Distance: cfg.stair},
				EdgeSpec{From: towerID(f-1, "E"), To: towerID(f, "E"), Distance: cfg.lift},
			)
		}
	}
	return d
}

func towerID(floor int, kind string) string { return fmt.Sprintf("F%d-%s", floor, kind) }

func towerRoomID(floor, k int) string { return fmt.Sprintf("F%d-R%d", floor, k) }

func lobbyAliases(f int) []string {
	names := []string{fmt.Sprintf("%d楼大厅", f)}
	if f == 1 {
		names = append(names, "入口")
	}
	return names
}
