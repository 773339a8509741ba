// SPDX-License-Identifier: MIT

package directions

import (
	"fmt"

	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
)

// Segment is one traversed edge annotated with its congestion.
type Segment struct {
	From            string           `json:"start_node_id"`
	To              string           `json:"end_node_id"`
	Distance        float64          `json:"distance"`
	Factor          float64          `json:"congestion_factor"`
	Level           congestion.Level `json:"congestion_level"`
	FloorTransition bool             `json:"floor_transition"`
}

// Key returns the "from_to" identifier of the segment in travel order.
func (s Segment) Key() string { return s.From + "_" + s.To }

// Segments annotates each edge of path with its congestion in snap.
// A single-node path has no segments.
func Segments(path []string, g *core.Graph, snap congestion.Snapshot) ([]Segment, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	out := make([]Segment, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.EdgeBetween(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: %s-%s", ErrNotAdjacent, path[i], path[i+1])
		}
		f := snap.Factor(path[i], path[i+1])
		out = append(out, Segment{
			From:            path[i],
			To:              path[i+1],
			Distance:        e.Distance,
			Factor:          f,
			Level:           congestion.LevelOf(f),
			FloorTransition: e.FloorTransition,
		})
	}
	return out, nil
}

// Levels maps each segment key to its congestion level.
func Levels(segs []Segment) map[string]congestion.Level {
	out := make(map[string]congestion.Level, len(segs))
	for _, s := range segs {
		out[s.Key()] = s.Level
	}
	return out
}

// Congested returns the segments whose level warrants a rerouting notice.
func Congested(segs []Segment) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Level.Congested() {
			out = append(out, s)
		}
	}
	return out
}

// Pace converts distance and congestion into walking time.
type Pace struct {
	// WalkingSpeed is the free-flow speed in meters per second.
	WalkingSpeed float64
	// FloorChangeSeconds is the fixed overhead per floor transition.
	FloorChangeSeconds float64
}

// PaceOption configures a Pace.
type PaceOption func(*Pace)

// WithWalkingSpeed sets the free-flow walking speed. Panics if v <= 0.
func WithWalkingSpeed(v float64) PaceOption {
	if !(v > 0) {
		panic("directions: walking speed must be positive")
	}
	return func(p *Pace) { p.WalkingSpeed = v }
}

// WithFloorChangeSeconds sets the per-transition overhead. Panics if s < 0.
func WithFloorChangeSeconds(s float64) PaceOption {
	if !(s >= 0) {
		panic("directions: floor change overhead must be non-negative")
	}
	return func(p *Pace) { p.FloorChangeSeconds = s }
}

// DefaultPace is 1.2 m/s with 15 s per floor change.
func DefaultPace() Pace {
	return Pace{WalkingSpeed: 1.2, FloorChangeSeconds: 15}
}

// NewPace returns DefaultPace with opts applied.
func NewPace(opts ...PaceOption) Pace {
	p := DefaultPace()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Estimate returns the walking time for segs in seconds. Congestion slows
// each segment by 1/(1-factor).
func (p Pace) Estimate(segs []Segment) float64 {
	var total float64
	for _, s := range segs {
		total += s.Distance / (1 - s.Factor) / p.WalkingSpeed
		if s.FloorTransition {
			total += p.FloorChangeSeconds
		}
	}
	return total
}
