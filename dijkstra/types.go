// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/indoornav/congestion"
)

// Sentinel errors returned by the path finder.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed in.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoPathFound indicates that end is not reachable from start
	// (disconnected components, or every route exceeds MaxCost).
	ErrNoPathFound = errors.New("dijkstra: no path found")

	// ErrBadMaxCost indicates that MaxCost was set to a negative or NaN value.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")

	// ErrBadCost indicates that a CostFunc returned a negative, NaN or
	// infinite cost for an edge.
	ErrBadCost = errors.New("dijkstra: edge cost must be finite and non-negative")
)

// Path is an ordered list of node IDs from start to end inclusive.
// A Path returned without error is never empty, never repeats a node, and
// every consecutive pair is joined by an edge.
type Path []string

// Start returns the first node ID, or "" for an empty path.
func (p Path) Start() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// End returns the last node ID, or "" for an empty path.
func (p Path) End() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Hops returns the number of edges traversed.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Result is a path together with its totals.
type Result struct {
	Path     Path
	Cost     float64 // sum of effective edge costs
	Distance float64 // sum of physical edge distances in meters
}

// CostFunc maps an edge's physical distance and congestion factor to the
// effective cost used for ordering. It must return a finite, non-negative
// value for every distance > 0 and factor in [0, 1).
type CostFunc func(distance, factor float64) float64

// EffectiveCost is the default CostFunc: distance / (1 - factor).
// An uncongested edge costs its distance; cost grows without bound as the
// factor approaches 1.
func EffectiveCost(distance, factor float64) float64 {
	return distance / (1 - factor)
}

// Options configures FindPath and Find.
//
// Congestion – per-request snapshot; the zero Snapshot means no congestion.
// MaxCost    – nodes whose effective cost would exceed this are not explored.
//
//	Must be ≥ 0. Default is +Inf (no cap).
//
// Cost       – edge cost model. Default is EffectiveCost.
type Options struct {
	Congestion congestion.Snapshot
	MaxCost    float64
	Cost       CostFunc
}

// Option represents a functional option for configuring the path finder.
type Option func(*Options)

// WithCongestion routes against the given congestion snapshot.
func WithCongestion(s congestion.Snapshot) Option {
	return func(o *Options) {
		o.Congestion = s
	}
}

// WithMaxCost caps exploration at the given effective cost.
// Panics if c is negative or NaN.
func WithMaxCost(c float64) Option {
	if c < 0 || math.IsNaN(c) {
		panic(ErrBadMaxCost.Error())
	}
	return func(o *Options) {
		o.MaxCost = c
	}
}

// WithCostFunc replaces the edge cost model. A nil fn keeps the default.
func WithCostFunc(fn CostFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Cost = fn
		}
	}
}

// DefaultOptions returns Options with no congestion, no cost cap and the
// EffectiveCost model.
func DefaultOptions() Options {
	return Options{
		MaxCost: math.Inf(1),
		Cost:    EffectiveCost,
	}
}
