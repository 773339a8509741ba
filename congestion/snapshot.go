// SPDX-License-Identifier: MIT

// Package congestion models point-in-time crowding on building edges.
//
// A Snapshot maps unordered node pairs to a congestion factor in [0, 1).
// Snapshots are immutable values supplied per routing request; the graph
// never stores them. Edges missing from a snapshot are uncongested.
//
// Factors outside [0, 1) are rejected with ErrInvalidFactor when a snapshot
// is built. A factor of 1 would mean "impassable", which a building models by
// leaving the edge out instead.
package congestion

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidFactor indicates a congestion factor outside [0, 1) or NaN.
var ErrInvalidFactor = errors.New("congestion: factor must be in [0, 1)")

// ErrEmptyEndpoint indicates a pair with an empty node ID.
var ErrEmptyEndpoint = errors.New("congestion: edge endpoint is empty")

// Pair identifies an unordered pair of node IDs. Use MakePair to build one;
// it stores the lexically smaller ID in A.
type Pair struct {
	A, B string
}

// MakePair returns the canonical Pair for the edge between a and b.
func MakePair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Key returns the "from_to" segment key used in route responses.
func (p Pair) Key() string { return p.A + "_" + p.B }

// Snapshot is an immutable congestion reading. The zero value is an empty
// snapshot in which every edge is uncongested.
type Snapshot struct {
	factors map[Pair]float64
}

// Reading is one edge's congestion factor as supplied by a producer.
type Reading struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Factor float64 `json:"factor"`
}

// NewSnapshot validates and copies factors into a Snapshot. Keys are
// canonicalised, so Pair{"B","A"} and Pair{"A","B"} address the same edge.
// When both orientations of one edge are present, which factor is kept is
// unspecified; supply each edge once.
//
// Returns ErrInvalidFactor for any factor outside [0, 1) and
// ErrEmptyEndpoint for pairs with an empty ID.
func NewSnapshot(factors map[Pair]float64) (Snapshot, error) {
	out := make(map[Pair]float64, len(factors))
	for p, f := range factors {
		if err := checkReading(p.A, p.B, f); err != nil {
			return Snapshot{}, err
		}
		out[MakePair(p.A, p.B)] = f
	}
	return Snapshot{factors: out}, nil
}

// FromReadings builds a Snapshot from a list of readings. A later reading for
// the same edge replaces an earlier one.
func FromReadings(readings []Reading) (Snapshot, error) {
	out := make(map[Pair]float64, len(readings))
	for _, r := range readings {
		if err := checkReading(r.From, r.To, r.Factor); err != nil {
			return Snapshot{}, err
		}
		out[MakePair(r.From, r.To)] = r.Factor
	}
	return Snapshot{factors: out}, nil
}

// MustSnapshot is like NewSnapshot but panics on invalid input.
// It is intended for tests and static fixtures.
func MustSnapshot(factors map[Pair]float64) Snapshot {
	s, err := NewSnapshot(factors)
	if err != nil {
		panic(err)
	}
	return s
}

func checkReading(a, b string, f float64) error {
	if a == "" || b == "" {
		return ErrEmptyEndpoint
	}
	if math.IsNaN(f) || f < 0 || f >= 1 {
		return fmt.Errorf("%w: %s-%s factor=%v", ErrInvalidFactor, a, b, f)
	}
	return nil
}

// Factor returns the congestion factor of the edge between a and b, or 0 if
// the snapshot has no reading for it.
func (s Snapshot) Factor(a, b string) float64 {
	return s.factors[MakePair(a, b)]
}

// Len returns the number of edges with a reading.
func (s Snapshot) Len() int { return len(s.factors) }

// Readings returns the snapshot contents sorted by pair.
func (s Snapshot) Readings() []Reading {
	out := make([]Reading, 0, len(s.factors))
	for p, f := range s.factors {
		out = append(out, Reading{From: p.A, To: p.B, Factor: f})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
