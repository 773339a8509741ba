// SPDX-License-Identifier: MIT

package navigator

import (
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dijkstra"
	"github.com/katalvlaran/indoornav/directions"
	"github.com/katalvlaran/indoornav/parser"
)

// Result is the outcome of one ComputeRoute call.
type Result struct {
	Parsed parser.ParsedInstruction `json:"parsed"`

	// NeedsClarification is set when the text named no location. All
	// routing fields are then empty.
	NeedsClarification bool `json:"needs_clarification"`

	Start       core.Node `json:"start"`
	Destination core.Node `json:"destination"`

	Path         dijkstra.Path `json:"path"`
	Instructions []string      `json:"instructions"`

	// Cost is the congestion-weighted length; Distance the physical one.
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`

	EstimatedSeconds float64              `json:"estimated_seconds"`
	Segments         []directions.Segment `json:"segments"`
}

// Err returns ErrUnparseableInstruction for a clarification result.
func (r *Result) Err() error {
	if r.NeedsClarification {
		return ErrUnparseableInstruction
	}
	return nil
}

// CongestionLevels maps each traversed "from_to" segment to its level.
func (r *Result) CongestionLevels() map[string]congestion.Level {
	return directions.Levels(r.Segments)
}
