// SPDX-License-Identifier: MIT

package directions

import (
	"math"

	"github.com/katalvlaran/indoornav/core"
)

// Bearing is an 8-point compass direction. East is +X, north is +Y.
type Bearing int

// Compass points, counter-clockwise from east. BearingNone marks a zero
// displacement.
const (
	East Bearing = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
	BearingNone Bearing = -1
)

var bearingNames = [...]string{"东", "东北", "北", "西北", "西", "西南", "南", "东南"}

// String returns the Chinese compass name, or "" for BearingNone.
func (b Bearing) String() string {
	if b < 0 || int(b) >= len(bearingNames) {
		return ""
	}
	return bearingNames[b]
}

// minDisplacement is the planar distance below which two nodes are treated
// as coincident.
const minDisplacement = 1e-9

// BearingOf returns the compass direction from a to b, rounding the true
// angle to the nearest 45°.
func BearingOf(a, b core.Node) Bearing {
	dx, dy := b.X-a.X, b.Y-a.Y
	if math.Hypot(dx, dy) < minDisplacement {
		return BearingNone
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	sector := int(math.Round(deg / 45))
	return Bearing(((sector % 8) + 8) % 8)
}
