// SPDX-License-Identifier: MIT

package congestion

// Level is a human-facing congestion label shown next to route segments.
type Level string

// Congestion levels, from free-flowing to near-saturated.
const (
	LevelClear  Level = "通畅"
	LevelLight  Level = "轻微拥堵"
	LevelHeavy  Level = "拥堵"
	LevelSevere Level = "严重拥堵"
)

// Lower bounds of each level above LevelClear.
const (
	lightFactor  = 0.3
	heavyFactor  = 0.5
	severeFactor = 0.8
)

// LevelOf classifies a congestion factor.
//
//	[0, 0.3)  通畅
//	[0.3, 0.5) 轻微拥堵
//	[0.5, 0.8) 拥堵
//	[0.8, 1)  严重拥堵
func LevelOf(factor float64) Level {
	switch {
	case factor >= severeFactor:
		return LevelSevere
	case factor >= heavyFactor:
		return LevelHeavy
	case factor >= lightFactor:
		return LevelLight
	default:
		return LevelClear
	}
}

// Congested reports whether the level should trigger a rerouting notice.
func (l Level) Congested() bool {
	return l == LevelHeavy || l == LevelSevere
}
