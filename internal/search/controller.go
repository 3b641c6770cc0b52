package search

import "math"

// Quality clamp range for the encoder's constant-quality knob.
const (
	QualityMin = 0
	QualityMax = 100
)

// Proportional step bounds. The step grows with how far the measured
// bitrate is from target, from minStep (on target) up to maxStep (off by
// 100% or more).
const (
	minStep = 1
	maxStep = 10
)

// NextQuality computes the next quality value from a measured bitrate and
// the target. The adjustment scales with the measured/target ratio, capped
// at maxStep in either direction.
//
// A measurement exactly on target still steps down by minStep, so ties
// settle slightly under target rather than over. A zero target is treated
// as maximal overshoot instead of failing.
func NextQuality(quality int, measured, target int64) int {
	if target <= 0 {
		return Clamp(quality-maxStep, QualityMin, QualityMax)
	}

	ratio := float64(measured) / float64(target)

	var next int
	if ratio < 1 {
		// Too low: raise quality. distance is unbounded above (ratio can
		// approach 0) so it is capped before scaling.
		distance := 1 - ratio
		if distance > 1 {
			distance = 1
		}
		next = quality + roundHalfAway(minStep+(maxStep-minStep)*distance)
	} else {
		// Too high or exact: lower quality.
		distance := ratio - 1
		if distance > 1 {
			distance = 1
		}
		next = quality - roundHalfAway(minStep+(maxStep-minStep)*distance)
	}

	return Clamp(next, QualityMin, QualityMax)
}

// roundHalfAway rounds to the nearest integer with ties away from zero.
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
