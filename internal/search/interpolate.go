package search

import "math"

// degenerateSpread: when the two pass bitrates differ by less than 1% of
// target, the interpolation denominator is statistically meaningless and
// the midpoint is used instead.
const degenerateSpread = 0.01

// Interpolate fits a line through two (quality, bitrate) observations and
// solves for the quality expected to land on target. The formula is
// order-independent: it holds whether b1 > b2 or b1 < b2. The result is
// clamped to the valid quality range even when the solve extrapolates
// outside it.
func Interpolate(q1 int, b1 int64, q2 int, b2 int64, target int64) int {
	if math.Abs(float64(b1-b2)) < degenerateSpread*float64(target) {
		mid := roundHalfAway(float64(q1+q2) / 2)
		return Clamp(mid, QualityMin, QualityMax)
	}

	q := float64(q2) + float64(q1-q2)*float64(target-b2)/float64(b1-b2)
	return Clamp(roundHalfAway(q), QualityMin, QualityMax)
}
