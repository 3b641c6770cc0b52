package search

// Acceptance band around the target bitrate. Fixed, not configurable.
const (
	toleranceLow  = 0.95
	toleranceHigh = 1.05
)

// WithinTolerance reports whether measured falls inside the ±5% band
// around target (inclusive on both edges).
func WithinTolerance(measured, target int64) bool {
	m := float64(measured)
	t := float64(target)
	return m >= toleranceLow*t && m <= toleranceHigh*t
}

// AcceptAsIs implements the pre-check that may skip the engine entirely:
// a source whose own bitrate is already within tolerance, or below target,
// is not worth re-encoding.
func AcceptAsIs(sourceBitrate, target int64) bool {
	return sourceBitrate < target || WithinTolerance(sourceBitrate, target)
}

// Resolution → target bitrate lookup (bps), keyed by vertical resolution.
var targetByHeight = map[int]int64{
	2160: 11_000_000,
	1080: 8_000_000,
	720:  5_000_000,
	480:  2_500_000,
}

// TargetForHeight returns the target bitrate for a vertical resolution.
// Heights not in the lookup table snap to the nearest standard tier, so
// e.g. 1440p sources share the 1080p target and anything under 600 lines
// gets the 480p floor.
func TargetForHeight(height int) int64 {
	if t, ok := targetByHeight[height]; ok {
		return t
	}
	switch {
	case height >= 1700:
		return targetByHeight[2160]
	case height >= 900:
		return targetByHeight[1080]
	case height >= 600:
		return targetByHeight[720]
	default:
		return targetByHeight[480]
	}
}
