package search

// Observation is one completed search iteration: the quality value that
// was sampled and the bitrate it produced.
type Observation struct {
	Quality int
	Bitrate int64
}

// History is the append-only evaluation record for one search run. It is
// consumed by cycle detection and discarded when the file's processing
// ends.
type History struct {
	obs []Observation
}

// Append records one (quality, bitrate) observation.
func (h *History) Append(quality int, bitrate int64) {
	h.obs = append(h.obs, Observation{Quality: quality, Bitrate: bitrate})
}

// Len returns the number of recorded observations.
func (h *History) Len() int { return len(h.obs) }

// DetectCycle checks whether the most recent observation closes a 2- or
// 3-value quality cycle. The proportional controller can bounce between
// adjacent quality levels forever when the tolerance band sits exactly
// between two attainable bitrates; cycle detection is what guarantees the
// loop still terminates.
//
// On detection it returns the cycle member whose bitrate deviates least
// from target, and true.
func (h *History) DetectCycle(target int64) (int, bool) {
	n := len(h.obs)

	// 2-cycle: current quality equals the quality two steps earlier.
	if n >= 3 && h.obs[n-1].Quality == h.obs[n-3].Quality {
		return h.closest(target, h.obs[n-1], h.obs[n-2]), true
	}

	// 3-cycle: the last triple repeats the previous triple.
	if n >= 6 &&
		h.obs[n-1].Quality == h.obs[n-4].Quality &&
		h.obs[n-2].Quality == h.obs[n-5].Quality &&
		h.obs[n-3].Quality == h.obs[n-6].Quality {
		return h.closest(target, h.obs[n-1], h.obs[n-2], h.obs[n-3]), true
	}

	return 0, false
}

// closest picks the candidate whose bitrate has the smallest absolute
// deviation from target. Earlier candidates win ties, so the most recent
// observation is preferred when deviations are equal.
func (h *History) closest(target int64, candidates ...Observation) int {
	best := candidates[0]
	bestDev := absDelta(best.Bitrate, target)
	for _, c := range candidates[1:] {
		if dev := absDelta(c.Bitrate, target); dev < bestDev {
			best, bestDev = c, dev
		}
	}
	return best.Quality
}

func absDelta(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
