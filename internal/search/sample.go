package search

// SampleSpec describes one short excerpt of the source video that is
// encoded and measured to estimate full-file bitrate cheaply.
type SampleSpec struct {
	Start    float64 // seconds from the beginning of the file
	Duration float64 // seconds
}

// sampleDuration is the fixed window length used once a file is long
// enough to sample instead of encoding whole.
const sampleDuration = 60.0

// PlanSamples returns the sample windows for a video of duration d seconds.
// Files under two minutes are sampled whole; two-to-three-minute files get
// a window at each end; anything longer gets three windows spread across
// the runtime, with the last one capped so it never runs past the end.
// Total over any d >= 0.
func PlanSamples(d float64) []SampleSpec {
	switch {
	case d < 120:
		return []SampleSpec{{Start: 0, Duration: d}}
	case d < 180:
		return []SampleSpec{
			{Start: 0, Duration: sampleDuration},
			{Start: d - sampleDuration, Duration: sampleDuration},
		}
	}

	last := 0.9 * d
	if maxStart := d - sampleDuration; last > maxStart {
		last = maxStart
	}
	return []SampleSpec{
		{Start: 0.1 * d, Duration: sampleDuration},
		{Start: 0.5 * d, Duration: sampleDuration},
		{Start: last, Duration: sampleDuration},
	}
}
