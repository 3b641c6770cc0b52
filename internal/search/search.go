package search

import (
	"context"
	"fmt"
)

// SampleEncoder encodes a short excerpt of a source file at a quality
// value and returns the path of the temporary output file.
type SampleEncoder interface {
	EncodeSample(ctx context.Context, path string, start, duration float64, quality int) (string, error)
}

// FullEncoder encodes the whole source file at a quality value and
// returns the path of the output file.
type FullEncoder interface {
	EncodeFull(ctx context.Context, path string, quality int) (string, error)
}

// Measurer reports the bitrate of an encoded file in bits/second.
// duration is a hint for the size-based fallback when stream metadata is
// missing.
type Measurer interface {
	MeasureBitrate(ctx context.Context, path string, duration float64) (int64, error)
}

// Outcome identifies how the sample search terminated.
type Outcome int

const (
	// Converged: the averaged sample bitrate landed inside the tolerance band.
	Converged Outcome = iota
	// Oscillated: a quality cycle was detected and its best member chosen.
	Oscillated
	// BoundReached: quality pinned at 0 or 100 with the target still out of
	// reach. Terminal best-effort result, not an error.
	BoundReached
)

// String returns a short label for logging.
func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case Oscillated:
		return "oscillated"
	case BoundReached:
		return "bound reached"
	}
	return "unknown"
}

// initialQuality seeds the search in the middle of the usable range.
const initialQuality = 60

// Config carries everything one sample search needs. All state is scoped
// to a single file's run; nothing is shared across files.
type Config struct {
	Path     string  // source file
	Duration float64 // source duration in seconds
	Target   int64   // target bitrate in bps

	Encoder  SampleEncoder
	Measurer Measurer

	// Iterate, when non-nil, is called after each measured iteration with
	// the quality that was sampled and the averaged bitrate it produced.
	Iterate func(quality int, bitrate int64)
}

// Result is the terminal state of a sample search.
type Result struct {
	Quality    int
	Outcome    Outcome
	Iterations int
}

// Run drives the sample search loop: encode every sample window at the
// current quality, average the measured bitrates, and either accept the
// quality, follow the proportional controller, or stop on an oscillation
// or bound pin. There is no iteration cap; convergence, oscillation, and
// bound-reach are the only exits, and the bound check is what prevents an
// infinite loop when the target is unreachable within [0,100].
func Run(ctx context.Context, cfg Config) (Result, error) {
	samples := PlanSamples(cfg.Duration)
	quality := initialQuality

	var hist History
	var iterations int

	for {
		avg, err := measureSamples(ctx, &cfg, samples, quality)
		if err != nil {
			return Result{}, err
		}
		iterations++
		if cfg.Iterate != nil {
			cfg.Iterate(quality, avg)
		}

		if WithinTolerance(avg, cfg.Target) {
			return Result{Quality: quality, Outcome: Converged, Iterations: iterations}, nil
		}

		next := NextQuality(quality, avg, cfg.Target)

		hist.Append(quality, avg)
		if best, ok := hist.DetectCycle(cfg.Target); ok {
			return Result{Quality: best, Outcome: Oscillated, Iterations: iterations}, nil
		}

		if next == quality && (quality == QualityMin || quality == QualityMax) {
			return Result{Quality: quality, Outcome: BoundReached, Iterations: iterations}, nil
		}

		quality = next
	}
}

// measureSamples encodes every sample window at quality and returns the
// average measured bitrate. Encodes run one at a time; each failure aborts
// the whole iteration and is surfaced once, unretried.
func measureSamples(ctx context.Context, cfg *Config, samples []SampleSpec, quality int) (int64, error) {
	var total int64
	for _, s := range samples {
		out, err := cfg.Encoder.EncodeSample(ctx, cfg.Path, s.Start, s.Duration, quality)
		if err != nil {
			return 0, fmt.Errorf("sample encode at q=%d (start %.1fs): %w", quality, s.Start, err)
		}
		bitrate, err := cfg.Measurer.MeasureBitrate(ctx, out, s.Duration)
		if err != nil {
			return 0, fmt.Errorf("measure sample at q=%d: %w", quality, err)
		}
		total += bitrate
	}
	return total / int64(len(samples)), nil
}
