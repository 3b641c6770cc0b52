package search

import (
	"context"
	"fmt"
)

// PassRecord captures one full-file encode attempt during refinement.
type PassRecord struct {
	Pass    int // 1, 2, or 3
	Quality int
	Bitrate int64  // measured full-file bitrate
	Output  string // path of the encoded file
}

// RefineConfig carries one file's multi-pass refinement inputs.
type RefineConfig struct {
	Path     string
	Duration float64
	Target   int64
	Quality  int // starting quality, from the sample search

	Encoder  FullEncoder
	Measurer Measurer

	// Pass, when non-nil, is called after each completed pass. accepted is
	// true when that pass's output is the final result.
	Pass func(rec PassRecord, accepted bool)
}

// RefineResult is the outcome of the refinement sequence. Final is always
// the last entry of Passes; intermediate pass outputs are left on disk for
// the caller (the orchestrator owns cleanup).
type RefineResult struct {
	Passes []PassRecord
	Final  PassRecord
}

// Refine runs up to three full-file encode passes:
//
//	pass 1: the sample search's quality; accepted if within tolerance
//	pass 2: one proportional correction; accepted if within tolerance
//	pass 3: linear interpolation through the two prior passes; accepted
//	        unconditionally, no re-check
//
// Every encode is synchronous and unretried; a failure aborts the current
// file's refinement.
func Refine(ctx context.Context, cfg RefineConfig) (RefineResult, error) {
	var res RefineResult

	runPass := func(pass, quality int) (PassRecord, error) {
		out, err := cfg.Encoder.EncodeFull(ctx, cfg.Path, quality)
		if err != nil {
			return PassRecord{}, fmt.Errorf("pass %d encode at q=%d: %w", pass, quality, err)
		}
		bitrate, err := cfg.Measurer.MeasureBitrate(ctx, out, cfg.Duration)
		if err != nil {
			return PassRecord{}, fmt.Errorf("pass %d measure: %w", pass, err)
		}
		rec := PassRecord{Pass: pass, Quality: quality, Bitrate: bitrate, Output: out}
		res.Passes = append(res.Passes, rec)
		return rec, nil
	}

	notify := func(rec PassRecord, accepted bool) {
		if cfg.Pass != nil {
			cfg.Pass(rec, accepted)
		}
	}

	p1, err := runPass(1, cfg.Quality)
	if err != nil {
		return res, err
	}
	if WithinTolerance(p1.Bitrate, cfg.Target) {
		notify(p1, true)
		res.Final = p1
		return res, nil
	}
	notify(p1, false)

	p2, err := runPass(2, NextQuality(p1.Quality, p1.Bitrate, cfg.Target))
	if err != nil {
		return res, err
	}
	if WithinTolerance(p2.Bitrate, cfg.Target) {
		notify(p2, true)
		res.Final = p2
		return res, nil
	}
	notify(p2, false)

	p3, err := runPass(3, Interpolate(p1.Quality, p1.Bitrate, p2.Quality, p2.Bitrate, cfg.Target))
	if err != nil {
		return res, err
	}
	notify(p3, true)
	res.Final = p3
	return res, nil
}
