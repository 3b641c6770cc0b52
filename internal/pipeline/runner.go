package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/ratemaster/internal/config"
	"github.com/backmassage/ratemaster/internal/display"
	"github.com/backmassage/ratemaster/internal/encoder"
	"github.com/backmassage/ratemaster/internal/logging"
	"github.com/backmassage/ratemaster/internal/naming"
	"github.com/backmassage/ratemaster/internal/probe"
	"github.com/backmassage/ratemaster/internal/search"
)

const minFileSize = 1000

// Run is the top-level batch entry point. It discovers files, processes
// each one sequentially, and returns aggregate stats. A cancelled context
// stops between files; the file in flight finishes or fails on its own.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}

	stats.Total = len(files)
	logBatchHeader(cfg, log, &stats)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(ctx, cfg, log, path, &stats)
	}

	logSummary(cfg, log, &stats)
	return stats
}

// processFile handles one media file: validate, probe, resolve target,
// pre-check, search, refine, move into place.
func processFile(ctx context.Context, cfg *config.Config, log *logging.Logger, path string, stats *RunStats) {
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		log.Error("File not found: %s", path)
		stats.Failed++
		fmt.Println()
		return
	}
	if fi.Size() < minFileSize {
		log.Error("File too small (possibly corrupt): %s", path)
		stats.Failed++
		fmt.Println()
		return
	}

	// --- Probe (single JSON call per file) ---
	pr, err := probe.Probe(ctx, path)
	if err != nil {
		log.Error("Cannot probe file (possibly corrupt): %v", err)
		stats.Failed++
		fmt.Println()
		return
	}
	if pr.PrimaryVideo == nil {
		log.Warn("No video stream found, skipping")
		stats.Skipped++
		fmt.Println()
		return
	}

	duration := pr.Format.Duration
	if duration <= 0 {
		log.Error("Cannot determine duration: %s", basename)
		stats.Failed++
		fmt.Println()
		return
	}

	// --- Resolve target bitrate ---
	target := cfg.TargetBitrate
	if target <= 0 {
		target = search.TargetForHeight(pr.Height())
	}
	if target <= 0 {
		log.Error("Cannot resolve target bitrate for height %d", pr.Height())
		stats.Failed++
		fmt.Println()
		return
	}

	if cfg.ShowFileStats {
		logFileStats(log, pr, target)
	}

	sourceBitrate := pr.OverallBitRate()

	// --- Pre-check: keep sources already at or below target ---
	if sourceBitrate > 0 && search.AcceptAsIs(sourceBitrate, target) {
		keepOriginal(cfg, log, path, fi.Size(), stats)
		return
	}

	// --- Resolve output path and skip-existing ---
	marker := naming.MarkerFFmpeg
	if cfg.EncoderMode == config.EncoderHandBrake {
		marker = naming.MarkerHandBrake
	}
	outputPath := naming.OutputPath(path, cfg.InputDir, cfg.OutputDir, marker, string(cfg.OutputContainer))

	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(outputPath))
			stats.Skipped++
			fmt.Println()
			return
		}
	}

	log.Info("Encoding: %s", basename)
	log.Info("  -> %s", filepath.Base(outputPath))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would search for quality targeting %s", display.FormatBitrate(target))
		stats.Encoded++
		fmt.Println()
		return
	}

	// --- Work dir for sample clips and refinement passes ---
	workDir, err := os.MkdirTemp("", "ratemaster-")
	if err != nil {
		log.Error("Cannot create work directory: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}
	defer os.RemoveAll(workDir)

	enc := encoder.New(cfg, workDir)
	var meas encoder.Measurer

	start := time.Now()

	// --- Sample search ---
	searchRes, err := search.Run(ctx, search.Config{
		Path:     path,
		Duration: duration,
		Target:   target,
		Encoder:  enc,
		Measurer: meas,
		Iterate: func(quality int, bitrate int64) {
			log.Search("  q=%d -> %s (%s)",
				quality, display.FormatBitrate(bitrate), display.FormatDeviation(bitrate, target))
		},
	})
	if err != nil {
		log.Error("Quality search failed: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}

	switch searchRes.Outcome {
	case search.BoundReached:
		log.Warn("  Search pinned at q=%d (%s after %d iterations), proceeding best-effort",
			searchRes.Quality, searchRes.Outcome, searchRes.Iterations)
	default:
		log.Search("  Search %s at q=%d after %d iterations",
			searchRes.Outcome, searchRes.Quality, searchRes.Iterations)
	}

	// --- Full-file refinement ---
	refineRes, err := search.Refine(ctx, search.RefineConfig{
		Path:     path,
		Duration: duration,
		Target:   target,
		Quality:  searchRes.Quality,
		Encoder:  enc,
		Measurer: meas,
		Pass: func(rec search.PassRecord, accepted bool) {
			note := ""
			if accepted {
				note = " [accepted]"
			}
			log.Search("  Pass %d: q=%d -> %s (%s)%s",
				rec.Pass, rec.Quality, display.FormatBitrate(rec.Bitrate),
				display.FormatDeviation(rec.Bitrate, target), note)
		},
	})
	if err != nil {
		log.Error("Refinement failed: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}

	if err := moveFile(refineRes.Final.Output, outputPath); err != nil {
		log.Error("Cannot move output into place: %v", err)
		os.Remove(outputPath)
		stats.Failed++
		fmt.Println()
		return
	}

	// --- Update stats ---
	elapsed := time.Since(start)
	inSize := fi.Size()
	var outSize int64
	if outInfo, err := os.Stat(outputPath); err == nil {
		outSize = outInfo.Size()
	}

	ratio := int64(100)
	if inSize > 0 {
		ratio = outSize * 100 / inSize
	}

	stats.TotalInputBytes += inSize
	stats.TotalOutputBytes += outSize
	stats.Encoded++

	log.Success("Encoded in %ds at q=%d, %s (%s of target, %d%% of original)",
		int(elapsed.Seconds()), refineRes.Final.Quality,
		display.FormatBitrate(refineRes.Final.Bitrate),
		display.FormatDeviation(refineRes.Final.Bitrate, target), ratio)
	fmt.Println()
}

// keepOriginal copies a source that already satisfies the target to the
// output tree with the .orig. marker.
func keepOriginal(cfg *config.Config, log *logging.Logger, path string, size int64, stats *RunStats) {
	outputPath := naming.OutputPath(path, cfg.InputDir, cfg.OutputDir, naming.MarkerOriginal, string(cfg.OutputContainer))

	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(outputPath))
			stats.Skipped++
			fmt.Println()
			return
		}
	}

	log.Info("Source already at or below target, keeping original")
	log.Info("  -> %s", filepath.Base(outputPath))

	if cfg.DryRun {
		log.Success("[DRY] Would copy original")
		stats.Kept++
		fmt.Println()
		return
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}
	if err := copyFile(path, outputPath); err != nil {
		log.Error("Copy failed: %v", err)
		os.Remove(outputPath)
		stats.Failed++
		fmt.Println()
		return
	}

	stats.TotalInputBytes += size
	stats.TotalOutputBytes += size
	stats.Kept++
	log.Success("Kept original (%s)", display.FormatBytes(size))
	fmt.Println()
}

// moveFile renames src to dst, falling back to copy+remove when the rename
// crosses filesystems (the work dir usually lives on a different mount
// than the output tree).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files", stats.Total)

	backend := "ffmpeg (hevc_videotoolbox)"
	if cfg.EncoderMode == config.EncoderHandBrake {
		backend = "HandBrakeCLI (vt_h265)"
	}
	log.Info("Mode: %s", backend)
	log.Info("Container: %s", string(cfg.OutputContainer))

	if cfg.TargetBitrate > 0 {
		log.Info("Target: %s (fixed override, tolerance 5%%)", display.FormatBitrate(cfg.TargetBitrate))
	} else {
		log.Info("Target: by resolution (2160p 11 Mbps, 1080p 8 Mbps, 720p 5 Mbps, 480p 2.5 Mbps), tolerance 5%%")
	}

	if cfg.DryRun {
		log.Info("Dry run: no files will be written")
	}
	if !cfg.SkipExisting {
		log.Info("Force: existing outputs will be overwritten")
	}
	fmt.Println()
}

func logFileStats(log *logging.Logger, pr *probe.ProbeResult, target int64) {
	v := pr.PrimaryVideo
	if v == nil {
		return
	}
	codec := v.Codec
	if codec == "" {
		codec = "unknown"
	}
	bitrate := "unknown"
	if br := pr.OverallBitRate(); br > 0 {
		bitrate = display.FormatBitrate(br)
	}
	log.Info("  Video: %s | %s | %s | target %s",
		pr.Resolution(), bitrate, codec, display.FormatBitrate(target))
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d encoded, %d kept, %d skipped, %d failed",
		stats.Encoded, stats.Kept, stats.Skipped, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Total files processed: %d", stats.Current)

	if cfg.DryRun {
		log.Info("  Total space saved: n/a (dry run)")
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("  Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("  Total space saved: -%s (overall output is larger)",
			display.FormatBytes(-saved))
	}
}
