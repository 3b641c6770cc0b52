package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/ratemaster/internal/config"
	"github.com/backmassage/ratemaster/internal/display"
	"github.com/backmassage/ratemaster/internal/logging"
	"github.com/backmassage/ratemaster/internal/probe"
	"github.com/backmassage/ratemaster/internal/search"
	"github.com/backmassage/ratemaster/internal/term"
)

// fileRow holds the probed per-file data for the analysis table.
type fileRow struct {
	Name    string
	Res     string
	Codec   string
	Bitrate int64 // bps
	Target  int64 // bps
}

// fit classifies a source against its target band: sources within the
// tolerance band or below target would be kept as-is, the rest encoded.
func (r *fileRow) fit() string {
	if r.Bitrate <= 0 || r.Target <= 0 {
		return "n/a"
	}
	if search.AcceptAsIs(r.Bitrate, r.Target) {
		return "keep"
	}
	return "encode"
}

// Analyze discovers media files, probes each one, and prints a tabular
// report of source bitrates against their resolved targets, with
// statistical outlier highlighting.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) {
	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return
	}
	if len(files) == 0 {
		log.Warn("No media files found in %s", cfg.InputDir)
		return
	}

	total := len(files)
	log.Info("Analyzing %d files in %s ...", total, cfg.InputDir)
	fmt.Println()

	isTTY := term.IsTerminal(os.Stdout)
	var rows []fileRow
	var skipped int
	var bitrateVals []float64

	for i, path := range files {
		if ctx.Err() != nil {
			if isTTY {
				clearProgress()
			}
			log.Warn("Interrupted")
			return
		}

		printProgress(isTTY, i+1, total, skipped, filepath.Base(path))

		pr, err := probe.Probe(ctx, path)
		if err != nil {
			skipped++
			if isTTY {
				clearProgress()
			}
			log.Warn("Skip (probe failed): %s", filepath.Base(path))
			continue
		}

		row := fileRow{
			Name:    filepath.Base(path),
			Res:     pr.Resolution(),
			Bitrate: pr.OverallBitRate(),
		}
		if pr.PrimaryVideo != nil {
			row.Codec = pr.PrimaryVideo.Codec
		}
		if cfg.TargetBitrate > 0 {
			row.Target = cfg.TargetBitrate
		} else {
			row.Target = search.TargetForHeight(pr.Height())
		}

		rows = append(rows, row)
		if row.Bitrate > 0 {
			bitrateVals = append(bitrateVals, float64(row.Bitrate))
		}
	}

	if isTTY {
		clearProgress()
	}

	if len(rows) == 0 {
		log.Warn("No files could be probed")
		return
	}

	stats := computeStats(bitrateVals)
	printAnalysisTable(rows, stats)
	printAnalysisSummary(log, rows, stats)
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid || v <= 0 {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func printAnalysisTable(rows []fileRow, stats iqrBounds) {
	nameW := len("File")
	resW := len("Resolution")
	codecW := len("Codec")
	brW := len("Bitrate")
	tgtW := len("Target")
	fitW := len("Plan")

	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		if len(r.Res) > resW {
			resW = len(r.Res)
		}
		if len(r.Codec) > codecW {
			codecW = len(r.Codec)
		}
		if s := fmtBitrateCell(r.Bitrate); len(s) > brW {
			brW = len(s)
		}
		if s := fmtBitrateCell(r.Target); len(s) > tgtW {
			tgtW = len(s)
		}
		if s := r.fit(); len(s) > fitW {
			fitW = len(s)
		}
	}

	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		nameW, "File",
		resW, "Resolution",
		codecW, "Codec",
		brW, "Bitrate",
		tgtW, "Target",
		fitW, "Plan",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Println(header)
	fmt.Println(separator)

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}

		class := stats.classify(float64(r.Bitrate))
		// Pad the plain text first, then wrap in ANSI color. This avoids
		// the alignment bug where %-*s counts escape bytes as visible width.
		brCell := colorPad(fmtBitrateCell(r.Bitrate), brW, class)
		flagStr := formatFlag(class)

		fmt.Printf("  %-*s  %-*s  %-*s  %s  %-*s  %-*s  %s\n",
			nameW, name,
			resW, r.Res,
			codecW, r.Codec,
			brCell,
			tgtW, fmtBitrateCell(r.Target),
			fitW, r.fit(),
			flagStr,
		)
	}
	fmt.Println()
}

func printAnalysisSummary(log *logging.Logger, rows []fileRow, stats iqrBounds) {
	var outliers, extremes, keeps, encodes int
	for _, r := range rows {
		switch stats.classify(float64(r.Bitrate)) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
		switch r.fit() {
		case "keep":
			keeps++
		case "encode":
			encodes++
		}
	}

	log.Info("Analyzed %d files: %d would be kept, %d would be encoded", len(rows), keeps, encodes)
	if stats.valid {
		log.Info("  Bitrate IQR: %s - %s (outlier < %s or > %s)",
			display.FormatBitrate(int64(stats.q1)), display.FormatBitrate(int64(stats.q3)),
			display.FormatBitrate(int64(stats.outlierLo)), display.FormatBitrate(int64(stats.outlierHi)))
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func fmtBitrateCell(bps int64) string {
	if bps <= 0 {
		return "n/a"
	}
	return display.FormatBitrate(bps)
}

func formatFlag(flag string) string {
	switch flag {
	case "extreme":
		return term.Red + "[!]" + term.NC
	case "outlier":
		return term.Orange + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps in ANSI color. This
// ensures %-*s-style alignment works correctly regardless of escape sequences.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Red + padded + term.NC
	case "outlier":
		return term.Orange + padded + term.NC
	default:
		return padded
	}
}

// printProgress shows a live probe counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op (the skip warnings
// already provide enough breadcrumbs in piped/logged output).
func printProgress(isTTY bool, current, total, skipped int, name string) {
	if !isTTY {
		return
	}
	pct := current * 100 / total
	status := fmt.Sprintf("  Probing [%d/%d] %d%% ", current, total, pct)
	if skipped > 0 {
		status += fmt.Sprintf("(%d skipped) ", skipped)
	}

	maxName := 40
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}
	status += name

	// Pad to 80 chars to overwrite previous longer lines, then \r.
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(os.Stdout, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress() {
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
