package encoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/backmassage/ratemaster/internal/config"
)

// Encoder runs the configured backend against one source file, writing
// encode outputs into workDir. It implements the search engine's
// SampleEncoder and FullEncoder interfaces. Not safe for concurrent use;
// the pipeline drives one encode at a time.
type Encoder struct {
	cfg     *config.Config
	workDir string
	seq     int // monotonically increasing output counter within workDir
}

// New returns an Encoder writing its outputs into workDir, which must
// already exist and is owned by the caller (typically a per-file temp dir).
func New(cfg *config.Config, workDir string) *Encoder {
	return &Encoder{cfg: cfg, workDir: workDir}
}

// EncodeSample encodes a clip of the source starting at start seconds and
// lasting duration seconds, at the given quality. Returns the output path.
func (e *Encoder) EncodeSample(ctx context.Context, path string, start, duration float64, quality int) (string, error) {
	out := e.nextPath("sample", quality)
	args := buildSampleArgs(e.cfg, path, out, start, duration, quality)
	if err := e.run(ctx, args); err != nil {
		return "", err
	}
	return out, nil
}

// EncodeFull encodes the entire source file at the given quality. Returns
// the output path.
func (e *Encoder) EncodeFull(ctx context.Context, path string, quality int) (string, error) {
	out := e.nextPath("full", quality)
	args := buildFullArgs(e.cfg, path, out, quality)
	if err := e.run(ctx, args); err != nil {
		return "", err
	}
	return out, nil
}

// nextPath returns a fresh output path in workDir. The sequence number
// keeps outputs distinct when the same quality is revisited.
func (e *Encoder) nextPath(kind string, quality int) string {
	e.seq++
	name := fmt.Sprintf("%s-q%03d-%02d.%s", kind, quality, e.seq, e.cfg.OutputContainer)
	return filepath.Join(e.workDir, name)
}

// run executes one tool invocation. Stderr is captured; when verbose it is
// also tee'd to os.Stderr in real time. On failure the error carries the
// tail of stderr, which is where both tools put their diagnostics.
func (e *Encoder) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if e.cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		if tail := stderrTail(stderrBuf.String()); tail != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, tail)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

// stderrTail returns the last few non-empty lines of tool stderr, joined
// with "; " so the result stays a single log line.
func stderrTail(stderr string) string {
	const maxLines = 3
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var kept []string
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) > maxLines {
		kept = kept[len(kept)-maxLines:]
	}
	return strings.Join(kept, "; ")
}
