package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/ratemaster/internal/probe"
)

// ErrBitrateUnavailable is returned when neither ffprobe nor the file size
// yields a usable bitrate for an encoded output.
var ErrBitrateUnavailable = errors.New("bitrate unavailable")

// Measurer determines the bitrate of encoded outputs. It implements the
// search engine's Measurer interface.
//
// Preference order: ffprobe's container bitrate (with its internal
// size/duration fallback), then raw file size over the caller-supplied
// duration. The last resort matters for fresh sample clips whose container
// headers some muxers leave incomplete.
type Measurer struct{}

// MeasureBitrate returns the overall bitrate of path in bits/sec.
// duration is the clip length in seconds, used for the size-based
// fallback; pass 0 when unknown.
func (Measurer) MeasureBitrate(ctx context.Context, path string, duration float64) (int64, error) {
	pr, err := probe.Probe(ctx, path)
	if err == nil {
		if br := pr.OverallBitRate(); br > 0 {
			return br, nil
		}
	}

	if duration > 0 {
		fi, statErr := os.Stat(path)
		if statErr == nil && fi.Size() > 0 {
			return int64(float64(fi.Size()) * 8 / duration), nil
		}
	}

	return 0, fmt.Errorf("measure %q: %w", path, ErrBitrateUnavailable)
}
