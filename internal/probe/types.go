package probe

import "strconv"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64 // seconds
	Size       int64   // bytes
	BitRate    int64   // bps
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Width         int
	Height        int
	BitRate       int64
	IsAttachedPic bool
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index    int
	Codec    string
	Channels int
	BitRate  int64
}

// ProbeResult is the fully parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioStreams []AudioStream
}

// OverallBitRate returns the container-level bitrate in bits/sec, falling
// back to size·8/duration when ffprobe omits the format value. Returns 0
// when neither is available.
func (p *ProbeResult) OverallBitRate() int64 {
	if p.Format.BitRate > 0 {
		return p.Format.BitRate
	}
	if p.Format.Size > 0 && p.Format.Duration > 0 {
		return int64(float64(p.Format.Size) * 8 / p.Format.Duration)
	}
	return 0
}

// VideoBitRate returns the primary video stream bitrate in bits/sec,
// falling back to the overall bitrate when the stream value is
// unavailable or zero.
func (p *ProbeResult) VideoBitRate() int64 {
	if p.PrimaryVideo != nil && p.PrimaryVideo.BitRate > 0 {
		return p.PrimaryVideo.BitRate
	}
	return p.OverallBitRate()
}

// Height returns the vertical resolution of the primary video stream, or 0.
func (p *ProbeResult) Height() int {
	if p.PrimaryVideo == nil {
		return 0
	}
	return p.PrimaryVideo.Height
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.PrimaryVideo.Width) + "x" + strconv.Itoa(p.PrimaryVideo.Height)
}
