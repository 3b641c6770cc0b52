package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical file 700 MiB", 734003200, "700.0 MiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"positive", 1024 * 1024, "+ 1.0 MiB"},
		{"negative", -1024 * 1024, "- 1.0 MiB"},
		{"zero", 0, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytesWithSign(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytesWithSign(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBitrate(t *testing.T) {
	tests := []struct {
		name string
		bps  int64
		want string
	}{
		{"sub-megabit", 800_000, "800 kbps"},
		{"exactly 1 Mbps", 1_000_000, "1.0 Mbps"},
		{"typical 1080p target", 8_000_000, "8.0 Mbps"},
		{"4k target", 11_000_000, "11.0 Mbps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBitrate(tt.bps)
			if got != tt.want {
				t.Errorf("FormatBitrate(%d) = %q, want %q", tt.bps, got, tt.want)
			}
		})
	}
}

func TestFormatDeviation(t *testing.T) {
	tests := []struct {
		name             string
		measured, target int64
		want             string
	}{
		{"above target", 8_240_000, 8_000_000, "+3.0%"},
		{"below target", 7_600_000, 8_000_000, "-5.0%"},
		{"on target", 8_000_000, 8_000_000, "+0.0%"},
		{"zero target", 5_000_000, 0, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDeviation(tt.measured, tt.target)
			if got != tt.want {
				t.Errorf("FormatDeviation(%d, %d) = %q, want %q", tt.measured, tt.target, got, tt.want)
			}
		})
	}
}
