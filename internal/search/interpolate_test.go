package search

import "testing"

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name   string
		q1     int
		b1     int64
		q2     int
		b2     int64
		target int64
		want   int
	}{
		{"target at first point", 80, 10_000_000, 70, 8_000_000, 10_000_000, 80},
		{"target at second point", 80, 10_000_000, 70, 8_000_000, 8_000_000, 70},
		{"target at exact midpoint", 80, 10_000_000, 70, 8_000_000, 9_000_000, 75},
		{"reversed point order", 70, 8_000_000, 80, 10_000_000, 9_000_000, 75},
		{"quarter of the way", 80, 10_000_000, 70, 8_000_000, 8_500_000, 73}, // 72.5 rounds away from zero
		{"extrapolates above and clamps", 80, 10_000_000, 70, 8_000_000, 16_000_000, 100},
		{"extrapolates below and clamps", 30, 4_000_000, 20, 3_000_000, 100_000, 0},
		{"indistinguishable bitrates fall back to midpoint", 80, 9_010_000, 70, 9_000_000, 9_000_000, 75},
		{"identical bitrates fall back to midpoint", 60, 8_000_000, 50, 8_000_000, 10_000_000, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.q1, tt.b1, tt.q2, tt.b2, tt.target)
			if got != tt.want {
				t.Errorf("Interpolate(%d,%d, %d,%d, target=%d) = %d, want %d",
					tt.q1, tt.b1, tt.q2, tt.b2, tt.target, got, tt.want)
			}
		})
	}
}

// The result stays in [0,100] for arbitrary observations, including ones
// whose line solves far outside the quality range.
func TestInterpolate_RangeInvariant(t *testing.T) {
	obs := []struct {
		q int
		b int64
	}{
		{0, 1_000_000}, {100, 40_000_000}, {50, 8_000_000}, {51, 8_050_000},
	}
	targets := []int64{100_000, 2_500_000, 8_000_000, 11_000_000, 500_000_000}
	for _, a := range obs {
		for _, b := range obs {
			for _, target := range targets {
				got := Interpolate(a.q, a.b, b.q, b.b, target)
				if got < QualityMin || got > QualityMax {
					t.Fatalf("Interpolate(%d,%d, %d,%d, %d) = %d, out of range",
						a.q, a.b, b.q, b.b, target, got)
				}
			}
		}
	}
}
