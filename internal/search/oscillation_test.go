package search

import "testing"

func TestDetectCycle_TwoValues(t *testing.T) {
	var h History
	target := int64(8_000_000)

	h.Append(60, 8_600_000)
	if _, ok := h.DetectCycle(target); ok {
		t.Fatal("cycle detected after one observation")
	}
	h.Append(61, 7_300_000)
	if _, ok := h.DetectCycle(target); ok {
		t.Fatal("cycle detected after two observations")
	}
	h.Append(60, 8_600_000)
	q, ok := h.DetectCycle(target)
	if !ok {
		t.Fatal("2-cycle not detected")
	}
	// 60 is off by 600k, 61 by 700k.
	if q != 60 {
		t.Errorf("cycle winner = %d, want 60", q)
	}
}

func TestDetectCycle_TwoValues_OtherWinner(t *testing.T) {
	var h History
	target := int64(8_000_000)

	h.Append(60, 8_900_000)
	h.Append(61, 7_500_000)
	h.Append(60, 8_900_000)
	q, ok := h.DetectCycle(target)
	if !ok {
		t.Fatal("2-cycle not detected")
	}
	// 61 is off by 500k, 60 by 900k.
	if q != 61 {
		t.Errorf("cycle winner = %d, want 61", q)
	}
}

func TestDetectCycle_ThreeValues(t *testing.T) {
	var h History
	target := int64(8_000_000)

	seq := []Observation{
		{58, 7_000_000},
		{62, 9_200_000},
		{60, 8_450_000},
		{58, 7_000_000},
		{62, 9_200_000},
	}
	for _, o := range seq {
		h.Append(o.Quality, o.Bitrate)
		if _, ok := h.DetectCycle(target); ok {
			t.Fatalf("cycle detected early at len %d", h.Len())
		}
	}

	h.Append(60, 8_450_000)
	q, ok := h.DetectCycle(target)
	if !ok {
		t.Fatal("3-cycle not detected")
	}
	// 60 deviates by 450k, the smallest of the three.
	if q != 60 {
		t.Errorf("cycle winner = %d, want 60", q)
	}
}

func TestDetectCycle_MonotoneHistoryHasNoCycle(t *testing.T) {
	var h History
	for q := 60; q < 70; q++ {
		h.Append(q, int64(6_000_000+q*10_000))
		if got, ok := h.DetectCycle(8_000_000); ok {
			t.Fatalf("unexpected cycle at q=%d (winner %d)", q, got)
		}
	}
}
