package visualizer

import (
	"math"
	"testing"
)

func TestLogWarpXEndpointsAndMonotonic(t *testing.T) {
	const bins = 1024
	const width = 640.0
	if got := LogWarpX(0, bins, DefaultLogFactor, width); got != 0 {
		t.Fatalf("LogWarpX(0) = %v, want 0", got)
	}
	if got := LogWarpX(bins-1, bins, DefaultLogFactor, width); math.Abs(got-width) > 1e-9 {
		t.Fatalf("LogWarpX(last) = %v, want %v", got, width)
	}
	prev := -1.0
	for i := range bins {
		x := LogWarpX(i, bins, DefaultLogFactor, width)
		if x <= prev {
			t.Fatalf("LogWarpX(%d) = %v, not above %v", i, x, prev)
		}
		prev = x
	}
}

func TestLogWarpXExpandsLowBins(t *testing.T) {
	const bins = 512
	linear := LinearX(10, bins, 100)
	warped := LogWarpX(10, bins, DefaultLogFactor, 100)
	if warped <= linear {
		t.Fatalf("LogWarpX(10) = %v, want above linear %v", warped, linear)
	}
}

func TestDecibelY(t *testing.T) {
	tests := []struct {
		db, want float64
	}{
		{-130, 360},
		{-30, 0},
		{-80, 180},
		{-180, 540}, // below the floor draws off the bottom
	}
	for _, tt := range tests {
		if got := DecibelY(tt.db, -130, -30, 360); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("DecibelY(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestDegenerateAxes(t *testing.T) {
	if got := LogWarpX(0, 1, DefaultLogFactor, 10); got != 0 {
		t.Fatalf("LogWarpX single bin = %v, want 0", got)
	}
	if got := LinearX(0, 1, 10); got != 0 {
		t.Fatalf("LinearX single sample = %v, want 0", got)
	}
}
