// Package scope locates a stable trigger point in a waveform snapshot and
// derives the amplitude scale used to draw it as a steady oscilloscope trace.
package scope

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sync is the per-frame trigger and scale derived from one buffer.
type Sync struct {
	// Trigger is the index of the largest sample in the middle half.
	Trigger int
	// Amplitude is the peak absolute sample over the whole buffer.
	Amplitude float64
	// Scale is 1/sqrt(Amplitude), or 1 for a silent buffer.
	Scale float64
}

// ComputeSync searches [N/4, N/4+N/2) for the maximum sample (first one wins)
// and computes a square-root compressed amplitude scale.
func ComputeSync(buf []float64) Sync {
	n := len(buf)
	s := Sync{Trigger: n / 4, Scale: 1}
	if n == 0 {
		return s
	}

	if win := buf[n/4 : n/4+n/2]; len(win) > 0 {
		s.Trigger = n/4 + floats.MaxIdx(win)
	}

	s.Amplitude = math.Max(math.Abs(floats.Min(buf)), math.Abs(floats.Max(buf)))
	if s.Amplitude > 0 && !math.IsInf(s.Amplitude, 0) && !math.IsNaN(s.Amplitude) {
		s.Scale = 1 / math.Sqrt(s.Amplitude)
	}
	return s
}

// Window copies len(dst) samples starting a quarter buffer before the trigger.
// Indices past either end wrap around.
func Window(dst, buf []float64, s Sync) {
	n := len(buf)
	if n == 0 {
		clear(dst)
		return
	}
	start := s.Trigger - n/4
	for i := range dst {
		dst[i] = buf[mod(start+i, n)]
	}
}

// Normalize maps a scaled sample into [0, 1] for a unit signal.
func Normalize(v, scale float64) float64 {
	return v*0.5*scale + 0.5
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
