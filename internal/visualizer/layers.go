package visualizer

import "github.com/olivier-w/hscope/internal/scope"

// WaveformTrace draws every sample of buf unscaled across the full width.
func WaveformTrace(dst Polyline, buf []float64, width, height float64) Polyline {
	dst = dst[:0]
	for i, v := range buf {
		dst = append(dst, Point{
			X: LinearX(i, len(buf), width),
			Y: UnitY(v*0.5+0.5, height),
		})
	}
	return dst
}

// SpectrumTrace draws decibel bins on a log-warped frequency axis.
func SpectrumTrace(dst Polyline, db []float64, floor, ceiling, factor, width, height float64) Polyline {
	dst = dst[:0]
	for i, v := range db {
		dst = append(dst, Point{
			X: LogWarpX(i, len(db), factor, width),
			Y: DecibelY(v, floor, ceiling, height),
		})
	}
	return dst
}

// ScopeTrace draws half of buf, starting a quarter buffer before the trigger,
// scaled by the sync amplitude factor.
func ScopeTrace(dst Polyline, buf []float64, s scope.Sync, window []float64, width, height float64) Polyline {
	dst = dst[:0]
	scope.Window(window, buf, s)
	for i, v := range window {
		dst = append(dst, Point{
			X: LinearX(i, len(window), width),
			Y: UnitY(scope.Normalize(v, s.Scale), height),
		})
	}
	return dst
}

// PhaseTrace draws the quadrature pair as an X-Y plot in a height x height
// square: real on x, imaginary on y.
func PhaseTrace(dst Polyline, re, im []float64, height float64) Polyline {
	dst = dst[:0]
	n := min(len(re), len(im))
	for i := range n {
		dst = append(dst, Point{
			X: (re[i]*0.5 + 0.5) * height,
			Y: (im[i]*0.5 + 0.5) * height,
		})
	}
	return dst
}
