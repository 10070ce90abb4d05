package visualizer

import (
	"math"
	"testing"

	"github.com/olivier-w/hscope/internal/scope"
)

func TestScopeTraceUnitSine(t *testing.T) {
	const n = 2048
	const width, height = 640.0, 360.0

	tests := []struct {
		name   string
		cycles float64
		wantLo float64 // expected lowest point of the trace
	}{
		// The window spans half the buffer, so one cycle over the buffer
		// shows the positive half-wave only.
		{name: "single cycle", cycles: 1, wantLo: height / 2},
		{name: "one cycle per window", cycles: 2, wantLo: height},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]float64, n)
			for i := range buf {
				buf[i] = math.Sin(2 * math.Pi * tt.cycles * float64(i) / n)
			}

			s := scope.ComputeSync(buf)
			if math.Abs(s.Scale-1) > 1e-9 {
				t.Fatalf("Scale = %v, want 1", s.Scale)
			}

			trace := ScopeTrace(nil, buf, s, make([]float64, n/2), width, height)
			if len(trace) != n/2 {
				t.Fatalf("len(trace) = %d, want %d", len(trace), n/2)
			}
			minY, maxY := math.Inf(1), math.Inf(-1)
			for _, p := range trace {
				minY = math.Min(minY, p.Y)
				maxY = math.Max(maxY, p.Y)
			}
			if math.Abs(minY) > 1e-6 {
				t.Fatalf("trace top = %v, want 0", minY)
			}
			if math.Abs(maxY-tt.wantLo) > 0.01*height {
				t.Fatalf("trace bottom = %v, want %v", maxY, tt.wantLo)
			}
			if trace[0].X != 0 || math.Abs(trace[len(trace)-1].X-width) > 1e-9 {
				t.Fatalf("trace x span = [%v, %v], want [0, %v]", trace[0].X, trace[len(trace)-1].X, width)
			}
		})
	}
}

func TestScopeTraceStartsAtTriggerOffset(t *testing.T) {
	buf := make([]float64, 16)
	buf[9] = 1
	s := scope.ComputeSync(buf)
	trace := ScopeTrace(nil, buf, s, make([]float64, 8), 7, 2)
	// trigger 9, so the peak lands a quarter buffer into the window.
	if trace[4].Y != 0 {
		t.Fatalf("trace[4].Y = %v, want 0 (peak at top)", trace[4].Y)
	}
}

func TestWaveformTrace(t *testing.T) {
	trace := WaveformTrace(nil, []float64{-1, 0, 1}, 10, 100)
	want := Polyline{{0, 100}, {5, 50}, {10, 0}}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestSpectrumTraceUsesDecibelRange(t *testing.T) {
	trace := SpectrumTrace(nil, []float64{-130, -30}, -130, -30, DefaultLogFactor, 50, 20)
	if trace[0] != (Point{0, 20}) {
		t.Fatalf("trace[0] = %v, want {0 20}", trace[0])
	}
	if math.Abs(trace[1].X-50) > 1e-9 || trace[1].Y != 0 {
		t.Fatalf("trace[1] = %v, want {50 0}", trace[1])
	}
}

func TestPhaseTraceIsSquare(t *testing.T) {
	trace := PhaseTrace(nil, []float64{1, -1, 0}, []float64{0, 1, -1}, 40)
	want := Polyline{{40, 20}, {0, 40}, {20, 0}}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}
