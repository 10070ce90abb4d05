package visualizer

import (
	"fmt"
	"strings"
	"testing"
)

type stubSpectrum struct {
	bins     int
	waveform []float64
	levels   []float64
}

func (s *stubSpectrum) FrequencyBinCount() int                 { return s.bins }
func (s *stubSpectrum) DecibelRange() (floor, ceiling float64) { return -130, -30 }
func (s *stubSpectrum) TimeDomainData(dst []float64)           { copy(dst, s.waveform) }
func (s *stubSpectrum) FrequencyData(dst []float64)            { copy(dst, s.levels) }

type stubQuadrature struct {
	re, im []float64
}

func (q *stubQuadrature) Size() int { return len(q.re) }
func (q *stubQuadrature) Snapshot(re, im []float64) {
	copy(re, q.re)
	copy(im, q.im)
}

// recordingSurface logs every call so tests can check the drawing protocol.
type recordingSurface struct {
	w, h  float64
	calls []string
}

func (r *recordingSurface) Size() (float64, float64) { return r.w, r.h }
func (r *recordingSurface) Clear()                   { r.calls = append(r.calls, "clear") }
func (r *recordingSurface) SetStrokeStyle(s Style) {
	r.calls = append(r.calls, fmt.Sprintf("style %d", s))
}
func (r *recordingSurface) BeginPath()          { r.calls = append(r.calls, "begin") }
func (r *recordingSurface) MoveTo(x, y float64) { r.calls = append(r.calls, "move") }
func (r *recordingSurface) LineTo(x, y float64) { r.calls = append(r.calls, "line") }
func (r *recordingSurface) Stroke()             { r.calls = append(r.calls, "stroke") }

func newStubRenderer() (*Renderer, *stubSpectrum) {
	src := &stubSpectrum{
		bins:     8,
		waveform: []float64{0, 0.1, 0.2, 0.9, 0.3, 0.1, 0, -0.4},
		levels:   []float64{-40, -50, -60, -70, -80, -90, -100, -110},
	}
	quad := &stubQuadrature{
		re: []float64{1, 0, -1, 0},
		im: []float64{0, 1, 0, -1},
	}
	return NewRenderer(src, quad, 0), src
}

func TestRendererBuildLengths(t *testing.T) {
	r, _ := newStubRenderer()
	f := r.Build(100, 50)
	if len(f.Waveform) != 8 || len(f.Spectrum) != 8 {
		t.Fatalf("waveform/spectrum lengths = %d/%d, want 8/8", len(f.Waveform), len(f.Spectrum))
	}
	if len(f.Scope) != 4 {
		t.Fatalf("scope length = %d, want 4", len(f.Scope))
	}
	if len(f.Phase) != 4 {
		t.Fatalf("phase length = %d, want 4", len(f.Phase))
	}
	if f.Sync.Trigger != 3 {
		t.Fatalf("Sync.Trigger = %d, want 3", f.Sync.Trigger)
	}
}

func TestRendererRecomputesSyncEachFrame(t *testing.T) {
	r, src := newStubRenderer()
	first := r.Build(100, 50)
	if first.Sync.Trigger != 3 {
		t.Fatalf("first Trigger = %d, want 3", first.Sync.Trigger)
	}
	src.waveform = []float64{0, 0, 0, 0, 0, 0.5, 0, 0}
	second := r.Build(100, 50)
	if second.Sync.Trigger != 5 {
		t.Fatalf("second Trigger = %d, want 5", second.Sync.Trigger)
	}
}

func TestRenderDrawsFourSinglePathLayersInOrder(t *testing.T) {
	r, _ := newStubRenderer()
	s := &recordingSurface{w: 100, h: 50}
	r.Render(s)

	got := strings.Join(s.calls, ",")
	layer := func(style Style, points int) string {
		parts := []string{fmt.Sprintf("style %d", style), "begin", "move"}
		for range points - 1 {
			parts = append(parts, "line")
		}
		return strings.Join(append(parts, "stroke"), ",")
	}
	want := strings.Join([]string{
		"clear",
		layer(StyleWaveform, 8),
		layer(StyleSpectrum, 8),
		layer(StyleScope, 4),
		layer(StylePhase, 4),
	}, ",")
	if got != want {
		t.Fatalf("calls =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderOntoBrailleCanvas(t *testing.T) {
	r, _ := newStubRenderer()
	c := newTestCanvas(20, 5)
	r.Render(c)
	if strings.TrimRight(c.View(), string(rune(0x2800))+"\n") == "" {
		t.Fatal("expected rendered dots")
	}
}
