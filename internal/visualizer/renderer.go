package visualizer

import "github.com/olivier-w/hscope/internal/scope"

// SpectrumSource supplies time- and frequency-domain snapshots.
type SpectrumSource interface {
	FrequencyBinCount() int
	DecibelRange() (floor, ceiling float64)
	TimeDomainData(dst []float64)
	FrequencyData(dst []float64)
}

// QuadratureSource supplies matched real/imaginary snapshots.
type QuadratureSource interface {
	Size() int
	Snapshot(re, im []float64)
}

// Frame is one render tick's worth of polylines.
type Frame struct {
	Waveform Polyline
	Spectrum Polyline
	Scope    Polyline
	Phase    Polyline
	Sync     scope.Sync
}

// Renderer owns the per-frame analysis buffers. Buffer lengths are fixed at
// construction; contents are overwritten every frame.
type Renderer struct {
	spectrum   SpectrumSource
	quadrature QuadratureSource
	logFactor  float64

	waveform []float64
	levels   []float64
	window   []float64
	re       []float64
	im       []float64

	frame Frame
}

// NewRenderer allocates buffers sized from the sources. logFactor <= 0 uses
// DefaultLogFactor.
func NewRenderer(spectrum SpectrumSource, quadrature QuadratureSource, logFactor float64) *Renderer {
	if logFactor <= 0 {
		logFactor = DefaultLogFactor
	}
	bins := spectrum.FrequencyBinCount()
	quad := quadrature.Size()
	return &Renderer{
		spectrum:   spectrum,
		quadrature: quadrature,
		logFactor:  logFactor,
		waveform:   make([]float64, bins),
		levels:     make([]float64, bins),
		window:     make([]float64, bins/2),
		re:         make([]float64, quad),
		im:         make([]float64, quad),
		frame: Frame{
			Waveform: make(Polyline, 0, bins),
			Spectrum: make(Polyline, 0, bins),
			Scope:    make(Polyline, 0, bins/2),
			Phase:    make(Polyline, 0, quad),
		},
	}
}

// Build snapshots the sources and computes a frame for a surface of the
// given size. The returned frame is reused by the next call.
func (r *Renderer) Build(width, height float64) Frame {
	r.spectrum.TimeDomainData(r.waveform)
	r.spectrum.FrequencyData(r.levels)
	r.quadrature.Snapshot(r.re, r.im)

	floor, ceiling := r.spectrum.DecibelRange()
	sync := scope.ComputeSync(r.waveform)

	f := &r.frame
	f.Sync = sync
	f.Waveform = WaveformTrace(f.Waveform, r.waveform, width, height)
	f.Spectrum = SpectrumTrace(f.Spectrum, r.levels, floor, ceiling, r.logFactor, width, height)
	f.Scope = ScopeTrace(f.Scope, r.waveform, sync, r.window, width, height)
	f.Phase = PhaseTrace(f.Phase, r.re, r.im, height)
	return r.frame
}

// Render performs one read-compute-draw pass onto s.
func (r *Renderer) Render(s Surface) Frame {
	w, h := s.Size()
	f := r.Build(w, h)
	Draw(s, f)
	return f
}

// Draw clears s and strokes the frame's polylines back to front.
func Draw(s Surface, f Frame) {
	s.Clear()
	StrokePolyline(s, StyleWaveform, f.Waveform)
	StrokePolyline(s, StyleSpectrum, f.Spectrum)
	StrokePolyline(s, StyleScope, f.Scope)
	StrokePolyline(s, StylePhase, f.Phase)
}
