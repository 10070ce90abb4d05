// Package analysis turns a live sample stream into display-ready buffers:
// time-domain snapshots, smoothed decibel spectra and a Hilbert quadrature
// pair.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -130.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768

	// silentDecibels stands in for -Inf when a bin has no energy.
	silentDecibels = -200.0
)

// ErrFFTSize is returned for transform sizes that are not a power of two
// within [32, 32768].
var ErrFFTSize = errors.New("analysis: fft size must be a power of two in [32, 32768]")

// Options configures an Analyzer. A zero FFTSize or an all-zero decibel
// range takes the defaults; zero Smoothing disables smoothing.
type Options struct {
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64
}

func (o Options) withDefaults() Options {
	if o.FFTSize == 0 {
		o.FFTSize = DefaultFFTSize
	}
	if o.MinDecibels == 0 && o.MaxDecibels == 0 {
		o.MinDecibels = DefaultMinDecibels
		o.MaxDecibels = DefaultMaxDecibels
	}
	return o
}

// Analyzer performs short-time Fourier analysis over the most recent FFTSize
// samples written to it.
type Analyzer struct {
	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64

	ring *RingBuffer

	mu       sync.Mutex // guards the fields below; FrequencyData only
	fft      *fourier.FFT
	window   []float64
	frame    []float64
	coeffs   []complex128
	smoothed []float64
}

// NewAnalyzer creates an analyzer. It fails with ErrFFTSize for an invalid
// transform size.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	opts = opts.withDefaults()
	if !ValidFFTSize(opts.FFTSize) {
		return nil, fmt.Errorf("%w: got %d", ErrFFTSize, opts.FFTSize)
	}
	if opts.Smoothing < 0 || opts.Smoothing > 1 {
		return nil, fmt.Errorf("analysis: smoothing %v outside [0, 1]", opts.Smoothing)
	}
	if opts.MinDecibels >= opts.MaxDecibels {
		return nil, fmt.Errorf("analysis: min decibels %v must be below max decibels %v", opts.MinDecibels, opts.MaxDecibels)
	}

	n := opts.FFTSize
	return &Analyzer{
		fftSize:   n,
		smoothing: opts.Smoothing,
		minDB:     opts.MinDecibels,
		maxDB:     opts.MaxDecibels,
		ring:      NewRingBuffer(n),
		fft:       fourier.NewFFT(n),
		window:    window.Blackman(n),
		frame:     make([]float64, n),
		coeffs:    make([]complex128, n/2+1),
		smoothed:  make([]float64, n/2),
	}, nil
}

// ValidFFTSize reports whether n is an accepted transform size.
func ValidFFTSize(n int) bool {
	return n >= minFFTSize && n <= maxFFTSize && n&(n-1) == 0
}

// Write feeds samples into the analysis window. Safe for use from the audio
// goroutine while the render loop reads.
func (a *Analyzer) Write(samples []float64) {
	a.ring.Write(samples)
}

func (a *Analyzer) FFTSize() int { return a.fftSize }

// FrequencyBinCount is half the transform size.
func (a *Analyzer) FrequencyBinCount() int { return a.fftSize / 2 }

// DecibelRange returns the display floor and ceiling.
func (a *Analyzer) DecibelRange() (floor, ceiling float64) {
	return a.minDB, a.maxDB
}

// TimeDomainData copies the most recent min(len(dst), FFTSize) samples into dst.
func (a *Analyzer) TimeDomainData(dst []float64) {
	a.ring.Latest(dst)
}

// FrequencyData writes the smoothed magnitude spectrum in decibels for the
// first min(len(dst), FrequencyBinCount) bins.
func (a *Analyzer) FrequencyData(dst []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ring.Latest(a.frame)
	for i, w := range a.window {
		a.frame[i] *= w
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	scale := 1 / float64(a.fftSize)
	tau := a.smoothing
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) * scale
		v := tau*a.smoothed[k] + (1-tau)*mag
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		a.smoothed[k] = v
	}

	n := min(len(dst), len(a.smoothed))
	for k := range n {
		dst[k] = toDecibels(a.smoothed[k])
	}
}

// Reset drops buffered samples and smoothing history.
func (a *Analyzer) Reset() {
	a.ring.Clear()
	a.mu.Lock()
	clear(a.smoothed)
	a.mu.Unlock()
}

func toDecibels(mag float64) float64 {
	if mag <= 0 {
		return silentDecibels
	}
	db := 20 * math.Log10(mag)
	if db < silentDecibels {
		return silentDecibels
	}
	return db
}
