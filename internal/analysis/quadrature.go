package analysis

import (
	"fmt"
	"sync"

	"github.com/olivier-w/hscope/internal/hilbert"
)

const DefaultQuadratureFFTSize = 1024

// QuadratureOptions configures a Quadrature analyzer.
type QuadratureOptions struct {
	FFTSize      int
	FilterLength int
	SampleRate   float64
}

// Quadrature splits the input into a delayed real branch and a Hilbert
// filtered imaginary branch, keeping the latest FFTSize samples of each.
type Quadrature struct {
	kernel hilbert.Kernel
	size   int

	mu    sync.Mutex
	delay *hilbert.Delay
	fir   *hilbert.FIR
	real  *RingBuffer
	imag  *RingBuffer
	reBuf []float64
	imBuf []float64
}

// NewQuadrature designs the Hilbert kernel and allocates both branches.
func NewQuadrature(opts QuadratureOptions) (*Quadrature, error) {
	if opts.FFTSize == 0 {
		opts.FFTSize = DefaultQuadratureFFTSize
	}
	if opts.FilterLength == 0 {
		opts.FilterLength = hilbert.DefaultLength
	}
	if !ValidFFTSize(opts.FFTSize) {
		return nil, fmt.Errorf("%w: got %d", ErrFFTSize, opts.FFTSize)
	}
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("analysis: sample rate must be positive, got %v", opts.SampleRate)
	}

	k := hilbert.Design(opts.FilterLength, opts.SampleRate)
	return &Quadrature{
		kernel: k,
		size:   opts.FFTSize,
		delay:  hilbert.NewDelay(k.DelaySamples()),
		fir:    hilbert.NewFIR(k.Coeffs),
		real:   NewRingBuffer(opts.FFTSize),
		imag:   NewRingBuffer(opts.FFTSize),
	}, nil
}

// Kernel returns the Hilbert kernel in use.
func (q *Quadrature) Kernel() hilbert.Kernel { return q.kernel }

// FFTSize returns the analysis window length of each branch.
func (q *Quadrature) FFTSize() int { return q.size }

// Size is the snapshot length used for display, half the window.
func (q *Quadrature) Size() int { return q.size / 2 }

// Write pushes samples through both branches.
func (q *Quadrature) Write(samples []float64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cap(q.reBuf) < len(samples) {
		q.reBuf = make([]float64, len(samples))
		q.imBuf = make([]float64, len(samples))
	}
	re := q.reBuf[:len(samples)]
	im := q.imBuf[:len(samples)]
	q.delay.Process(re, samples)
	q.fir.Process(im, samples)
	q.real.write(re)
	q.imag.write(im)
}

// Snapshot copies the most recent samples of both branches. Both copies are
// taken under one lock so re and im always describe the same instant.
func (q *Quadrature) Snapshot(re, im []float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.real.latest(re)
	q.imag.latest(im)
}

// Reset clears filter state and buffered samples.
func (q *Quadrature) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delay.Reset()
	q.fir.Reset()
	clear(q.real.buf)
	clear(q.imag.buf)
	q.real.w, q.imag.w = 0, 0
}
