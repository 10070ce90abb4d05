package hilbert

import "gonum.org/v1/gonum/floats"

// FIR is a streaming direct-form convolver. The output is not normalized,
// so the kernel gain is applied as designed.
type FIR struct {
	rev  []float64 // coefficients, time-reversed for the dot product
	hist []float64 // last len(rev)-1 inputs
	x    []float64 // scratch: hist followed by the current block
}

// NewFIR creates a convolver for the given coefficients.
func NewFIR(coeffs []float64) *FIR {
	n := len(coeffs)
	rev := make([]float64, n)
	for i, c := range coeffs {
		rev[n-1-i] = c
	}
	histLen := n - 1
	if histLen < 0 {
		histLen = 0
	}
	return &FIR{
		rev:  rev,
		hist: make([]float64, histLen),
	}
}

// Process convolves src with the kernel, continuing from previous calls,
// and writes len(src) outputs to dst. dst and src may alias.
func (f *FIR) Process(dst, src []float64) {
	n := len(f.rev)
	if n == 0 {
		clear(dst[:len(src)])
		return
	}
	f.x = append(f.x[:0], f.hist...)
	f.x = append(f.x, src...)
	for i := range src {
		dst[i] = floats.Dot(f.rev, f.x[i:i+n])
	}
	copy(f.hist, f.x[len(f.x)-len(f.hist):])
}

// Reset clears the convolution history.
func (f *FIR) Reset() {
	clear(f.hist)
}
