// Package hilbert designs and runs the FIR approximation of a Hilbert
// transformer used to derive a quadrature pair from a mono signal.
package hilbert

import "math"

// DefaultLength is the requested kernel length. Even lengths are reduced by
// one, so the effective default is 767 taps.
const DefaultLength = 768

// Kernel is a windowed Hilbert transformer and the delay that aligns an
// unfiltered branch with it.
type Kernel struct {
	Coeffs []float64
	// Delay is the group delay of the kernel in seconds.
	Delay float64
}

// Design builds an odd-length Hilbert kernel tapered by a Hamming window.
// Even lengths are decremented by one so the kernel has an integer center.
func Design(length int, sampleRate float64) Kernel {
	if length%2 == 0 {
		length--
	}
	if length < 1 {
		length = 1
	}

	coeffs := make([]float64, length)
	mid := (length - 1) / 2

	for i := 0; i <= mid; i++ {
		if i%2 == 0 {
			continue
		}
		k := 0.53836 + 0.46164*math.Cos(float64(i)*math.Pi/float64(mid+1))
		im := 2 / (math.Pi * float64(i))
		coeffs[mid+i] = k * im
		coeffs[mid-i] = -k * im
	}

	var delay float64
	if sampleRate > 0 {
		delay = float64(mid) / sampleRate
	}
	return Kernel{Coeffs: coeffs, Delay: delay}
}

// Len returns the number of taps.
func (k Kernel) Len() int { return len(k.Coeffs) }

// DelaySamples returns the group delay in whole samples.
func (k Kernel) DelaySamples() int {
	if len(k.Coeffs) == 0 {
		return 0
	}
	return (len(k.Coeffs) - 1) / 2
}
