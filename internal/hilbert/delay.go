package hilbert

// Delay is a fixed integer-sample delay line.
type Delay struct {
	buf []float64
	pos int
}

// NewDelay creates a delay of n samples. n <= 0 passes input through.
func NewDelay(n int) *Delay {
	if n < 0 {
		n = 0
	}
	return &Delay{buf: make([]float64, n)}
}

// Samples returns the delay length.
func (d *Delay) Samples() int { return len(d.buf) }

// Process writes src delayed by the line length to dst. dst and src may alias.
func (d *Delay) Process(dst, src []float64) {
	if len(d.buf) == 0 {
		copy(dst, src)
		return
	}
	for i, v := range src {
		out := d.buf[d.pos]
		d.buf[d.pos] = v
		d.pos++
		if d.pos >= len(d.buf) {
			d.pos = 0
		}
		dst[i] = out
	}
}

// Reset clears the line.
func (d *Delay) Reset() {
	clear(d.buf)
	d.pos = 0
}
