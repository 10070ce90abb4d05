package analysis

import "sync"

// RingBuffer is a thread-safe circular sample buffer holding the most recent
// Cap() samples.
type RingBuffer struct {
	buf []float64
	w   int // write position
	mu  sync.Mutex
}

// NewRingBuffer creates a ring buffer holding size samples, initially zero.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, size)}
}

// Cap returns the fixed capacity.
func (rb *RingBuffer) Cap() int { return len(rb.buf) }

// Write appends samples, overwriting the oldest.
func (rb *RingBuffer) Write(p []float64) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.write(p)
}

func (rb *RingBuffer) write(p []float64) {
	size := len(rb.buf)
	if size == 0 {
		return
	}
	if len(p) >= size {
		copy(rb.buf, p[len(p)-size:])
		rb.w = 0
		return
	}
	n := copy(rb.buf[rb.w:], p)
	if n < len(p) {
		copy(rb.buf, p[n:])
	}
	rb.w = (rb.w + len(p)) % size
}

// Latest copies the most recent len(dst) samples into dst, oldest first.
// If dst is longer than the buffer, only the first Cap() entries are filled.
func (rb *RingBuffer) Latest(dst []float64) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.latest(dst)
}

func (rb *RingBuffer) latest(dst []float64) int {
	size := len(rb.buf)
	n := min(len(dst), size)
	if n == 0 {
		return 0
	}
	start := (rb.w - n + size) % size
	m := copy(dst[:n], rb.buf[start:])
	if m < n {
		copy(dst[m:n], rb.buf)
	}
	return n
}

// Clear zeroes the buffer.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	clear(rb.buf)
	rb.w = 0
}
