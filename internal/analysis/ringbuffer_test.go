package analysis

import (
	"slices"
	"testing"
)

func TestRingBufferLatestWraps(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]float64{1, 2, 3})
	rb.Write([]float64{4, 5})

	got := make([]float64, 4)
	if n := rb.Latest(got); n != 4 {
		t.Fatalf("Latest() = %d, want 4", n)
	}
	if want := []float64{2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Fatalf("Latest() = %v, want %v", got, want)
	}

	short := make([]float64, 2)
	rb.Latest(short)
	if want := []float64{4, 5}; !slices.Equal(short, want) {
		t.Fatalf("Latest(short) = %v, want %v", short, want)
	}
}

func TestRingBufferOversizedWriteKeepsTail(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Write([]float64{1, 2, 3, 4, 5, 6, 7})
	got := make([]float64, 3)
	rb.Latest(got)
	if want := []float64{5, 6, 7}; !slices.Equal(got, want) {
		t.Fatalf("Latest() = %v, want %v", got, want)
	}
}

func TestRingBufferLongDestination(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Write([]float64{8, 9})
	got := []float64{-1, -1, -1}
	if n := rb.Latest(got); n != 2 {
		t.Fatalf("Latest() = %d, want 2", n)
	}
	if want := []float64{8, 9, -1}; !slices.Equal(got, want) {
		t.Fatalf("Latest() = %v, want %v", got, want)
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Write([]float64{1, 2})
	rb.Clear()
	got := make([]float64, 2)
	rb.Latest(got)
	if want := []float64{0, 0}; !slices.Equal(got, want) {
		t.Fatalf("Latest() after Clear = %v, want %v", got, want)
	}
}
