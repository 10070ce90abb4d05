package hilbert

import (
	"math"
	"testing"
)

func TestDesignAntisymmetricWithZeroEvenTaps(t *testing.T) {
	for _, length := range []int{1, 3, 7, 31, 767} {
		k := Design(length, 48000)
		if k.Len() != length {
			t.Fatalf("Design(%d) len = %d, want %d", length, k.Len(), length)
		}
		mid := (length - 1) / 2
		for i := 0; i <= mid; i++ {
			hi, lo := k.Coeffs[mid+i], k.Coeffs[mid-i]
			if hi != -lo {
				t.Fatalf("Design(%d) offset %d: %v != -%v", length, i, hi, lo)
			}
			if i%2 == 0 && (hi != 0 || lo != 0) {
				t.Fatalf("Design(%d) offset %d = %v, want 0", length, i, hi)
			}
			if i%2 == 1 && hi <= 0 {
				t.Fatalf("Design(%d) offset %d = %v, want positive", length, i, hi)
			}
		}
	}
}

func TestDesignForcesOddLength(t *testing.T) {
	even := Design(768, 44100)
	odd := Design(767, 44100)
	if even.Len() != 767 {
		t.Fatalf("Design(768) len = %d, want 767", even.Len())
	}
	for i := range odd.Coeffs {
		if even.Coeffs[i] != odd.Coeffs[i] {
			t.Fatalf("coefficient %d differs: %v vs %v", i, even.Coeffs[i], odd.Coeffs[i])
		}
	}
	if even.Delay != odd.Delay {
		t.Fatalf("Delay = %v, want %v", even.Delay, odd.Delay)
	}
}

func TestDesignDelay(t *testing.T) {
	tests := []struct {
		length     int
		sampleRate float64
		wantMid    int
	}{
		{767, 48000, 383},
		{768, 48000, 383},
		{31, 44100, 15},
		{2, 8000, 0},
	}
	for _, tt := range tests {
		k := Design(tt.length, tt.sampleRate)
		if got := k.DelaySamples(); got != tt.wantMid {
			t.Fatalf("Design(%d).DelaySamples() = %d, want %d", tt.length, got, tt.wantMid)
		}
		want := float64(tt.wantMid) / tt.sampleRate
		if math.Abs(k.Delay-want) > 1e-15 {
			t.Fatalf("Design(%d).Delay = %v, want %v", tt.length, k.Delay, want)
		}
	}
}

func TestDesignFirstTapWeight(t *testing.T) {
	k := Design(7, 1)
	// mid = 3, i = 1
	w := 0.53836 + 0.46164*math.Cos(math.Pi/4)
	want := w * 2 / math.Pi
	if got := k.Coeffs[4]; math.Abs(got-want) > 1e-12 {
		t.Fatalf("Coeffs[4] = %v, want %v", got, want)
	}
}
