package audio

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestToneGenerate(t *testing.T) {
	tone := NewTone(1000, 0.5, 8000)
	buf := make([]float64, 16)
	tone.Generate(buf)
	for i, v := range buf {
		want := 0.5 * math.Sin(2*math.Pi*float64(i)/8)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestToneDefaultRate(t *testing.T) {
	if got := NewTone(440, 1, 0).SampleRate(); got != DefaultSampleRate {
		t.Fatalf("SampleRate() = %v, want %v", got, DefaultSampleRate)
	}
}

func TestToneStartClose(t *testing.T) {
	tone := NewTone(440, 1, 48000)
	got := make(chan int, 64)
	err := tone.Start(context.Background(), SinkFunc(func(s []float64) {
		select {
		case got <- len(s):
		default:
		}
	}))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	select {
	case n := <-got:
		if n != toneBlock {
			t.Fatalf("block length = %d, want %d", n, toneBlock)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no samples delivered")
	}
	if err := tone.Start(context.Background(), SinkFunc(func([]float64) {})); err == nil {
		t.Fatal("second Start() error = nil, want error")
	}
	if err := tone.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestToneStopsOnContext(t *testing.T) {
	tone := NewTone(440, 1, 48000)
	ctx, cancel := context.WithCancel(context.Background())
	if err := tone.Start(ctx, SinkFunc(func([]float64) {})); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()
	select {
	case <-tone.done:
	case <-time.After(2 * time.Second):
		t.Fatal("generator still running after cancel")
	}
}
