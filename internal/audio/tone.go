package audio

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

const toneBlock = 512

// Tone generates a sine wave in real time.
type Tone struct {
	freq       float64
	amplitude  float64
	sampleRate float64
	phase      float64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTone creates a generator for a sine of freq Hz at the given amplitude.
func NewTone(freq, amplitude float64, sampleRate int) *Tone {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Tone{freq: freq, amplitude: amplitude, sampleRate: float64(sampleRate)}
}

func (t *Tone) Name() string { return "tone" }

func (t *Tone) SampleRate() float64 { return t.sampleRate }

func (t *Tone) RequiresGesture() bool { return false }

// Generate fills dst with the next len(dst) samples, continuing the phase.
func (t *Tone) Generate(dst []float64) {
	step := 2 * math.Pi * t.freq / t.sampleRate
	for i := range dst {
		dst[i] = t.amplitude * math.Sin(t.phase)
		t.phase += step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

// Start emits one block per block period until ctx is done or Close is called.
func (t *Tone) Start(ctx context.Context, sink Sink) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return errors.New("audio: tone already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	period := time.Duration(float64(toneBlock) / t.sampleRate * float64(time.Second))
	go t.run(ctx, sink, period)
	return nil
}

func (t *Tone) run(ctx context.Context, sink Sink, period time.Duration) {
	defer close(t.done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	block := make([]float64, toneBlock)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Generate(block)
			sink.Write(block)
		}
	}
}

// Close stops the generator and waits for the emitting goroutine to exit.
func (t *Tone) Close() error {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
