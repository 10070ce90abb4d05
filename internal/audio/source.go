// Package audio supplies live mono sample streams to the analysis pipeline:
// microphone capture, file playback and a synthetic tone.
package audio

import (
	"context"
	"errors"
)

// ErrUnavailable reports that audio input could not be acquired: permission
// refused, no device, or the backend failed to start.
var ErrUnavailable = errors.New("audio input unavailable")

// Sink receives blocks of mono samples in [-1, 1]. Write is called from the
// source's own goroutine and must not retain samples.
type Sink interface {
	Write(samples []float64)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(samples []float64)

func (f SinkFunc) Write(samples []float64) { f(samples) }

// Fanout forwards every block to each branch in order.
type Fanout []Sink

func (f Fanout) Write(samples []float64) {
	for _, s := range f {
		s.Write(samples)
	}
}

// Source produces a live mono stream.
type Source interface {
	Name() string
	SampleRate() float64
	// RequiresGesture reports whether acquisition needs an explicit user
	// action before Start may be called.
	RequiresGesture() bool
	// Start acquires the input and begins delivering samples to sink on a
	// separate goroutine. It returns once streaming has begun or failed.
	// Streaming stops when ctx is done or Close is called.
	Start(ctx context.Context, sink Sink) error
	Close() error
}
