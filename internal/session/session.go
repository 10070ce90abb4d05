// Package session owns one visualizer instance: the audio source, both
// analyzers and the renderer, plus the single acquisition transition.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/olivier-w/hscope/internal/analysis"
	"github.com/olivier-w/hscope/internal/audio"
	"github.com/olivier-w/hscope/internal/config"
	"github.com/olivier-w/hscope/internal/visualizer"
	"gonum.org/v1/gonum/floats"
)

// ErrAcquired is returned when Acquire is called more than once.
var ErrAcquired = errors.New("session: acquisition already attempted")

// State is the acquisition state of a session.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session wires a source into the spectral and quadrature analyzers and
// renders frames from them once the source is live.
type Session struct {
	source     audio.Source
	analyzer   *analysis.Analyzer
	quadrature *analysis.Quadrature
	renderer   *visualizer.Renderer

	mu        sync.Mutex
	attempted bool
	state     State
	err       error

	level atomic.Uint64 // float64 bits of the latest block RMS
}

// New builds the analysis graph for src from cfg. The source is not started.
func New(cfg *config.Config, src audio.Source) (*Session, error) {
	an, err := analysis.NewAnalyzer(analysis.Options{
		FFTSize:     cfg.Analysis.FFTSize,
		Smoothing:   cfg.Analysis.Smoothing,
		MinDecibels: cfg.Analysis.MinDecibels,
		MaxDecibels: cfg.Analysis.MaxDecibels,
	})
	if err != nil {
		return nil, fmt.Errorf("session: spectral analyzer: %w", err)
	}
	quad, err := analysis.NewQuadrature(analysis.QuadratureOptions{
		FFTSize:      cfg.Analysis.QuadratureFFTSize,
		FilterLength: cfg.Analysis.HilbertLength,
		SampleRate:   src.SampleRate(),
	})
	if err != nil {
		return nil, fmt.Errorf("session: quadrature analyzer: %w", err)
	}

	return &Session{
		source:     src,
		analyzer:   an,
		quadrature: quad,
		renderer:   visualizer.NewRenderer(an, quad, cfg.Display.LogFactor),
	}, nil
}

// Source returns the audio source the session was built with.
func (s *Session) Source() audio.Source { return s.source }

// State reports the current acquisition state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the acquisition failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Acquire starts the source and moves the session to Ready or Failed. It may
// be attempted once; later calls return ErrAcquired. If ctx ends before the
// source is live, the session stays Pending and ctx's error is returned.
// The source keeps streaming until ctx is done or Close is called.
func (s *Session) Acquire(ctx context.Context) error {
	s.mu.Lock()
	if s.attempted {
		s.mu.Unlock()
		return ErrAcquired
	}
	s.attempted = true
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	sink := audio.Fanout{s.analyzer, s.quadrature, audio.SinkFunc(s.measure)}
	err := s.source.Start(ctx, sink)
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return ctxErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed
		s.err = err
		slog.Error("audio acquisition failed", "source", s.source.Name(), "err", err)
		return err
	}
	s.state = Ready
	slog.Info("audio acquired", "source", s.source.Name(), "sampleRate", s.source.SampleRate())
	return nil
}

func (s *Session) measure(samples []float64) {
	if len(samples) == 0 {
		return
	}
	rms := floats.Norm(samples, 2) / math.Sqrt(float64(len(samples)))
	s.level.Store(math.Float64bits(rms))
}

// Level returns the RMS of the most recent input block.
func (s *Session) Level() float64 {
	return math.Float64frombits(s.level.Load())
}

// Render draws one frame onto surf. Nothing is drawn unless the session is
// Ready, in which case ok is true.
func (s *Session) Render(surf visualizer.Surface) (f visualizer.Frame, ok bool) {
	if s.State() != Ready {
		return visualizer.Frame{}, false
	}
	return s.renderer.Render(surf), true
}

// Close stops the source.
func (s *Session) Close() error {
	return s.source.Close()
}
