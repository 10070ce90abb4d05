package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"
)

const DefaultSampleRate = 48000

// Capture streams mono float samples from the default microphone.
type Capture struct {
	sampleRate uint32

	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	buf     []float64
	stopped bool
}

// NewCapture prepares a capture at the requested sample rate. Nothing is
// opened until Start.
func NewCapture(sampleRate int) *Capture {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Capture{sampleRate: uint32(sampleRate)}
}

func (c *Capture) Name() string { return "microphone" }

func (c *Capture) SampleRate() float64 { return float64(c.sampleRate) }

// RequiresGesture is true: opening the microphone is a permission step.
func (c *Capture) RequiresGesture() bool { return true }

func (c *Capture) Start(ctx context.Context, sink Sink) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device != nil {
		return errors.New("audio: capture already started")
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		slog.Debug("audio backend", "message", strings.TrimSpace(msg))
	})
	if err != nil {
		return fmt.Errorf("%w: init backend: %w", ErrUnavailable, err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = 1
	cfg.SampleRate = c.sampleRate
	cfg.Alsa.NoMMap = 1

	onData := func(_, input []byte, _ uint32) {
		c.buf = decodeFloat32(c.buf, input)
		sink.Write(c.buf)
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		freeContext(mctx)
		return fmt.Errorf("%w: open capture device: %w", ErrUnavailable, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		freeContext(mctx)
		return fmt.Errorf("%w: start capture device: %w", ErrUnavailable, err)
	}

	c.ctx = mctx
	c.device = device
	slog.Info("microphone capture started", "sampleRate", c.sampleRate)

	go func() {
		<-ctx.Done()
		c.Close()
	}()
	return nil
}

// Close stops the device and releases the backend. Safe to call repeatedly.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.device == nil {
		c.stopped = true
		return nil
	}
	c.stopped = true
	err := c.device.Stop()
	c.device.Uninit()
	freeContext(c.ctx)
	return err
}

func freeContext(ctx *malgo.AllocatedContext) {
	if err := ctx.Uninit(); err != nil {
		slog.Warn("audio backend uninit failed", "err", err)
	}
	ctx.Free()
}
