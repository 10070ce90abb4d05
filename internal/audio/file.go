package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	otoOnce   sync.Once
	otoCtx    *oto.Context
	otoErr    error
	otoFormat [2]int // sample rate, channels
)

// initOto opens the process-wide output context. Oto allows one context per
// process, so later calls must ask for the same format.
func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
		}
		otoFormat = [2]int{sampleRate, channels}
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoFormat != [2]int{sampleRate, channels} {
		return nil, fmt.Errorf("audio output already open at %d Hz, %d channels", otoFormat[0], otoFormat[1])
	}
	return otoCtx, nil
}

// tapReader forwards PCM to the output device and hands every complete frame
// to the sink as mono floats as the device pulls it.
type tapReader struct {
	r        io.Reader
	channels int
	sink     Sink

	mu      sync.Mutex
	pending []byte
	mono    []float64
	eof     bool
}

func (t *tapReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	if n > 0 {
		t.pending = append(t.pending, p[:n]...)
		frameSize := t.channels * 2
		whole := len(t.pending) - len(t.pending)%frameSize
		t.mono = downmixPCM16(t.mono, t.pending[:whole], t.channels)
		t.pending = append(t.pending[:0], t.pending[whole:]...)
		if len(t.mono) > 0 {
			t.sink.Write(t.mono)
		}
	}
	if err != nil {
		t.eof = true
	}
	return n, err
}

func (t *tapReader) done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eof
}

// FileSource plays a decoded audio file and taps what is played.
type FileSource struct {
	path  string
	title string
	file  *os.File
	dec   pcmDecoder

	mu     sync.Mutex
	player *oto.Player
	cancel context.CancelFunc
	closed bool
}

// OpenFile opens and probes an audio file without starting playback.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if dec.SampleRate() <= 0 || dec.ChannelCount() < 1 {
		f.Close()
		return nil, fmt.Errorf("unsupported stream: %d Hz, %d channels", dec.SampleRate(), dec.ChannelCount())
	}
	return &FileSource{
		path:  path,
		title: ReadTitle(path),
		file:  f,
		dec:   dec,
	}, nil
}

func (s *FileSource) Name() string { return s.title }

func (s *FileSource) SampleRate() float64 { return float64(s.dec.SampleRate()) }

func (s *FileSource) RequiresGesture() bool { return false }

// Start begins playback through the default output device.
func (s *FileSource) Start(ctx context.Context, sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("audio: file source closed")
	}
	if s.player != nil {
		return errors.New("audio: file source already started")
	}

	out, err := initOto(s.dec.SampleRate(), s.dec.ChannelCount())
	if err != nil {
		return fmt.Errorf("%w: open output device: %w", ErrUnavailable, err)
	}

	tap := &tapReader{r: s.dec, channels: s.dec.ChannelCount(), sink: sink}
	s.player = out.NewPlayer(tap)
	s.player.Play()
	slog.Info("file playback started", "path", s.path, "sampleRate", s.dec.SampleRate(), "channels", s.dec.ChannelCount())

	ctx, s.cancel = context.WithCancel(ctx)
	go s.monitor(ctx, tap)
	return nil
}

func (s *FileSource) monitor(ctx context.Context, tap *tapReader) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.mu.Lock()
			playing := s.player != nil && s.player.IsPlaying()
			s.mu.Unlock()
			if tap.done() && !playing {
				slog.Info("file playback finished", "path", s.path)
				return
			}
		}
	}
}

// Close stops playback and releases the file.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	var errs []error
	if s.player != nil {
		s.player.Pause()
		errs = append(errs, s.player.Close())
	}
	errs = append(errs, s.file.Close())
	return errors.Join(errs...)
}
