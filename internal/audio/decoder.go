package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

const decodeChunk = 4096

// pcmDecoder yields interleaved signed 16-bit little-endian PCM.
type pcmDecoder interface {
	io.Reader
	SampleRate() int
	ChannelCount() int
}

// newDecoder detects format by file extension and returns the matching decoder.
func newDecoder(f *os.File) (pcmDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// chunkReader turns a chunk-at-a-time decoder into an io.Reader of s16le PCM.
type chunkReader struct {
	next       func() ([]int16, error)
	sampleRate int
	channels   int
	buf        []byte
	pending    []byte
	err        error
}

func (c *chunkReader) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		samples, err := c.next()
		c.buf = appendPCM16(c.buf[:0], samples)
		c.pending = c.buf
		if err != nil {
			c.err = err
		}
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *chunkReader) SampleRate() int   { return c.sampleRate }
func (c *chunkReader) ChannelCount() int { return c.channels }

// --- MP3 decoder ---

type mp3Decoder struct {
	*mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec}, nil
}

// go-mp3 always emits 16-bit stereo.
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- WAV decoder ---

func newWAVDecoder(f *os.File) (*chunkReader, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV encoding %d (want integer PCM)", dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	buf := &goaudio.IntBuffer{
		Data:   make([]int, decodeChunk*channels),
		Format: dec.Format(),
	}
	out := make([]int16, 0, len(buf.Data))

	return &chunkReader{
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		next: func() ([]int16, error) {
			n, err := dec.PCMBuffer(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading WAV PCM data: %w", err)
			}
			if n == 0 {
				return nil, io.EOF
			}
			out = out[:0]
			for _, v := range buf.Data[:n] {
				if bitDepth == 8 {
					// 8-bit WAV is unsigned
					v -= 128
				}
				out = append(out, clamp16(v, bitDepth))
			}
			return out, nil
		},
	}, nil
}

// --- FLAC decoder ---

func newFLACDecoder(f *os.File) (*chunkReader, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	channels := int(stream.Info.NChannels)
	bps := int(stream.Info.BitsPerSample)
	var out []int16

	return &chunkReader{
		sampleRate: int(stream.Info.SampleRate),
		channels:   channels,
		next: func() ([]int16, error) {
			frame, err := stream.ParseNext()
			if err != nil {
				return nil, err
			}
			nSamples := int(frame.Subframes[0].NSamples)
			out = out[:0]
			for i := range nSamples {
				for ch := range channels {
					out = append(out, clamp16(int(frame.Subframes[ch].Samples[i]), bps))
				}
			}
			return out, nil
		},
	}, nil
}

// --- OGG Vorbis decoder ---

func newOGGDecoder(f *os.File) (*chunkReader, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	samples := make([]float32, decodeChunk*channels)
	out := make([]int16, 0, len(samples))

	return &chunkReader{
		sampleRate: reader.SampleRate(),
		channels:   channels,
		next: func() ([]int16, error) {
			n, err := reader.Read(samples)
			out = out[:0]
			for _, s := range samples[:n] {
				s = max(-1, min(1, s))
				out = append(out, int16(s*32767))
			}
			if n == 0 && err == nil {
				err = io.EOF
			}
			return out, err
		},
	}, nil
}
