// Package config holds the hscope configuration schema and its YAML loader.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level converts l to a slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// SourceKind selects where samples come from.
type SourceKind string

const (
	SourceMic  SourceKind = "mic"
	SourceFile SourceKind = "file"
	SourceTone SourceKind = "tone"
)

// IsValid reports whether k is a recognised source kind.
func (k SourceKind) IsValid() bool {
	return k == SourceMic || k == SourceFile || k == SourceTone
}

// Config is the root of the configuration file.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Display  DisplayConfig  `yaml:"display"`
	Log      LogConfig      `yaml:"log"`
}

// SourceConfig selects and parameterises the audio input.
type SourceConfig struct {
	Kind SourceKind `yaml:"kind"`

	// Path is the audio file played when Kind is "file".
	Path string `yaml:"path"`

	// ToneHz is the frequency of the synthetic tone.
	ToneHz float64 `yaml:"tone_hz"`

	// SampleRate is requested from the capture device and the tone
	// generator. Files always use their own rate.
	SampleRate int `yaml:"sample_rate"`
}

// AnalysisConfig sizes the spectral and quadrature analyzers.
type AnalysisConfig struct {
	FFTSize           int     `yaml:"fft_size"`
	QuadratureFFTSize int     `yaml:"quadrature_fft_size"`
	HilbertLength     int     `yaml:"hilbert_length"`
	Smoothing         float64 `yaml:"smoothing"`
	MinDecibels       float64 `yaml:"min_decibels"`
	MaxDecibels       float64 `yaml:"max_decibels"`
}

// DisplayConfig controls the canvas and frame pacing.
type DisplayConfig struct {
	FPS       int     `yaml:"fps"`
	LogFactor float64 `yaml:"log_factor"`

	// Width and Height fix the canvas size in terminal cells. Zero follows
	// the terminal.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LogConfig routes diagnostics. An empty File discards them, since the
// terminal belongs to the UI.
type LogConfig struct {
	Level LogLevel `yaml:"level"`
	File  string   `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:       SourceMic,
			ToneHz:     440,
			SampleRate: 48000,
		},
		Analysis: AnalysisConfig{
			FFTSize:           2048,
			QuadratureFFTSize: 1024,
			HilbertLength:     768,
			Smoothing:         0.8,
			MinDecibels:       -130,
			MaxDecibels:       -30,
		},
		Display: DisplayConfig{
			FPS:       60,
			LogFactor: 20,
		},
		Log: LogConfig{Level: LogInfo},
	}
}
