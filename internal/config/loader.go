package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olivier-w/hscope/internal/analysis"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path over [Default] and
// validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default]. Keys absent from the
// document keep their default values; unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Source
	if !cfg.Source.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("source.kind %q is invalid; valid values: mic, file, tone", cfg.Source.Kind))
	}
	if cfg.Source.Kind == SourceFile && cfg.Source.Path == "" {
		errs = append(errs, errors.New("source.path is required when source.kind is file"))
	}
	if cfg.Source.ToneHz <= 0 {
		errs = append(errs, fmt.Errorf("source.tone_hz %v must be positive", cfg.Source.ToneHz))
	}
	if cfg.Source.SampleRate < 8000 || cfg.Source.SampleRate > 384000 {
		errs = append(errs, fmt.Errorf("source.sample_rate %d is out of range [8000, 384000]", cfg.Source.SampleRate))
	}

	// Analysis
	a := cfg.Analysis
	if !analysis.ValidFFTSize(a.FFTSize) {
		errs = append(errs, fmt.Errorf("analysis.fft_size %d: %w", a.FFTSize, analysis.ErrFFTSize))
	}
	if !analysis.ValidFFTSize(a.QuadratureFFTSize) {
		errs = append(errs, fmt.Errorf("analysis.quadrature_fft_size %d: %w", a.QuadratureFFTSize, analysis.ErrFFTSize))
	}
	if a.HilbertLength < 1 {
		errs = append(errs, fmt.Errorf("analysis.hilbert_length %d must be at least 1", a.HilbertLength))
	}
	if a.Smoothing < 0 || a.Smoothing >= 1 {
		errs = append(errs, fmt.Errorf("analysis.smoothing %v is out of range [0, 1)", a.Smoothing))
	}
	if a.MinDecibels >= a.MaxDecibels {
		errs = append(errs, fmt.Errorf("analysis.min_decibels %v must be below max_decibels %v", a.MinDecibels, a.MaxDecibels))
	}

	// Display
	if cfg.Display.FPS < 1 || cfg.Display.FPS > 240 {
		errs = append(errs, fmt.Errorf("display.fps %d is out of range [1, 240]", cfg.Display.FPS))
	}
	if cfg.Display.LogFactor <= 0 {
		errs = append(errs, fmt.Errorf("display.log_factor %v must be positive", cfg.Display.LogFactor))
	}
	if cfg.Display.Width < 0 || cfg.Display.Height < 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must not be negative", cfg.Display.Width, cfg.Display.Height))
	}

	// Log
	if cfg.Log.Level != "" && !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}

	return errors.Join(errs...)
}
