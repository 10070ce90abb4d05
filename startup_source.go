package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/hscope/internal/audio"
	"github.com/olivier-w/hscope/internal/config"
	"github.com/olivier-w/hscope/internal/media"
	"github.com/olivier-w/hscope/internal/ui"
)

// toneAmplitude leaves headroom so the level meter does not pin.
const toneAmplitude = 0.8

func newSource(cfg *config.Config) (audio.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		path := cfg.Source.Path
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		if !media.IsSupportedPath(path) {
			ext := strings.ToLower(filepath.Ext(path))
			return nil, fmt.Errorf("unsupported format %s (supported: %s)", ext, media.SupportedExtsList())
		}
		return audio.OpenFile(path)
	case config.SourceTone:
		return audio.NewTone(cfg.Source.ToneHz, toneAmplitude, cfg.Source.SampleRate), nil
	default:
		return audio.NewCapture(cfg.Source.SampleRate), nil
	}
}

func viewOptions(cfg *config.Config, src audio.Source) ui.Options {
	title := src.Name()
	if cfg.Source.Kind == config.SourceTone {
		title = fmt.Sprintf("tone %g Hz", cfg.Source.ToneHz)
	}
	return ui.Options{
		Title:      title,
		SampleRate: src.SampleRate(),
		FPS:        cfg.Display.FPS,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
	}
}
