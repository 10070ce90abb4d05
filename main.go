package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/hscope/internal/config"
	"github.com/olivier-w/hscope/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type flagValues struct {
	configPath string
	source     string
	toneHz     float64
	sampleRate int
	fftSize    int
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:   "hscope [file]",
		Short: "Terminal oscilloscope, spectrum and phase scope",
		Long: `hscope draws live audio as a waveform, a log-frequency spectrum,
a trigger-stabilised scope trace and a quadrature phase plot.

Audio comes from the default microphone, an audio file (mp3, wav, flac, ogg)
played through the default output, or a synthetic tone.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), fv, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fv.configPath, "config", "", "YAML config file")
	f.StringVar(&fv.source, "source", string(config.SourceMic), "audio source: mic, file or tone")
	f.Float64Var(&fv.toneHz, "tone-hz", 440, "tone frequency in Hz")
	f.IntVar(&fv.sampleRate, "sample-rate", 48000, "capture and tone sample rate in Hz")
	f.IntVar(&fv.fftSize, "fft-size", 2048, "spectral analyzer transform size (power of two)")
	f.StringVar(&fv.logFile, "log-file", "", "write logs to this file (default: discard)")
	f.StringVar(&fv.logLevel, "log-level", string(config.LogInfo), "log level: debug, info, warn, error")
	return cmd
}

// loadConfig layers the config file, explicitly set flags and the
// positional file argument, in that order.
func loadConfig(flags *pflag.FlagSet, fv flagValues, args []string) (*config.Config, error) {
	cfg := config.Default()
	if fv.configPath != "" {
		var err error
		cfg, err = config.Load(fv.configPath)
		if err != nil {
			return nil, err
		}
	}

	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source.Kind = config.SourceKind(fv.source)
		case "tone-hz":
			cfg.Source.ToneHz = fv.toneHz
		case "sample-rate":
			cfg.Source.SampleRate = fv.sampleRate
		case "fft-size":
			cfg.Analysis.FFTSize = fv.fftSize
		case "log-file":
			cfg.Log.File = fv.logFile
		case "log-level":
			cfg.Log.Level = config.LogLevel(fv.logLevel)
		}
	})
	if len(args) == 1 {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = args[0]
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the default slog logger. The terminal belongs to the
// UI, so logs go to a file or nowhere.
func setupLogging(cfg *config.Config) (func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.Level.Level()})))
	return closeFn, nil
}

func run(cfg *config.Config) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg, src)
	if err != nil {
		src.Close()
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := newStartupModel(ctx, sess, src.RequiresGesture(), viewOptions(cfg, src))
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(startupModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
