package visualizer

import (
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func newTestCanvas(cols, rows int) *BrailleCanvas {
	c := NewBrailleCanvas(cols, rows)
	c.SetColorProfile(termenv.Ascii)
	return c
}

func TestBrailleCanvasSizeInDots(t *testing.T) {
	c := newTestCanvas(10, 3)
	w, h := c.Size()
	if w != 20 || h != 12 {
		t.Fatalf("Size() = (%v, %v), want (20, 12)", w, h)
	}
}

func TestBrailleCanvasStrokeHorizontalLine(t *testing.T) {
	c := newTestCanvas(4, 2)
	StrokePolyline(c, StyleScope, Polyline{{0, 3}, {8, 3}})
	for x := range 8 {
		if got := c.Dot(x, 3); got != StyleScope {
			t.Fatalf("Dot(%d, 3) = %v, want StyleScope", x, got)
		}
	}
	if got := c.Dot(0, 4); got != StyleNone {
		t.Fatalf("Dot(0, 4) = %v, want StyleNone", got)
	}
}

func TestBrailleCanvasClipsOffSurfaceSegments(t *testing.T) {
	c := newTestCanvas(2, 1)
	StrokePolyline(c, StyleSpectrum, Polyline{{-100, -100}, {-50, -10}, {2, -1e9}, {2, 1e9}})
	StrokePolyline(c, StyleSpectrum, Polyline{{math.NaN(), 1}, {1, math.Inf(1)}})
	// Only the vertical segment at x=2 crosses the surface.
	for y := range 4 {
		for x := range 4 {
			want := StyleNone
			if x == 2 {
				want = StyleSpectrum
			}
			if got := c.Dot(x, y); got != want {
				t.Fatalf("Dot(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBrailleCanvasClear(t *testing.T) {
	c := newTestCanvas(2, 1)
	StrokePolyline(c, StylePhase, Polyline{{0, 0}, {3, 3}})
	c.Clear()
	for y := range 4 {
		for x := range 4 {
			if c.Dot(x, y) != StyleNone {
				t.Fatalf("Dot(%d, %d) set after Clear", x, y)
			}
		}
	}
}

func TestBrailleCanvasViewPattern(t *testing.T) {
	c := newTestCanvas(1, 1)
	// Left column, all four rows.
	StrokePolyline(c, StyleWaveform, Polyline{{0, 0}, {0, 3}})
	if got, want := c.View(), string(rune(0x2800+0x47)); got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestBrailleCanvasViewRows(t *testing.T) {
	c := newTestCanvas(3, 2)
	lines := strings.Split(c.View(), "\n")
	if len(lines) != 2 {
		t.Fatalf("View() rows = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 3 {
			t.Fatalf("row width = %d, want 3", n)
		}
	}
}

func TestBrailleCanvasViewColours(t *testing.T) {
	c := NewBrailleCanvas(1, 1)
	c.SetColorProfile(termenv.TrueColor)
	StrokePolyline(c, StyleScope, Polyline{{0, 0}, {1, 0}})
	view := c.View()
	if !strings.HasPrefix(view, "\x1b[38;2;") {
		t.Fatalf("View() = %q, want a 24-bit foreground sequence", view)
	}
	if strings.Count(view, "\x1b[38;2;") != 1 {
		t.Fatalf("View() = %q, want a single colour change", view)
	}
	if !strings.HasSuffix(view, "\x1b[0m") {
		t.Fatalf("View() = %q, want trailing reset", view)
	}
}

func TestDetectColorProfile(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want termenv.Profile
	}{
		{map[string]string{"NO_COLOR": "", "COLORTERM": "truecolor"}, termenv.Ascii},
		{map[string]string{"COLORTERM": "24bit", "TERM": "xterm"}, termenv.TrueColor},
		{map[string]string{"TERM": "xterm-256color"}, termenv.ANSI256},
		{map[string]string{"TERM": "dumb"}, termenv.Ascii},
		{map[string]string{"TERM": "xterm"}, termenv.ANSI},
	}
	for _, tt := range tests {
		lookup := func(k string) (string, bool) {
			v, ok := tt.env[k]
			return v, ok
		}
		if got := detectColorProfile(lookup); got != tt.want {
			t.Fatalf("detectColorProfile(%v) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestPaletteProfiles(t *testing.T) {
	if pal := newPalette(termenv.Ascii); pal.sequence(StyleScope) != "" {
		t.Fatalf("Ascii palette = %q, want no colour", pal.sequence(StyleScope))
	}
	for _, p := range []termenv.Profile{termenv.ANSI, termenv.ANSI256, termenv.TrueColor} {
		pal := newPalette(p)
		for s := StyleWaveform; s <= StylePhase; s++ {
			if seq := pal.sequence(s); !strings.HasPrefix(seq, "\x1b[") || !strings.HasSuffix(seq, "m") {
				t.Fatalf("profile %v style %d sequence = %q", p, s, seq)
			}
		}
	}
	pal := newPalette(termenv.TrueColor)
	if pal.sequence(Style(99)) != pal.sequence(StyleNone) {
		t.Fatal("unknown style should fall back to StyleNone")
	}
}
