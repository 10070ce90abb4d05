package visualizer

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

var (
	profileOnce sync.Once
	profile     termenv.Profile
)

func currentColorProfile() termenv.Profile {
	profileOnce.Do(func() {
		profile = detectColorProfile(os.LookupEnv)
	})
	return profile
}

// detectColorProfile reads colour support from the environment alone. The
// canvas renders to a string the UI writes later, so no terminal is queried.
func detectColorProfile(lookup func(string) (string, bool)) termenv.Profile {
	if _, disabled := lookup("NO_COLOR"); disabled {
		return termenv.Ascii
	}
	term, _ := lookup("TERM")
	colorTerm, _ := lookup("COLORTERM")
	term = strings.ToLower(term)
	colorTerm = strings.ToLower(colorTerm)
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case term == "", term == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

// strokeColors is indexed by Style.
var strokeColors = [...]string{
	StyleNone:     "#C8C8C8",
	StyleWaveform: "#5A6078",
	StyleSpectrum: "#00AEFF",
	StyleScope:    "#3CE074",
	StylePhase:    "#FF8C00",
}

// palette holds the SGR prefix of every style for one profile. Entries are
// empty when the profile has no colour.
type palette [len(strokeColors)]string

func newPalette(p termenv.Profile) palette {
	var pal palette
	if p == termenv.Ascii {
		return pal
	}
	for s, hex := range strokeColors {
		if seq := p.Color(hex).Sequence(false); seq != "" {
			pal[s] = termenv.CSI + seq + "m"
		}
	}
	return pal
}

func (p *palette) sequence(s Style) string {
	if int(s) >= len(p) {
		s = StyleNone
	}
	return p[s]
}

// ansiState emits a colour change only when the style differs from the
// previous cell.
type ansiState struct {
	pal     *palette
	current Style
	active  bool
}

func (s *ansiState) set(sb *strings.Builder, style Style) {
	seq := s.pal.sequence(style)
	if seq == "" || (s.active && s.current == style) {
		return
	}
	sb.WriteString(seq)
	s.current = style
	s.active = true
}

func (s *ansiState) reset(sb *strings.Builder) {
	if !s.active {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.active = false
}
