package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// meterFloor is the quietest level the meter shows, in dBFS.
const meterFloor = -90.0

// levelDecibels converts an RMS level to dBFS, clamped at meterFloor.
func levelDecibels(rms float64) float64 {
	if rms <= 0 || math.IsNaN(rms) {
		return meterFloor
	}
	return max(meterFloor, 20*math.Log10(rms))
}

// levelMeter eases the displayed level toward the measured one.
type levelMeter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newLevelMeter(fps int) levelMeter {
	return levelMeter{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

// step advances one frame toward db and returns the fill ratio in [0, 1].
func (l *levelMeter) step(db float64) float64 {
	target := 1 - db/meterFloor
	l.pos, l.vel = l.spring.Update(l.pos, l.vel, target)
	return min(1, max(0, l.pos))
}

func renderMeter(ratio float64, width int) string {
	if width < 4 {
		width = 4
	}
	ratio = min(1, max(0, ratio))
	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}
