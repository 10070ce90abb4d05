package util

import (
	"fmt"
	"strconv"
)

// FormatSampleRate formats a rate in Hz as kHz, e.g. "44.1 kHz".
func FormatSampleRate(hz float64) string {
	if hz <= 0 {
		return "-- kHz"
	}
	return strconv.FormatFloat(hz/1000, 'f', -1, 64) + " kHz"
}

// FormatDecibels formats a level with one decimal, e.g. "-12.3 dB".
func FormatDecibels(db float64) string {
	return fmt.Sprintf("%.1f dB", db)
}
