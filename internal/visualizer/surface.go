// Package visualizer converts analysis snapshots into screen-space polylines
// and strokes them onto an immediate-mode drawing surface.
package visualizer

// Style selects the stroke colour of the next Stroke.
type Style uint8

const (
	StyleNone Style = iota
	StyleWaveform
	StyleSpectrum
	StyleScope
	StylePhase
)

// Surface is a 2D immediate-mode canvas with a top-left origin.
type Surface interface {
	Size() (width, height float64)
	Clear()
	SetStrokeStyle(Style)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Polyline is an open sequence of connected points.
type Polyline []Point

// StrokePolyline draws p as one path: move to the first point, line to the
// rest, stroke once.
func StrokePolyline(s Surface, style Style, p Polyline) {
	if len(p) == 0 {
		return
	}
	s.SetStrokeStyle(style)
	s.BeginPath()
	s.MoveTo(p[0].X, p[0].Y)
	for _, pt := range p[1:] {
		s.LineTo(pt.X, pt.Y)
	}
	s.Stroke()
}
