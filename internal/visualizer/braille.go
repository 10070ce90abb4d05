package visualizer

import (
	"strings"

	"github.com/muesli/termenv"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// BrailleCanvas is a Surface backed by a grid of terminal cells, each a 2x4
// Braille dot matrix. Surface units are dots.
type BrailleCanvas struct {
	cols, rows int
	dots       []Style // dot-major, width*height, StyleNone when unset
	style      Style
	path       []Polyline
	pal        palette
}

// NewBrailleCanvas creates a canvas of cols x rows terminal cells.
func NewBrailleCanvas(cols, rows int) *BrailleCanvas {
	c := &BrailleCanvas{pal: newPalette(currentColorProfile())}
	c.Resize(cols, rows)
	return c
}

// SetColorProfile changes how View colours dots.
func (c *BrailleCanvas) SetColorProfile(p termenv.Profile) { c.pal = newPalette(p) }

// Resize changes the cell grid and clears the canvas.
func (c *BrailleCanvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.dots = make([]Style, c.cols*2*c.rows*4)
	c.path = c.path[:0]
}

// Cells returns the grid size in terminal cells.
func (c *BrailleCanvas) Cells() (cols, rows int) { return c.cols, c.rows }

func (c *BrailleCanvas) dotSize() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *BrailleCanvas) Size() (width, height float64) {
	w, h := c.dotSize()
	return float64(w), float64(h)
}

func (c *BrailleCanvas) Clear() {
	clear(c.dots)
}

func (c *BrailleCanvas) SetStrokeStyle(s Style) { c.style = s }

func (c *BrailleCanvas) BeginPath() { c.path = c.path[:0] }

func (c *BrailleCanvas) MoveTo(x, y float64) {
	c.path = append(c.path, Polyline{{X: x, Y: y}})
}

func (c *BrailleCanvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := len(c.path) - 1
	c.path[last] = append(c.path[last], Point{X: x, Y: y})
}

// Stroke rasterizes every subpath of the current path in the current style.
func (c *BrailleCanvas) Stroke() {
	w, h := c.dotSize()
	fw, fh := float64(w), float64(h)
	plot := func(x, y int) {
		c.dots[y*w+x] = c.style
	}
	for _, sub := range c.path {
		if len(sub) == 1 {
			p := sub[0]
			if x0, y0, _, _, ok := clipSegment(p.X, p.Y, p.X, p.Y, fw, fh); ok {
				plot(dotIndex(x0, w), dotIndex(y0, h))
			}
			continue
		}
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			x0, y0, x1, y1, ok := clipSegment(a.X, a.Y, b.X, b.Y, fw, fh)
			if !ok {
				continue
			}
			drawLine(dotIndex(x0, w), dotIndex(y0, h), dotIndex(x1, w), dotIndex(y1, h), plot)
		}
	}
}

// Dot returns the style of the dot at (x, y), StyleNone when unset or out of range.
func (c *BrailleCanvas) Dot(x, y int) Style {
	w, h := c.dotSize()
	if x < 0 || x >= w || y < 0 || y >= h {
		return StyleNone
	}
	return c.dots[y*w+x]
}

// View renders the canvas as rows of Braille characters, coloured by the
// last style drawn into each cell.
func (c *BrailleCanvas) View() string {
	w, _ := c.dotSize()
	var out strings.Builder
	color := ansiState{pal: &c.pal}
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			var pattern uint
			var top Style
			for dx := range 2 {
				for dy := range 4 {
					s := c.dots[(row*4+dy)*w+col*2+dx]
					if s == StyleNone {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					top = max(top, s)
				}
			}
			if pattern == 0 {
				color.reset(&out)
				out.WriteRune(0x2800)
				continue
			}
			color.set(&out, top)
			out.WriteRune(rune(0x2800 + pattern))
		}
		color.reset(&out)
	}
	return out.String()
}
