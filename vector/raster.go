package vector

import (
	"math"
	"sort"

	"github.com/tuikit/gfx/canvas"
)

// Fill rasterizes subpaths with the current surface color using a scanline
// even-odd rule evaluated jointly across all subpaths, so an oppositely
// wound inner subpath subtracts a hole from the outer one.
func Fill(s *canvas.Surface, subs []Subpath) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sp := range subs {
		for _, p := range sp.Points {
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if minY > maxY {
		return
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.Height()-1 {
		y1 = s.Height() - 1
	}

	var xs []float64
	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, sp := range subs {
			pts := sp.Points
			n := len(pts)
			if n < 2 {
				continue
			}
			// the wrap edge closes each subpath for filling purposes
			for i := 0; i < n; i++ {
				a, b := pts[i], pts[(i+1)%n]
				if (a.Y <= yc) != (b.Y <= yc) {
					xs = append(xs, a.X+(yc-a.Y)*(b.X-a.X)/(b.Y-a.Y))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Ceil(xs[i+1] - 0.5))
			for px := start; px < end; px++ {
				s.SetPixel(px, y, true)
			}
		}
	}
}

// Stroke draws each consecutive vertex pair as a line. Open subpaths are not
// implicitly closed; closed ones already carry their closing vertex.
func Stroke(s *canvas.Surface, subs []Subpath) {
	for _, sp := range subs {
		for i := 0; i+1 < len(sp.Points); i++ {
			a, b := sp.Points[i], sp.Points[i+1]
			s.DrawLine(iround(a.X), iround(a.Y), iround(b.X), iround(b.Y))
		}
	}
}

// FillPath parses, tessellates and fills a path description.
func FillPath(s *canvas.Surface, d string) {
	Fill(s, Tessellate(Parse(d)))
}

// StrokePath parses, tessellates and strokes a path description.
func StrokePath(s *canvas.Surface, d string) {
	Stroke(s, Tessellate(Parse(d)))
}

// FillPathAspect fills with X coordinates corrected by the surface's pixel
// aspect ratio.
func FillPathAspect(s *canvas.Surface, d string) {
	Fill(s, TessellateAspect(Parse(d), s.PixelAspectRatio()))
}

// StrokePathAspect strokes with aspect-corrected X coordinates.
func StrokePathAspect(s *canvas.Surface, d string) {
	Stroke(s, TessellateAspect(Parse(d), s.PixelAspectRatio()))
}

func iround(v float64) int {
	return int(math.Round(v))
}
