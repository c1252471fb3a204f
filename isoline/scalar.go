package isoline

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tuikit/gfx/canvas"
)

// Channel selects the scalar a contour field is derived from.
type Channel uint8

const (
	// Luma is ITU-R BT.601 brightness, 0-255.
	Luma Channel = iota
	Red
	Green
	Blue
	Alpha
	// Lightness is the perceptual Oklab L component, 0-1.
	Lightness
	// Hue is the Oklch hue angle in degrees, [0,360).
	Hue
)

// Scalar extracts the driving scalar for a color. Ranges differ by channel:
// Luma and the raw channels are 0-255, Lightness 0-1, Hue 0-360.
func Scalar(c canvas.Color, ch Channel) float64 {
	switch ch {
	case Red:
		return float64(c.R())
	case Green:
		return float64(c.G())
	case Blue:
		return float64(c.B())
	case Alpha:
		return float64(c.A())
	case Lightness:
		l, _, _ := oklab(c)
		return l
	case Hue:
		_, a, b := oklab(c)
		h := math.Atan2(b, a) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		return h
	default:
		return c.Luma()
	}
}

// oklab converts sRGB to Oklab: linearize, project to LMS, cube-root, rotate.
func oklab(c canvas.Color) (l, a, b float64) {
	col := colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
	lr, lg, lb := col.LinearRgb()

	lm := 0.4122214708*lr + 0.5363325363*lg + 0.0514459929*lb
	mm := 0.2119034982*lr + 0.6806995451*lg + 0.1073969566*lb
	sm := 0.0883024619*lr + 0.2817188376*lg + 0.6299787005*lb

	lc := math.Cbrt(lm)
	mc := math.Cbrt(mm)
	sc := math.Cbrt(sm)

	l = 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	a = 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	b = 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc
	return
}
