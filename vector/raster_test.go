package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuikit/gfx/canvas"
)

func newTestSurface() *canvas.Surface {
	return canvas.New(10, 7, canvas.DefaultOptions()) // 20x21 pixels
}

func TestFillRectangle(t *testing.T) {
	s := newTestSurface()
	FillPath(s, "M 2 2 L 12 2 L 12 12 L 2 12 Z")
	assert.True(t, s.Pixel(5, 5))
	assert.True(t, s.Pixel(2, 2))
	assert.True(t, s.Pixel(11, 11))
	assert.False(t, s.Pixel(12, 5), "right edge is exclusive")
	assert.False(t, s.Pixel(1, 5))
	assert.False(t, s.Pixel(13, 13))
}

// Even-odd filling leaves a hole where a second subpath overlaps the first,
// regardless of winding direction.
func TestFillEvenOddHole(t *testing.T) {
	s := newTestSurface()
	FillPath(s, "M 0 0 L 16 0 L 16 16 L 0 16 Z M 4 4 L 4 12 L 12 12 L 12 4 Z")
	assert.True(t, s.Pixel(1, 8), "ring is filled")
	assert.True(t, s.Pixel(14, 8))
	assert.False(t, s.Pixel(8, 8), "hole stays empty")
	assert.False(t, s.Pixel(5, 5))
}

func TestFillTriangle(t *testing.T) {
	s := newTestSurface()
	FillPath(s, "M 0 0 L 16 0 L 0 16 Z")
	assert.True(t, s.Pixel(1, 1))
	assert.True(t, s.Pixel(7, 1))
	assert.False(t, s.Pixel(15, 15), "outside the hypotenuse")
}

func TestFillOpenSubpathIsClosedImplicitly(t *testing.T) {
	s := newTestSurface()
	FillPath(s, "M 2 2 L 12 2 L 12 12 L 2 12")
	assert.True(t, s.Pixel(7, 7))
}

func TestFillUsesCurrentColor(t *testing.T) {
	s := newTestSurface()
	s.SetColor(canvas.RGB(0, 0xff, 0))
	FillPath(s, "M 0 0 L 8 0 L 8 8 L 0 8 Z")
	assert.Equal(t, canvas.RGB(0, 0xff, 0), s.PixelColor(4, 4))
}

func TestStrokeOutlineOnly(t *testing.T) {
	s := newTestSurface()
	StrokePath(s, "M 2 2 L 12 2 L 12 12 L 2 12 Z")
	assert.True(t, s.Pixel(7, 2))
	assert.True(t, s.Pixel(12, 7))
	assert.True(t, s.Pixel(2, 7), "closing edge is drawn")
	assert.False(t, s.Pixel(7, 7), "interior stays empty")
}

func TestStrokeOpenPathHasNoClosingEdge(t *testing.T) {
	s := newTestSurface()
	StrokePath(s, "M 2 2 L 12 2 L 12 12")
	assert.True(t, s.Pixel(7, 2))
	assert.True(t, s.Pixel(12, 7))
	assert.False(t, s.Pixel(7, 7))
	assert.False(t, s.Pixel(2, 7), "no edge back to the start")
}

func TestFillDegeneratePaths(t *testing.T) {
	s := newTestSurface()
	FillPath(s, "")
	FillPath(s, "M 5 5")
	FillPath(s, "M 5 5 L 5 5 Z")
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			assert.False(t, s.Pixel(x, y))
		}
	}
}
