package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface(cols, rows int) *Surface {
	return New(cols, rows, DefaultOptions())
}

func TestSurfaceDimensions(t *testing.T) {
	s := newTestSurface(10, 4)
	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 12, s.Height())

	s = New(10, 4, Options{CellWidth: 2, CellHeight: 3, Scale: 2.0})
	assert.Equal(t, 40, s.Width())
	assert.Equal(t, 24, s.Height())
}

func TestSetAndGetPixel(t *testing.T) {
	s := newTestSurface(4, 4)
	require.NoError(t, s.SetColorString("#ff0000"))
	s.SetPixel(3, 5, true)
	assert.True(t, s.Pixel(3, 5))
	assert.Equal(t, RGB(0xff, 0, 0), s.PixelColor(3, 5))

	s.SetPixel(3, 5, false)
	assert.False(t, s.Pixel(3, 5))
}

func TestOutOfBoundsIsSilent(t *testing.T) {
	s := newTestSurface(2, 2)
	s.SetPixel(-1, 0, true)
	s.SetPixel(0, -1, true)
	s.SetPixel(1000, 1000, true)
	assert.False(t, s.Pixel(-1, 0))
	assert.False(t, s.Pixel(1000, 1000))
	assert.Equal(t, Transparent, s.PixelColor(-1, -1))
}

func TestCompositeDrawOverImage(t *testing.T) {
	s := newTestSurface(2, 2)
	s.SetImagePixel(1, 1, RGB(0, 0, 0xff))
	assert.Equal(t, RGB(0, 0, 0xff), s.Composite(1, 1))

	s.SetColor(RGB(0xff, 0, 0))
	s.SetPixel(1, 1, true)
	assert.Equal(t, RGB(0xff, 0, 0), s.Composite(1, 1))

	// clearing the draw layer reveals the image again
	s.Clear()
	assert.Equal(t, RGB(0, 0, 0xff), s.Composite(1, 1))
}

func TestToggle(t *testing.T) {
	s := newTestSurface(2, 2)
	s.Toggle(1, 2)
	assert.True(t, s.Pixel(1, 2))
	s.Toggle(1, 2)
	assert.False(t, s.Pixel(1, 2))
}

func TestDirtyTracking(t *testing.T) {
	s := newTestSurface(2, 2)
	s.MarkClean()
	assert.False(t, s.Dirty())
	s.SetPixel(0, 0, true)
	assert.True(t, s.Dirty())
	s.MarkClean()
	s.SetGridSize(2, 2) // same size, no-op
	assert.False(t, s.Dirty())
	s.SetGridSize(3, 2)
	assert.True(t, s.Dirty())
}

func TestResizeClears(t *testing.T) {
	s := newTestSurface(2, 2)
	s.SetPixel(0, 0, true)
	s.SetImagePixel(0, 0, RGB(1, 2, 3))
	s.SetGridSize(4, 4)
	assert.False(t, s.Pixel(0, 0))
	assert.Equal(t, Transparent, s.ImagePixel(0, 0))
}

func TestSetImageRect(t *testing.T) {
	s := newTestSurface(2, 2)
	pix := []byte{
		255, 0, 0, 255 /**/, 0, 255, 0, 0,
		0, 0, 255, 255 /**/, 9, 9, 9, 255,
	}
	s.SetImageRect(1, 1, 2, 2, pix, 4)
	assert.Equal(t, RGBA(255, 0, 0, 255), s.ImagePixel(1, 1))
	// alpha zero becomes transparent
	assert.Equal(t, Transparent, s.ImagePixel(2, 1))
	assert.Equal(t, RGBA(0, 0, 255, 255), s.ImagePixel(1, 2))
}

func TestSetScale(t *testing.T) {
	s := newTestSurface(4, 4) // 8x12 pixels
	s.SetPixel(0, 0, true)
	s.SetScale(2.0)
	assert.Equal(t, 16, s.Width())
	assert.Equal(t, 24, s.Height())
	assert.False(t, s.Pixel(0, 0), "rescaling clears the layers")

	s.SetScale(0)
	assert.Equal(t, 16, s.Width(), "non-positive scale is ignored")
}

func TestPixelAspectRatio(t *testing.T) {
	s := New(1, 1, Options{CellWidth: 2, CellHeight: 3, CharAspectRatio: 2.0})
	assert.InDelta(t, 4.0/3.0, s.PixelAspectRatio(), 1e-9)
}
