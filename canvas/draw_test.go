package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countPixels(s *Surface) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestFillRect(t *testing.T) {
	s := newTestSurface(8, 8)
	s.FillRect(2, 3, 4, 5)
	assert.Equal(t, 20, countPixels(s))
	assert.True(t, s.Pixel(2, 3))
	assert.True(t, s.Pixel(5, 7))
	assert.False(t, s.Pixel(6, 3))
	assert.False(t, s.Pixel(2, 8))
}

func TestClearRectUndoesFill(t *testing.T) {
	s := newTestSurface(8, 8)
	s.FillRect(0, 0, 10, 10)
	s.ClearRect(0, 0, 10, 10)
	assert.Equal(t, 0, countPixels(s))
}

func TestClearRectClearsExactlyTheSubRectangle(t *testing.T) {
	s := newTestSurface(4, 4) // 8x12 pixels
	s.FillRect(0, 0, s.Width(), s.Height())
	s.ClearRect(2, 3, 4, 5)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			assert.Equal(t, !inside, s.Pixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestFillRectClips(t *testing.T) {
	s := newTestSurface(2, 2) // 4x6 pixels
	s.FillRect(-2, -2, 100, 100)
	assert.Equal(t, 4*6, countPixels(s))
}

func TestDrawLineEndpoints(t *testing.T) {
	tests := []struct{ x0, y0, x1, y1 int }{
		{0, 0, 7, 0},  // horizontal
		{3, 0, 3, 7},  // vertical
		{0, 0, 7, 7},  // diagonal
		{7, 7, 0, 0},  // reversed
		{0, 7, 7, 3},  // shallow
		{0, 0, 2, 7},  // steep
	}
	for _, tt := range tests {
		s := newTestSurface(4, 3)
		s.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
		assert.True(t, s.Pixel(tt.x0, tt.y0), "start %v", tt)
		assert.True(t, s.Pixel(tt.x1, tt.y1), "end %v", tt)
	}
}

func TestDrawLineDiagonalPixelCount(t *testing.T) {
	s := newTestSurface(8, 8)
	s.DrawLine(0, 0, 7, 7)
	assert.Equal(t, 8, countPixels(s))
}

func TestDrawRectOutline(t *testing.T) {
	s := newTestSurface(8, 8)
	s.DrawRect(1, 1, 4, 4)
	assert.True(t, s.Pixel(1, 1))
	assert.True(t, s.Pixel(4, 4))
	assert.True(t, s.Pixel(4, 1))
	assert.True(t, s.Pixel(1, 4))
	assert.False(t, s.Pixel(2, 2), "interior stays empty")
	assert.Equal(t, 12, countPixels(s))
}

func TestDrawCircle(t *testing.T) {
	s := newTestSurface(16, 11)
	s.DrawCircle(15, 15, 10)
	// cardinal points land exactly on the radius
	assert.True(t, s.Pixel(25, 15))
	assert.True(t, s.Pixel(5, 15))
	assert.True(t, s.Pixel(15, 25))
	assert.True(t, s.Pixel(15, 5))
	assert.False(t, s.Pixel(15, 15))
}

func TestDrawEllipse(t *testing.T) {
	s := newTestSurface(16, 11)
	s.DrawEllipse(15, 15, 10, 5)
	assert.True(t, s.Pixel(25, 15))
	assert.True(t, s.Pixel(5, 15))
	assert.True(t, s.Pixel(15, 20))
	assert.True(t, s.Pixel(15, 10))
	assert.False(t, s.Pixel(15, 15))
}
