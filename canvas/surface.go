// Package canvas implements a logical pixel surface beneath terminal
// character cells. Each terminal cell covers a fixed pixel block; the surface
// keeps two packed-RGBA layers, a draw layer for primitives and an image
// layer for decoded raster content, composited draw-over-image at read time.
package canvas

// Options control the pixel geometry of a surface.
type Options struct {
	// CellWidth and CellHeight are the pixels per terminal cell.
	CellWidth  int
	CellHeight int
	// CharAspectRatio is the terminal character height/width ratio.
	CharAspectRatio float64
	// Scale multiplies the logical resolution.
	Scale float64
}

// DefaultOptions matches a 2x3 sextant block in a typical terminal font.
func DefaultOptions() Options {
	return Options{CellWidth: 2, CellHeight: 3, CharAspectRatio: 2.0, Scale: 1.0}
}

func (o Options) normalized() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 2
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 3
	}
	if o.CharAspectRatio <= 0 {
		o.CharAspectRatio = 2.0
	}
	if o.Scale <= 0 {
		o.Scale = 1.0
	}
	return o
}

// Surface is a w*h pixel grid. All mutation is single-threaded; drawing calls
// outside the bounds are silently ignored and reads outside return the
// transparent sentinel, so callers on the hot path never need to pre-clip.
type Surface struct {
	width  int
	height int
	cols   int
	rows   int
	opts   Options

	draw  []Color
	image []Color

	color Color
	dirty bool
}

// New creates a surface covering cols x rows terminal cells.
func New(cols, rows int, opts Options) *Surface {
	opts = opts.normalized()
	s := &Surface{opts: opts, cols: cols, rows: rows, color: RGB(0xff, 0xff, 0xff)}
	s.Resize(s.gridPixels(cols, rows))
	return s
}

func (s *Surface) gridPixels(cols, rows int) (int, int) {
	w := int(float64(cols*s.opts.CellWidth) * s.opts.Scale)
	h := int(float64(rows*s.opts.CellHeight) * s.opts.Scale)
	return w, h
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// CellBlock returns the pixel block collapsed into one terminal cell.
func (s *Surface) CellBlock() (w, h int) {
	return s.opts.CellWidth, s.opts.CellHeight
}

// Scale returns the configured resolution multiplier.
func (s *Surface) Scale() float64 { return s.opts.Scale }

// SetScale changes the resolution multiplier and reallocates the pixel grid
// for the current cell coverage. Both layers are cleared.
func (s *Surface) SetScale(scale float64) {
	if scale <= 0 || scale == s.opts.Scale {
		return
	}
	s.opts.Scale = scale
	s.Resize(s.gridPixels(s.cols, s.rows))
}

// PixelAspectRatio is the visual width/height ratio of one logical pixel:
// the cell block shape corrected by the terminal character aspect ratio.
// Callers divide X coordinates by it before drawing so circles come out round.
func (s *Surface) PixelAspectRatio() float64 {
	return float64(s.opts.CellWidth) / float64(s.opts.CellHeight) * s.opts.CharAspectRatio
}

// Resize reallocates both layers and clears them.
func (s *Surface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.width, s.height = w, h
	s.draw = make([]Color, w*h)
	s.image = make([]Color, w*h)
	s.dirty = true
}

// SetGridSize resizes to cover cols x rows terminal cells.
func (s *Surface) SetGridSize(cols, rows int) {
	s.cols, s.rows = cols, rows
	w, h := s.gridPixels(cols, rows)
	if w == s.width && h == s.height {
		return
	}
	s.Resize(w, h)
}

// SetColor sets the current draw color.
func (s *Surface) SetColor(c Color) { s.color = c }

// SetColorString sets the current draw color from a CSS-like string.
func (s *Surface) SetColorString(spec string) error {
	c, err := ParseColor(spec)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

// Color returns the current draw color.
func (s *Surface) Color() Color { return s.color }

// Dirty reports whether the surface changed since the last MarkClean.
func (s *Surface) Dirty() bool { return s.dirty }

// MarkDirty forces a redraw on the next frame.
func (s *Surface) MarkDirty() { s.dirty = true }

// MarkClean is called by the renderer after consuming a frame.
func (s *Surface) MarkClean() { s.dirty = false }

func (s *Surface) in(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// SetPixel turns the pixel at (x, y) on with the current color, or off.
func (s *Surface) SetPixel(x, y int, on bool) {
	s.SetPixelColor(x, y, s.color, on)
}

// SetPixelColor writes one draw-layer pixel. Out-of-bounds writes are ignored.
func (s *Surface) SetPixelColor(x, y int, c Color, on bool) {
	if !s.in(x, y) {
		return
	}
	if !on {
		c = Transparent
	}
	s.draw[y*s.width+x] = c
	s.dirty = true
}

// Pixel reports whether the draw-layer pixel at (x, y) is set.
// Out-of-bounds reads are off.
func (s *Surface) Pixel(x, y int) bool {
	return s.PixelColor(x, y) != Transparent
}

// PixelColor returns the draw-layer pixel at (x, y), or the transparent
// sentinel when out of bounds.
func (s *Surface) PixelColor(x, y int) Color {
	if !s.in(x, y) {
		return Transparent
	}
	return s.draw[y*s.width+x]
}

// ImagePixel returns the image-layer pixel at (x, y).
func (s *Surface) ImagePixel(x, y int) Color {
	if !s.in(x, y) {
		return Transparent
	}
	return s.image[y*s.width+x]
}

// SetImagePixel writes one image-layer pixel.
func (s *Surface) SetImagePixel(x, y int, c Color) {
	if !s.in(x, y) {
		return
	}
	s.image[y*s.width+x] = c
	s.dirty = true
}

// Composite returns the visible pixel at (x, y): the draw layer when set,
// else the image layer.
func (s *Surface) Composite(x, y int) Color {
	if c := s.PixelColor(x, y); c != Transparent {
		return c
	}
	return s.ImagePixel(x, y)
}

// Clear erases the draw layer. The image layer is untouched.
func (s *Surface) Clear() {
	for i := range s.draw {
		s.draw[i] = Transparent
	}
	s.dirty = true
}

// ClearImage erases the image layer.
func (s *Surface) ClearImage() {
	for i := range s.image {
		s.image[i] = Transparent
	}
	s.dirty = true
}

// Fill sets every draw-layer pixel to the current color.
func (s *Surface) Fill() {
	for i := range s.draw {
		s.draw[i] = s.color
	}
	s.dirty = true
}

// Toggle flips the pixel at (x, y) between the current color and off.
func (s *Surface) Toggle(x, y int) {
	if !s.in(x, y) {
		return
	}
	i := y*s.width + x
	if s.draw[i] != Transparent {
		s.draw[i] = Transparent
	} else {
		s.draw[i] = s.color
	}
	s.dirty = true
}

// DrawLayer exposes the raw draw buffer to the encoder and shader runner.
// Writers must call MarkDirty themselves.
func (s *Surface) DrawLayer() []Color { return s.draw }

// ImageLayer exposes the raw image buffer.
func (s *Surface) ImageLayer() []Color { return s.image }

// SetImageRect blits a decoded raster into the image layer at (x, y).
// pix is row-major with bpp bytes per pixel (3 = RGB, 4 = RGBA); pixels with
// alpha zero become the transparent sentinel. Rows beyond the surface clip.
func (s *Surface) SetImageRect(x, y, w, h int, pix []byte, bpp int) {
	if bpp != 3 && bpp != 4 {
		return
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := (row*w + col) * bpp
			if i+bpp > len(pix) {
				return
			}
			a := uint8(0xff)
			if bpp == 4 {
				a = pix[i+3]
			}
			c := RGBA(pix[i], pix[i+1], pix[i+2], a)
			if a == 0 {
				c = Transparent
			}
			s.SetImagePixel(x+col, y+row, c)
		}
	}
	s.dirty = true
}
