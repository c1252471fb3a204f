package encoder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/tuikit/gfx/canvas"
)

// iterm2Encoder emits OSC 1337 inline-image frames carrying PNG data.
type iterm2Encoder struct {
	cache graphicsCache
}

func (e *iterm2Encoder) Encode(s *canvas.Surface, bounds image.Rectangle) *GraphicsOutput {
	pix := e.cache.composite(s)
	h := hashRegion(pix, bounds)
	if out, ok := e.cache.lookup(h, bounds); ok {
		return &GraphicsOutput{Data: out, Bounds: bounds, FromCache: true}
	}
	data := encodeITerm2(pix, s.Width(), s.Height(), bounds.Dx(), bounds.Dy())
	e.cache.store(h, bounds, data)
	return &GraphicsOutput{Data: data, Bounds: bounds}
}

func encodeITerm2(pix []byte, w, h, cols, rows int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil
	}

	var buf bytes.Buffer
	// width/height are in cells; preserveAspectRatio=0 so the cell
	// footprint, not the raster shape, wins
	fmt.Fprintf(&buf, "\x1b]1337;File=inline=1;size=%d;width=%d;height=%d;preserveAspectRatio=0:%s\x07",
		pngBuf.Len(), cols, rows,
		base64.StdEncoding.EncodeToString(pngBuf.Bytes()))
	return buf.Bytes()
}
