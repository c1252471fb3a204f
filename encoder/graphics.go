package encoder

import (
	"encoding/binary"
	"hash/fnv"
	"image"

	"github.com/tuikit/gfx/canvas"
)

// GraphicsOutput is one encoded protocol frame. FromCache marks output
// reused verbatim from the previous frame, letting the caller skip
// re-transmission.
type GraphicsOutput struct {
	Data      []byte
	Bounds    image.Rectangle
	FromCache bool
}

// graphicsCache remembers the last encoded frame per protocol encoder: the
// content hash of the pixel region, the positioned bounds, and the produced
// output. It is valid only when both hash and bounds match exactly.
type graphicsCache struct {
	hash   uint32
	bounds image.Rectangle
	output []byte
	valid  bool

	// scratch is the reusable composite buffer; it grows when the pixel
	// count does and is never shrunk, avoiding per-frame allocation.
	scratch []byte
}

// composite packs the surface's visible pixels (draw over image) into the
// scratch buffer as RGBA bytes.
func (c *graphicsCache) composite(s *canvas.Surface) []byte {
	w, h := s.Width(), s.Height()
	need := w * h * 4
	if cap(c.scratch) < need {
		c.scratch = make([]byte, need)
	}
	buf := c.scratch[:need]
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := s.Composite(x, y)
			buf[i] = col.R()
			buf[i+1] = col.G()
			buf[i+2] = col.B()
			buf[i+3] = col.A()
			i += 4
		}
	}
	c.scratch = buf
	return buf
}

// lookup returns the previous output when the frame is identical.
func (c *graphicsCache) lookup(hash uint32, bounds image.Rectangle) ([]byte, bool) {
	if c.valid && c.hash == hash && c.bounds == bounds {
		return c.output, true
	}
	return nil, false
}

func (c *graphicsCache) store(hash uint32, bounds image.Rectangle, out []byte) {
	c.hash = hash
	c.bounds = bounds
	c.output = out
	c.valid = true
}

func (c *graphicsCache) invalidate() {
	c.valid = false
}

// hashRegion is a fast non-cryptographic content hash over the pixel region
// and the rendered bounds rectangle.
func hashRegion(pix []byte, bounds image.Rectangle) uint32 {
	h := fnv.New32a()
	h.Write(pix)
	var b [16]byte
	binary.LittleEndian.PutUint32(b[0:], uint32(bounds.Min.X))
	binary.LittleEndian.PutUint32(b[4:], uint32(bounds.Min.Y))
	binary.LittleEndian.PutUint32(b[8:], uint32(bounds.Max.X))
	binary.LittleEndian.PutUint32(b[12:], uint32(bounds.Max.Y))
	h.Write(b[:])
	return h.Sum32()
}
