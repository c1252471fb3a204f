package encoder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/tuikit/gfx/canvas"
)

// kittyChunk is the raw byte count per escape chunk before base64.
const kittyChunk = 3072

var kittySeq atomic.Uint32

// kittyEncoder emits kitty graphics-protocol frames. The image id is
// generated once per encoder instance and reused every frame, so the
// terminal replaces the image in place; transmit-then-delete flickers.
type kittyEncoder struct {
	cache graphicsCache
	id    uint32
}

func newKittyEncoder() *kittyEncoder {
	return &kittyEncoder{id: 4000 + kittySeq.Add(1)}
}

func (e *kittyEncoder) Encode(s *canvas.Surface, bounds image.Rectangle) *GraphicsOutput {
	pix := e.cache.composite(s)
	h := hashRegion(pix, bounds)
	if out, ok := e.cache.lookup(h, bounds); ok {
		return &GraphicsOutput{Data: out, Bounds: bounds, FromCache: true}
	}
	data := encodeKitty(pix, s.Width(), s.Height(), e.id, bounds.Dx(), bounds.Dy())
	e.cache.store(h, bounds, data)
	return &GraphicsOutput{Data: data, Bounds: bounds}
}

// Delete returns the sequence removing this encoder's image from the
// terminal, for teardown.
func (e *kittyEncoder) Delete() []byte {
	return []byte(fmt.Sprintf("\x1b_Ga=d,i=%d,q=2\x1b\\", e.id))
}

// encodeKitty transmits a tightly packed RGBA raster (f=32) chunked into
// base64 escape payloads; m=1 marks continuation chunks. C=1 keeps the
// cursor in place, and c/r pin the displayed cell footprint.
func encodeKitty(pix []byte, w, h int, id uint32, cols, rows int) []byte {
	var buf bytes.Buffer
	first := true
	for off := 0; off < len(pix); off += kittyChunk {
		end := off + kittyChunk
		if end > len(pix) {
			end = len(pix)
		}
		more := 0
		if end < len(pix) {
			more = 1
		}
		part := base64.StdEncoding.EncodeToString(pix[off:end])
		if first {
			fmt.Fprintf(&buf, "\x1b_Ga=T,f=32,i=%d,q=2,s=%d,v=%d,c=%d,r=%d,C=1,m=%d;%s\x1b\\",
				id, w, h, cols, rows, more, part)
			first = false
		} else {
			fmt.Fprintf(&buf, "\x1b_Gm=%d;%s\x1b\\", more, part)
		}
	}
	if first {
		// zero-size surface still transmits an empty frame
		fmt.Fprintf(&buf, "\x1b_Ga=T,f=32,i=%d,q=2,s=%d,v=%d,C=1,m=0;\x1b\\", id, w, h)
	}
	return buf.Bytes()
}
