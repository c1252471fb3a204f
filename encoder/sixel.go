package encoder

import (
	"bytes"
	"fmt"
	"image"

	"github.com/tuikit/gfx/canvas"
)

// sixelEncoder turns the composited surface into a DCS sixel stream.
type sixelEncoder struct {
	cache graphicsCache
}

func (e *sixelEncoder) Encode(s *canvas.Surface, bounds image.Rectangle) *GraphicsOutput {
	pix := e.cache.composite(s)
	h := hashRegion(pix, bounds)
	if out, ok := e.cache.lookup(h, bounds); ok {
		return &GraphicsOutput{Data: out, Bounds: bounds, FromCache: true}
	}
	data := encodeSixel(pix, s.Width(), s.Height())
	e.cache.store(h, bounds, data)
	return &GraphicsOutput{Data: data, Bounds: bounds}
}

// sixelLevels quantizes each channel to 6 levels, bounding the palette at
// 216 registers.
func sixelQuant(v byte) byte {
	return v / 51
}

// encodeSixel writes a complete DCS q sequence for a tightly packed RGBA
// raster. Transparent pixels set no sixel bits; P2=1 keeps them unfilled.
func encodeSixel(pix []byte, w, h int) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x1bP0;1;0q")
	fmt.Fprintf(&buf, "\"1;1;%d;%d", w, h)

	// palette registers are allocated on first sight of a quantized color
	palette := make(map[[3]byte]int)
	var colors [][3]byte
	index := func(q [3]byte) int {
		if i, ok := palette[q]; ok {
			return i
		}
		i := len(colors)
		if i > 255 {
			return 0
		}
		palette[q] = i
		colors = append(colors, q)
		fmt.Fprintf(&buf, "#%d;2;%d;%d;%d", i,
			int(q[0])*100/5, int(q[1])*100/5, int(q[2])*100/5)
		return i
	}

	quantAt := func(x, y int) (int, bool) {
		i := (y*w + x) * 4
		if pix[i+3] == 0 {
			return 0, false
		}
		return index([3]byte{sixelQuant(pix[i]), sixelQuant(pix[i+1]), sixelQuant(pix[i+2])}), true
	}

	bits := make([]byte, w)
	for y0 := 0; y0 < h; y0 += 6 {
		// one pass per palette color present in the band
		seen := make(map[int]bool)
		var order []int
		for y := y0; y < y0+6 && y < h; y++ {
			for x := 0; x < w; x++ {
				if ci, ok := quantAt(x, y); ok && !seen[ci] {
					seen[ci] = true
					order = append(order, ci)
				}
			}
		}
		for n, ci := range order {
			if n > 0 {
				buf.WriteByte('$') // carriage return within the band
			}
			for i := range bits {
				bits[i] = 0
			}
			for y := y0; y < y0+6 && y < h; y++ {
				for x := 0; x < w; x++ {
					if c, ok := quantAt(x, y); ok && c == ci {
						bits[x] |= 1 << uint(y-y0)
					}
				}
			}
			fmt.Fprintf(&buf, "#%d", ci)
			writeSixelRuns(&buf, bits)
		}
		buf.WriteByte('-')
	}
	buf.WriteString("\x1b\\")
	return buf.Bytes()
}

// writeSixelRuns emits the band's column bits with run-length compression.
func writeSixelRuns(buf *bytes.Buffer, bits []byte) {
	for x := 0; x < len(bits); {
		run := 1
		for x+run < len(bits) && bits[x+run] == bits[x] {
			run++
		}
		ch := byte(63 + bits[x])
		if run > 3 {
			fmt.Fprintf(buf, "!%d%c", run, ch)
		} else {
			for i := 0; i < run; i++ {
				buf.WriteByte(ch)
			}
		}
		x += run
	}
}
