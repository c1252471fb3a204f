package encoder

import (
	"image"
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/tuikit/gfx/canvas"
	"github.com/tuikit/gfx/isoline"
)

var lumaRamp = []rune(" .:-=+*#%@")

var patternRamp = []rune{' ', '░', '▒', '▓', '█'}

// renderCells collapses one pixel block per terminal cell into a styled
// glyph and writes it into the screen. Cells with nothing visible are left
// untouched so underlying content shows through.
func (e *Encoder) renderCells(s *canvas.Surface, bounds image.Rectangle, style uv.Style, scr uv.Screen, mode Mode) {
	for row := 0; row < bounds.Dy(); row++ {
		for col := 0; col < bounds.Dx(); col++ {
			var cell *uv.Cell
			switch mode {
			case ModeIsolines:
				cell = e.isolineCell(s, col, row, style, false)
			case ModeIsolinesFilled:
				cell = e.isolineCell(s, col, row, style, true)
			default:
				cell = e.quantizeCell(s, col, row, style, mode)
			}
			if cell != nil {
				scr.SetCell(bounds.Min.X+col, bounds.Min.Y+row, cell)
			}
		}
	}
}

func blockSize(s *canvas.Surface) (int, int) {
	bw, bh := s.CellBlock()
	bw = int(float64(bw) * s.Scale())
	bh = int(float64(bh) * s.Scale())
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}
	return bw, bh
}

// block holds one cell's pixel samples on a fixed 2x3 grid. Bit index is
// y*2+x, matching the sextant encoding. Blocks of other shapes map through
// nearest sampling.
type block struct {
	colors [6]canvas.Color
	mask   uint8 // visible samples
	count  int
}

func sampleBlock(s *canvas.Surface, col, row int) block {
	bw, bh := blockSize(s)
	var b block
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 2; dx++ {
			px := col*bw + dx*bw/2
			py := row*bh + dy*bh/3
			c := s.Composite(px, py)
			i := dy*2 + dx
			b.colors[i] = c
			if c != canvas.Transparent {
				b.mask |= 1 << uint(i)
				b.count++
			}
		}
	}
	return b
}

func (b block) average(mask uint8) canvas.Color {
	var r, g, bl, n int
	for i, c := range b.colors {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		r += int(c.R())
		g += int(c.G())
		bl += int(c.B())
		n++
	}
	if n == 0 {
		return canvas.Transparent
	}
	return canvas.RGB(uint8(r/n), uint8(g/n), uint8(bl/n))
}

func (b block) meanLuma(mask uint8) float64 {
	var sum float64
	n := 0
	for i, c := range b.colors {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		sum += c.Luma()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// split partitions the visible samples around their mean brightness.
// At least one sample always lands in the bright set.
func (b block) split() (bright, dim uint8) {
	threshold := b.meanLuma(b.mask)
	for i, c := range b.colors {
		bit := uint8(1) << uint(i)
		if b.mask&bit == 0 {
			continue
		}
		if c.Luma() >= threshold {
			bright |= bit
		} else {
			dim |= bit
		}
	}
	return bright, dim
}

func (e *Encoder) quantizeCell(s *canvas.Surface, col, row int, style uv.Style, mode Mode) *uv.Cell {
	b := sampleBlock(s, col, row)
	if b.count == 0 {
		return nil
	}

	cs := style
	var glyph rune
	switch mode {
	case ModeBlock:
		const top, bot = 0x0f, 0x30 // rows 0-1 vs row 2
		switch {
		case b.mask&top != 0 && b.mask&bot != 0:
			glyph = '▀'
			cs.Fg = b.average(b.mask & top)
			cs.Bg = b.average(b.mask & bot)
		case b.mask&top != 0:
			glyph = '▀'
			cs.Fg = b.average(b.mask & top)
		default:
			glyph = '▄'
			cs.Fg = b.average(b.mask & bot)
		}
	case ModePattern:
		glyph = patternRamp[b.count*(len(patternRamp)-1)/6]
		cs.Fg = b.average(b.mask)
	case ModeLuma:
		idx := int(b.meanLuma(b.mask) * float64(len(lumaRamp)-1) / 255)
		glyph = lumaRamp[idx]
		cs.Fg = b.average(b.mask)
	default: // sextant
		if b.count == 6 {
			// full block: split into a bright foreground pattern over a
			// dim background so detail survives
			bright, dim := b.split()
			if dim == 0 {
				glyph = '█'
				cs.Fg = b.average(b.mask)
			} else {
				glyph = sextantRune(bright)
				cs.Fg = b.average(bright)
				cs.Bg = b.average(dim)
			}
		} else {
			glyph = sextantRune(b.mask)
			cs.Fg = b.average(b.mask)
		}
	}
	return &uv.Cell{Content: string(glyph), Width: 1, Style: cs}
}

// sextantRune maps a 2x3 bit pattern (bit index = y*2+x) to the legacy
// computing sextant block. The space, half and full blocks predate the
// U+1FB00 range and are handled explicitly.
func sextantRune(bits uint8) rune {
	switch bits {
	case 0:
		return ' '
	case 0x3f:
		return '█'
	case 0x15: // left column
		return '▌'
	case 0x2a: // right column
		return '▐'
	}
	v := rune(bits)
	switch {
	case bits < 0x15:
		return 0x1FB00 + v - 1
	case bits < 0x2a:
		return 0x1FB00 + v - 2
	default:
		return 0x1FB00 + v - 3
	}
}

// isolineCell derives the contour glyph for one cell from a 2x2 corner
// neighborhood. Missing samples (out of bounds or transparent) count as
// below every threshold. Filled mode also paints the band color of the
// cell center into the background.
func (e *Encoder) isolineCell(s *canvas.Surface, col, row int, style uv.Style, filled bool) *uv.Cell {
	if len(e.Isolines) == 0 {
		return nil
	}
	bw, bh := blockSize(s)
	tl := e.scalarAt(s, col*bw, row*bh)
	tr := e.scalarAt(s, (col+1)*bw-1, row*bh)
	bl := e.scalarAt(s, col*bw, (row+1)*bh-1)
	br := e.scalarAt(s, (col+1)*bw-1, (row+1)*bh-1)

	cs := style
	var glyph rune
	for _, iso := range e.Isolines {
		code := isoline.Code(tl, tr, bl, br, iso.Value)
		if g := isoline.Glyph(code); g != 0 {
			glyph = g
			if iso.Color != canvas.Transparent {
				cs.Fg = iso.Color
			}
		}
	}

	if filled {
		center := e.scalarAt(s, col*bw+bw/2, row*bh+bh/2)
		var band canvas.Color
		for _, iso := range e.Isolines {
			if !math.IsNaN(center) && center >= iso.Value && iso.Color != canvas.Transparent {
				band = iso.Color
			}
		}
		if band != canvas.Transparent {
			cs.Bg = band
		}
	}

	if glyph == 0 {
		if filled && cs.Bg != nil {
			return &uv.Cell{Content: " ", Width: 1, Style: cs}
		}
		return nil
	}
	return &uv.Cell{Content: string(glyph), Width: 1, Style: cs}
}

func (e *Encoder) scalarAt(s *canvas.Surface, x, y int) float64 {
	if x < 0 || x >= s.Width() || y < 0 || y >= s.Height() {
		return math.NaN()
	}
	c := s.Composite(x, y)
	if c == canvas.Transparent {
		return math.NaN()
	}
	return isoline.Scalar(c, e.Channel)
}
