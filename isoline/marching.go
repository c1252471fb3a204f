package isoline

// Corner bit positions in a cell code: top-left is the high bit.
const (
	bitTL = 1 << 3
	bitTR = 1 << 2
	bitBL = 1 << 1
	bitBR = 1 << 0
)

// Code builds the 4-bit marching-squares code for a 2x2 neighborhood from
// which corners are at or above the threshold. Missing samples (NaN) compare
// false and so count as below.
func Code(tl, tr, bl, br, threshold float64) uint8 {
	var code uint8
	if tl >= threshold {
		code |= bitTL
	}
	if tr >= threshold {
		code |= bitTR
	}
	if bl >= threshold {
		code |= bitBL
	}
	if br >= threshold {
		code |= bitBR
	}
	return code
}

// glyphs maps each code to a line-crossing box-drawing rune; zero means no
// boundary crosses the cell. The two diagonal saddle codes (0b0110, 0b1001)
// both resolve to the vertical bar: a topological simplification kept from
// the original table rather than a true disambiguation.
var glyphs = [16]rune{
	0b0000: 0,
	0b0001: '╭',
	0b0010: '╮',
	0b0011: '─',
	0b0100: '╰',
	0b0101: '│',
	0b0110: '│',
	0b0111: '╯',
	0b1000: '╯',
	0b1001: '│',
	0b1010: '│',
	0b1011: '╰',
	0b1100: '─',
	0b1101: '╮',
	0b1110: '╭',
	0b1111: 0,
}

// Glyph returns the contour glyph for a cell code, or zero when no boundary
// crosses the cell.
func Glyph(code uint8) rune {
	return glyphs[code&0x0f]
}
