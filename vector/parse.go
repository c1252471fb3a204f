package vector

import (
	"math"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
)

type parser struct {
	lex *gl.Lexer

	x, y   float64 // current point
	sx, sy float64 // current subpath start
}

// Parse tokenizes a path-description string into absolute-coordinate
// commands. Relative commands are resolved against the current point, an
// implicit repeat after M/m is treated as L/l, and arc radii are taken as
// absolute magnitudes. Unknown command letters are skipped.
func Parse(d string) []Command {
	l, _ := gl.Lex("path", d)
	p := &parser{lex: l}
	var cmds []Command
	for {
		p.skipSeparators()
		i := p.lex.NextItem()
		switch i.Type {
		case gl.ItemError, gl.ItemEOS:
			return cmds
		case gl.ItemLetter:
			cmds = p.command(i.Value, cmds)
		}
	}
}

func (p *parser) skipSeparators() {
	for {
		t := p.lex.PeekItem().Type
		if t != gl.ItemWSP && t != gl.ItemComma {
			return
		}
		p.lex.NextItem()
	}
}

func (p *parser) hasNumber() bool {
	p.skipSeparators()
	return p.lex.PeekItem().Type == gl.ItemNumber
}

// number reads the next numeric literal. A malformed literal parses to NaN so
// a bad token degrades into degenerate invisible geometry instead of aborting
// the rest of the path.
func (p *parser) number() float64 {
	p.skipSeparators()
	lit := p.lex.NextItem().Value
	// scientific notation can arrive split across tokens ("1", "e", "-5")
	if n := p.lex.PeekItem(); n.Type == gl.ItemLetter && (n.Value == "e" || n.Value == "E") {
		p.lex.NextItem()
		if p.lex.PeekItem().Type == gl.ItemNumber {
			lit += "e" + p.lex.NextItem().Value
		}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (p *parser) flag() bool {
	return p.number() != 0
}

func (p *parser) command(letter string, cmds []Command) []Command {
	if letter == "" {
		return cmds
	}
	rel := letter[0] >= 'a'

	switch strings.ToUpper(letter) {
	case "M":
		first := true
		for p.hasNumber() {
			x, y := p.number(), p.number()
			if rel {
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			if first {
				p.sx, p.sy = x, y
				cmds = append(cmds, MoveTo{X: x, Y: y})
				first = false
			} else {
				// implicit repeat after a moveto is a lineto
				cmds = append(cmds, LineTo{X: x, Y: y})
			}
		}
	case "L":
		for p.hasNumber() {
			x, y := p.number(), p.number()
			if rel {
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, LineTo{X: x, Y: y})
		}
	case "H":
		for p.hasNumber() {
			x := p.number()
			if rel {
				x += p.x
			}
			p.x = x
			cmds = append(cmds, HLineTo{X: x})
		}
	case "V":
		for p.hasNumber() {
			y := p.number()
			if rel {
				y += p.y
			}
			p.y = y
			cmds = append(cmds, VLineTo{Y: y})
		}
	case "Q":
		for p.hasNumber() {
			x1, y1 := p.number(), p.number()
			x, y := p.number(), p.number()
			if rel {
				x1 += p.x
				y1 += p.y
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, QuadTo{X1: x1, Y1: y1, X: x, Y: y})
		}
	case "T":
		for p.hasNumber() {
			x, y := p.number(), p.number()
			if rel {
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, SmoothQuadTo{X: x, Y: y})
		}
	case "C":
		for p.hasNumber() {
			x1, y1 := p.number(), p.number()
			x2, y2 := p.number(), p.number()
			x, y := p.number(), p.number()
			if rel {
				x1 += p.x
				y1 += p.y
				x2 += p.x
				y2 += p.y
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, CubicTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
		}
	case "S":
		for p.hasNumber() {
			x2, y2 := p.number(), p.number()
			x, y := p.number(), p.number()
			if rel {
				x2 += p.x
				y2 += p.y
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, SmoothCubicTo{X2: x2, Y2: y2, X: x, Y: y})
		}
	case "A":
		for p.hasNumber() {
			rx := math.Abs(p.number())
			ry := math.Abs(p.number())
			rot := p.number()
			large := p.flag()
			sweep := p.flag()
			x, y := p.number(), p.number()
			if rel {
				x += p.x
				y += p.y
			}
			p.x, p.y = x, y
			cmds = append(cmds, ArcTo{RX: rx, RY: ry, Rotation: rot, LargeArc: large, Sweep: sweep, X: x, Y: y})
		}
	case "Z":
		p.x, p.y = p.sx, p.sy
		cmds = append(cmds, ClosePath{})
	}
	return cmds
}
