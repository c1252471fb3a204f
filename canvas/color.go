package canvas

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 32-bit RGBA value, 0xRRGGBBAA. The all-zero value is the
// transparent sentinel: it is skipped by compositing and protocol encoding.
type Color uint32

// Transparent is the reserved "nothing drawn" value.
const Transparent Color = 0

// RGBA packs four 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB packs three channels with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xff)
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// RGBA implements image/color.Color with alpha-premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	r |= r << 8
	g = uint32(c.G())
	g |= g << 8
	b = uint32(c.B())
	b |= b << 8
	a = uint32(c.A())
	a |= a << 8
	r = r * a / 0xffff
	g = g * a / 0xffff
	b = b * a / 0xffff
	return
}

// Luma returns the ITU-R BT.601 brightness of the color in [0,255].
func (c Color) Luma() float64 {
	return 0.299*float64(c.R()) + 0.587*float64(c.G()) + 0.114*float64(c.B())
}

// ParseColor accepts #rgb, #rrggbb, rgb(r,g,b) and rgba(r,g,b,a) forms.
// rgb/rgba channels are 0-255; the rgba alpha component is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Transparent, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := splitArgs(s[len("rgba(") : len(s)-1])
		if len(parts) != 4 {
			return Transparent, fmt.Errorf("parse color %q: want 4 components", s)
		}
		r, g, b, err := parseChannels(parts[:3])
		if err != nil {
			return Transparent, fmt.Errorf("parse color %q: %w", s, err)
		}
		a, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return Transparent, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGBA(r, g, b, clampChannel(a*255)), nil
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := splitArgs(s[len("rgb(") : len(s)-1])
		if len(parts) != 3 {
			return Transparent, fmt.Errorf("parse color %q: want 3 components", s)
		}
		r, g, b, err := parseChannels(parts)
		if err != nil {
			return Transparent, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGB(r, g, b), nil
	}
	return Transparent, fmt.Errorf("parse color %q: unrecognized form", s)
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseChannels(parts []string) (r, g, b uint8, err error) {
	var ch [3]uint8
	for i, p := range parts {
		v, perr := strconv.ParseFloat(p, 64)
		if perr != nil {
			return 0, 0, 0, perr
		}
		ch[i] = clampChannel(v)
	}
	return ch[0], ch[1], ch[2], nil
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
