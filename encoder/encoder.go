// Package encoder turns a pixel surface into terminal output: either styled
// cells written into a screen buffer (sextant, block, pattern, luma and
// isoline modes) or an escape sequence for one of the pixel graphics
// protocols (sixel, kitty, iTerm2). Protocol encoders remember the last
// frame so unchanged content is never re-encoded.
package encoder

import (
	"image"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/tuikit/gfx/canvas"
	"github.com/tuikit/gfx/isoline"
)

// Encoder renders one surface. It is not safe for concurrent use.
type Encoder struct {
	// Mode is the requested render mode; ModeAuto picks the best the
	// terminal supports.
	Mode Mode
	// Caps describes the terminal, normally from Detect.
	Caps Capabilities

	// Isolines and Channel configure the contour modes.
	Isolines []isoline.Isoline
	Channel  isoline.Channel

	sixel  *sixelEncoder
	kitty  *kittyEncoder
	iterm2 *iterm2Encoder
}

// New creates an encoder for the requested mode.
func New(mode Mode, caps Capabilities) *Encoder {
	return &Encoder{Mode: mode, Caps: caps}
}

// Render draws the surface into bounds. Cell modes write styled cells into
// scr and return nil; pixel protocol modes leave scr alone and return the
// escape sequence to emit after the screen is flushed.
func (e *Encoder) Render(s *canvas.Surface, bounds image.Rectangle, style uv.Style, scr uv.Screen) *GraphicsOutput {
	mode := Resolve(e.Mode, e.Caps)
	switch mode {
	case ModeSixel:
		if e.sixel == nil {
			e.sixel = &sixelEncoder{}
		}
		return e.sixel.Encode(s, bounds)
	case ModeKitty:
		if e.kitty == nil {
			e.kitty = newKittyEncoder()
		}
		return e.kitty.Encode(s, bounds)
	case ModeITerm2:
		if e.iterm2 == nil {
			e.iterm2 = &iterm2Encoder{}
		}
		return e.iterm2.Encode(s, bounds)
	default:
		e.renderCells(s, bounds, style, scr, mode)
		return nil
	}
}

// InvalidateCache forces the next Render to re-encode even if the frame is
// unchanged, for example after the terminal was cleared.
func (e *Encoder) InvalidateCache() {
	if e.sixel != nil {
		e.sixel.cache.invalidate()
	}
	if e.kitty != nil {
		e.kitty.cache.invalidate()
	}
	if e.iterm2 != nil {
		e.iterm2.cache.invalidate()
	}
}

// Cleanup returns the escape sequence that removes any image placed by a
// previous Render, or nil when nothing needs removing.
func (e *Encoder) Cleanup() []byte {
	if e.kitty != nil {
		return e.kitty.Delete()
	}
	return nil
}
