package encoder

import "fmt"

// Mode is a rendering strategy: either a character-quantization mode that
// collapses a pixel block into one styled cell, or a true-pixel-graphics
// protocol embedding a raster image.
type Mode uint8

const (
	// ModeAuto ("hires") selects the best pixel protocol the terminal
	// supports, falling back to sextant quantization.
	ModeAuto Mode = iota
	ModeSextant
	ModeBlock
	ModePattern
	ModeLuma
	ModeSixel
	ModeKitty
	ModeITerm2
	ModeIsolines
	ModeIsolinesFilled
)

var modeNames = map[Mode]string{
	ModeAuto:           "hires",
	ModeSextant:        "sextant",
	ModeBlock:          "block",
	ModePattern:        "pattern",
	ModeLuma:           "luma",
	ModeSixel:          "sixel",
	ModeKitty:          "kitty",
	ModeITerm2:         "iterm2",
	ModeIsolines:       "isolines",
	ModeIsolinesFilled: "isolines-filled",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode resolves a configured mode name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeAuto, fmt.Errorf("encoder: unknown mode %q", s)
}

// Resolve turns a requested mode into a concrete one against the terminal
// capability facts. Pixel protocols the terminal lacks degrade to sextant.
func Resolve(requested Mode, caps Capabilities) Mode {
	switch requested {
	case ModeAuto:
		switch {
		case caps.Kitty:
			return ModeKitty
		case caps.ITerm2:
			return ModeITerm2
		case caps.Sixel:
			return ModeSixel
		default:
			return ModeSextant
		}
	case ModeKitty:
		if !caps.Kitty {
			return ModeSextant
		}
	case ModeITerm2:
		if !caps.ITerm2 {
			return ModeSextant
		}
	case ModeSixel:
		if !caps.Sixel {
			return ModeSextant
		}
	}
	return requested
}
