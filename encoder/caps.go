package encoder

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Capabilities are the terminal facts the mode resolver consumes. They are
// normally produced by Detect but tests and embedders may construct them
// directly.
type Capabilities struct {
	Sixel  bool
	Kitty  bool
	ITerm2 bool

	// CellPixelWidth/Height is the pixel block one terminal cell covers.
	CellPixelWidth  int
	CellPixelHeight int

	// CharAspectRatio is the character cell height/width ratio.
	CharAspectRatio float64

	Profile termenv.Profile
}

// Detect probes the environment for graphics support. Pixel-protocol
// detection is env-based; the terminfo/DA1 handshake belongs to the
// surrounding framework.
func Detect() Capabilities {
	caps := Capabilities{
		CellPixelWidth:  2,
		CellPixelHeight: 3,
		CharAspectRatio: 2.0,
		Profile:         termenv.ColorProfile(),
	}

	term := os.Getenv("TERM")
	prog := os.Getenv("TERM_PROGRAM")

	if os.Getenv("KITTY_WINDOW_ID") != "" || strings.Contains(term, "kitty") || prog == "ghostty" {
		caps.Kitty = true
	}
	switch prog {
	case "iTerm.app", "WezTerm", "mintty":
		caps.ITerm2 = true
	}
	if strings.Contains(term, "sixel") ||
		strings.HasPrefix(term, "foot") ||
		strings.HasPrefix(term, "mlterm") ||
		strings.HasPrefix(term, "yaft") {
		caps.Sixel = true
	}
	return caps
}
