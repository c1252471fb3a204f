// Package vector parses path-description strings and rasterizes them onto a
// canvas surface: curves are tessellated into line segments within a flatness
// tolerance, and subpaths fill jointly under the even-odd rule so an
// oppositely wound inner subpath cuts a hole.
package vector

// Command is one absolute-coordinate path instruction. The parser resolves
// relative forms before emitting, so consumers only see absolute geometry.
type Command interface {
	isCommand()
}

// MoveTo starts a new subpath at (X, Y).
type MoveTo struct {
	X, Y float64
}

// LineTo draws a straight segment to (X, Y).
type LineTo struct {
	X, Y float64
}

// HLineTo draws a horizontal segment to X.
type HLineTo struct {
	X float64
}

// VLineTo draws a vertical segment to Y.
type VLineTo struct {
	Y float64
}

// QuadTo draws a quadratic curve through control point (X1, Y1) to (X, Y).
type QuadTo struct {
	X1, Y1 float64
	X, Y   float64
}

// SmoothQuadTo draws a quadratic curve whose control point is the previous
// quadratic control point reflected around the current point.
type SmoothQuadTo struct {
	X, Y float64
}

// CubicTo draws a cubic curve through two control points to (X, Y).
type CubicTo struct {
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

// SmoothCubicTo draws a cubic curve whose first control point is the previous
// cubic second control point reflected around the current point.
type SmoothCubicTo struct {
	X2, Y2 float64
	X, Y   float64
}

// ArcTo draws an elliptical arc to (X, Y). Radii are absolute magnitudes.
type ArcTo struct {
	RX, RY   float64
	Rotation float64 // degrees
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

// ClosePath closes the current subpath back to its starting point.
type ClosePath struct{}

func (MoveTo) isCommand()        {}
func (LineTo) isCommand()        {}
func (HLineTo) isCommand()       {}
func (VLineTo) isCommand()       {}
func (QuadTo) isCommand()        {}
func (SmoothQuadTo) isCommand()  {}
func (CubicTo) isCommand()       {}
func (SmoothCubicTo) isCommand() {}
func (ArcTo) isCommand()         {}
func (ClosePath) isCommand()     {}
