package vector

import "math"

// Point is a 2D vertex in pixel space.
type Point struct {
	X, Y float64
}

// Subpath is an ordered vertex sequence produced by tessellation. Closed
// subpaths carry the closing vertex explicitly so stroking draws it.
type Subpath struct {
	Points []Point
	Closed bool
}

const (
	// DefaultTolerance is the flatness tolerance in pixels.
	DefaultTolerance = 0.25

	// maxDepth bounds curve subdivision so tessellation always terminates,
	// NaN control points included.
	maxDepth = 10
)

// Tessellate flattens commands into subpaths at the default tolerance.
func Tessellate(cmds []Command) []Subpath {
	return TessellateTol(cmds, DefaultTolerance)
}

// TessellateAspect flattens commands with every X-bearing coordinate,
// control points and the X radius included, pre-scaled by the inverse pixel
// aspect ratio so shapes render visually round on non-square cells.
func TessellateAspect(cmds []Command, aspect float64) []Subpath {
	if aspect > 0 && aspect != 1 {
		cmds = scaleX(cmds, 1/aspect)
	}
	return Tessellate(cmds)
}

func scaleX(cmds []Command, f float64) []Command {
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			c.X *= f
			out[i] = c
		case LineTo:
			c.X *= f
			out[i] = c
		case HLineTo:
			c.X *= f
			out[i] = c
		case VLineTo:
			out[i] = c
		case QuadTo:
			c.X1 *= f
			c.X *= f
			out[i] = c
		case SmoothQuadTo:
			c.X *= f
			out[i] = c
		case CubicTo:
			c.X1 *= f
			c.X2 *= f
			c.X *= f
			out[i] = c
		case SmoothCubicTo:
			c.X2 *= f
			c.X *= f
			out[i] = c
		case ArcTo:
			c.RX *= f
			c.X *= f
			out[i] = c
		default:
			out[i] = c
		}
	}
	return out
}

type tessellator struct {
	tol  float64
	subs []Subpath
	cur  []Point

	x, y   float64
	sx, sy float64

	prevCtrlX, prevCtrlY float64
	prevQuad, prevCubic  bool
}

// TessellateTol flattens commands into subpaths at the given tolerance.
func TessellateTol(cmds []Command, tol float64) []Subpath {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	t := &tessellator{tol: tol}
	for _, c := range cmds {
		switch c := c.(type) {
		case MoveTo:
			t.flush(false)
			t.x, t.y = c.X, c.Y
			t.sx, t.sy = c.X, c.Y
			t.cur = append(t.cur, Point{c.X, c.Y})
			t.resetSmooth()
		case LineTo:
			t.lineTo(c.X, c.Y)
			t.resetSmooth()
		case HLineTo:
			t.lineTo(c.X, t.y)
			t.resetSmooth()
		case VLineTo:
			t.lineTo(t.x, c.Y)
			t.resetSmooth()
		case QuadTo:
			t.quad(t.x, t.y, c.X1, c.Y1, c.X, c.Y, 0)
			t.setPrevQuad(c.X1, c.Y1)
			t.x, t.y = c.X, c.Y
		case SmoothQuadTo:
			cx, cy := t.reflect(t.prevQuad)
			t.quad(t.x, t.y, cx, cy, c.X, c.Y, 0)
			t.setPrevQuad(cx, cy)
			t.x, t.y = c.X, c.Y
		case CubicTo:
			t.cubic(t.x, t.y, c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y, 0)
			t.setPrevCubic(c.X2, c.Y2)
			t.x, t.y = c.X, c.Y
		case SmoothCubicTo:
			cx, cy := t.reflect(t.prevCubic)
			t.cubic(t.x, t.y, cx, cy, c.X2, c.Y2, c.X, c.Y, 0)
			t.setPrevCubic(c.X2, c.Y2)
			t.x, t.y = c.X, c.Y
		case ArcTo:
			t.arc(c)
			t.x, t.y = c.X, c.Y
			t.resetSmooth()
		case ClosePath:
			if len(t.cur) > 0 {
				t.cur = append(t.cur, Point{t.sx, t.sy})
			}
			t.flush(true)
			t.x, t.y = t.sx, t.sy
			t.resetSmooth()
		}
	}
	t.flush(false)
	return t.subs
}

func (t *tessellator) flush(closed bool) {
	if len(t.cur) > 1 {
		t.subs = append(t.subs, Subpath{Points: t.cur, Closed: closed})
	}
	t.cur = nil
}

func (t *tessellator) lineTo(x, y float64) {
	if len(t.cur) == 0 {
		t.cur = append(t.cur, Point{t.x, t.y})
	}
	t.cur = append(t.cur, Point{x, y})
	t.x, t.y = x, y
}

func (t *tessellator) resetSmooth() {
	t.prevQuad, t.prevCubic = false, false
}

func (t *tessellator) setPrevQuad(x, y float64) {
	t.prevCtrlX, t.prevCtrlY = x, y
	t.prevQuad, t.prevCubic = true, false
}

func (t *tessellator) setPrevCubic(x, y float64) {
	t.prevCtrlX, t.prevCtrlY = x, y
	t.prevQuad, t.prevCubic = false, true
}

// reflect mirrors the previous control point around the current point when
// the preceding command was of the same curve family; otherwise the
// reflection degenerates to the current point.
func (t *tessellator) reflect(sameFamily bool) (float64, float64) {
	if !sameFamily {
		return t.x, t.y
	}
	return 2*t.x - t.prevCtrlX, 2*t.y - t.prevCtrlY
}

func (t *tessellator) quad(x0, y0, x1, y1, x2, y2 float64, depth int) {
	// flat when the control point sits within tolerance of the chord midpoint
	mx, my := (x0+x2)/2, (y0+y2)/2
	dx, dy := x1-mx, y1-my
	if depth >= maxDepth || dx*dx+dy*dy <= t.tol*t.tol {
		t.lineTo(x2, y2)
		return
	}
	ax, ay := (x0+x1)/2, (y0+y1)/2
	bx, by := (x1+x2)/2, (y1+y2)/2
	mx, my = (ax+bx)/2, (ay+by)/2
	t.quad(x0, y0, ax, ay, mx, my, depth+1)
	t.quad(mx, my, bx, by, x2, y2, depth+1)
}

func (t *tessellator) cubic(x0, y0, x1, y1, x2, y2, x3, y3 float64, depth int) {
	ux := 3*x1 - 2*x0 - x3
	uy := 3*y1 - 2*y0 - y3
	vx := 3*x2 - 2*x3 - x0
	vy := 3*y2 - 2*y3 - y0
	if ux*ux < vx*vx {
		ux = vx
	}
	if uy*uy < vy*vy {
		uy = vy
	}
	if depth >= maxDepth || ux*ux+uy*uy <= 16*t.tol*t.tol {
		t.lineTo(x3, y3)
		return
	}
	ax, ay := (x0+x1)/2, (y0+y1)/2
	bx, by := (x1+x2)/2, (y1+y2)/2
	cx, cy := (x2+x3)/2, (y2+y3)/2
	abx, aby := (ax+bx)/2, (ay+by)/2
	bcx, bcy := (bx+cx)/2, (by+cy)/2
	mx, my := (abx+bcx)/2, (aby+bcy)/2
	t.cubic(x0, y0, ax, ay, abx, aby, mx, my, depth+1)
	t.cubic(mx, my, bcx, bcy, cx, cy, x3, y3, depth+1)
}

// arc converts an endpoint arc to center parameterization (SVG F.6.5/F.6.6)
// and steps it with a count derived from the larger radius and the tolerance.
func (t *tessellator) arc(c ArcTo) {
	x0, y0 := t.x, t.y
	rx, ry := c.RX, c.RY
	if rx == 0 || ry == 0 || (x0 == c.X && y0 == c.Y) {
		t.lineTo(c.X, c.Y)
		return
	}

	phi := c.Rotation * math.Pi / 180
	cosp, sinp := math.Cos(phi), math.Sin(phi)
	dx, dy := (x0-c.X)/2, (y0-c.Y)/2
	x1p := cosp*dx + sinp*dy
	y1p := -sinp*dx + cosp*dy

	// requested radii too small for the endpoints: scale both up
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den != 0 && num > 0 {
		co = math.Sqrt(num / den)
	}
	if c.LargeArc == c.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx
	cx := cosp*cxp - sinp*cyp + (x0+c.X)/2
	cy := sinp*cxp + cosp*cyp + (y0+c.Y)/2

	theta1 := vecAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := vecAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !c.Sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}
	if c.Sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	rmax := math.Max(rx, ry)
	step := 2 * math.Acos(math.Max(-1, 1-t.tol/rmax))
	n := 2
	if step > 0 {
		if k := int(math.Ceil(math.Abs(dtheta) / step)); k > n {
			n = k
		}
	}
	for i := 1; i <= n; i++ {
		th := theta1 + dtheta*float64(i)/float64(n)
		sin, cos := math.Sincos(th)
		px := cx + rx*cos*cosp - ry*sin*sinp
		py := cy + rx*cos*sinp + ry*sin*cosp
		t.lineTo(px, py)
	}
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	l := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
	if l == 0 {
		return 0
	}
	r := (ux*vx + uy*vy) / l
	a := math.Acos(math.Max(-1, math.Min(1, r)))
	if ux*vy-uy*vx < 0 {
		return -a
	}
	return a
}
