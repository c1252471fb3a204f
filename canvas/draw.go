package canvas

// FillRect fills the rectangle with the current color. Partially
// out-of-bounds rectangles clip to the surface.
func (s *Surface) FillRect(x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.SetPixelColor(px, py, s.color, true)
		}
	}
}

// ClearRect turns off every draw-layer pixel in the rectangle.
func (s *Surface) ClearRect(x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.SetPixelColor(px, py, Transparent, false)
		}
	}
}

// DrawRect draws the rectangle outline with the current color.
func (s *Surface) DrawRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for px := x; px < x+w; px++ {
		s.SetPixelColor(px, y, s.color, true)
		s.SetPixelColor(px, y+h-1, s.color, true)
	}
	for py := y; py < y+h; py++ {
		s.SetPixelColor(x, py, s.color, true)
		s.SetPixelColor(x+w-1, py, s.color, true)
	}
}

// DrawLine draws a line with Bresenham's algorithm. Works in all octants.
func (s *Surface) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		s.SetPixelColor(x0, y0, s.color, true)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline using the midpoint algorithm.
func (s *Surface) DrawCircle(cx, cy, r int) {
	if r < 0 {
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		s.circlePoints(cx, cy, x, y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (s *Surface) circlePoints(cx, cy, x, y int) {
	s.SetPixelColor(cx+x, cy+y, s.color, true)
	s.SetPixelColor(cx-x, cy+y, s.color, true)
	s.SetPixelColor(cx+x, cy-y, s.color, true)
	s.SetPixelColor(cx-x, cy-y, s.color, true)
	s.SetPixelColor(cx+y, cy+x, s.color, true)
	s.SetPixelColor(cx-y, cy+x, s.color, true)
	s.SetPixelColor(cx+y, cy-x, s.color, true)
	s.SetPixelColor(cx-y, cy-x, s.color, true)
}

// DrawEllipse draws an axis-aligned ellipse outline (midpoint algorithm).
func (s *Surface) DrawEllipse(cx, cy, rx, ry int) {
	if rx < 0 || ry < 0 {
		return
	}
	if rx == 0 || ry == 0 {
		s.DrawLine(cx-rx, cy-ry, cx+rx, cy+ry)
		return
	}

	rx2 := rx * rx
	ry2 := ry * ry

	// Region 1: slope > -1.
	x, y := 0, ry
	px, py := 0, 2*rx2*y
	p := ry2 - rx2*ry + (rx2+2)/4
	for px < py {
		s.ellipsePoints(cx, cy, x, y)
		x++
		px += 2 * ry2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			p += ry2 + px - py
		}
	}

	// Region 2: slope <= -1.
	p = ry2*(2*x+1)*(2*x+1)/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		s.ellipsePoints(cx, cy, x, y)
		y--
		py -= 2 * rx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += 2 * ry2
			p += rx2 - py + px
		}
	}
}

func (s *Surface) ellipsePoints(cx, cy, x, y int) {
	s.SetPixelColor(cx+x, cy+y, s.color, true)
	s.SetPixelColor(cx-x, cy+y, s.color, true)
	s.SetPixelColor(cx+x, cy-y, s.color, true)
	s.SetPixelColor(cx-x, cy-y, s.color, true)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
