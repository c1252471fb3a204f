package shader

import "math"

// Utils bundles the helper functions handed to the shader callback.
type Utils struct{}

// Clamp limits v to [lo, hi].
func (Utils) Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b.
func (Utils) Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns the fractional part of v.
func (Utils) Fract(v float64) float64 {
	return v - math.Floor(v)
}

// Smoothstep is the usual hermite ramp between edges.
func (u Utils) Smoothstep(edge0, edge1, v float64) float64 {
	if edge0 == edge1 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	t := u.Clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Hash is a cheap 2D value noise in [0,1).
func (u Utils) Hash(x, y float64) float64 {
	return u.Fract(math.Sin(x*127.1+y*311.7) * 43758.5453123)
}
