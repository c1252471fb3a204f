// Package isoline selects contour thresholds and extracts contour-crossing
// glyphs from 2x2 pixel neighborhoods via marching squares.
package isoline

import (
	"math"
	"sort"

	"github.com/tuikit/gfx/canvas"
)

// Isoline is one contour level with optional presentation attributes.
type Isoline struct {
	Value float64
	Color canvas.Color
	Label string
}

// Equal returns count evenly spaced values strictly between min and max.
func Equal(min, max float64, count int) []float64 {
	if count <= 0 || max <= min {
		return nil
	}
	step := (max - min) / float64(count+1)
	vals := make([]float64, count)
	for i := range vals {
		vals[i] = min + step*float64(i+1)
	}
	return filterSpacing(vals, step)
}

// Quantile sorts and deduplicates the samples, forms midpoints between
// adjacent unique values and evenly picks count of them, never exceeding the
// number of available midpoints.
func Quantile(min, max float64, count int, samples []float64) []float64 {
	if count <= 0 || len(samples) < 2 {
		return nil
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	uniq := sorted[:1]
	for _, v := range sorted[1:] {
		if v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}
	if len(uniq) < 2 {
		return nil
	}
	mids := make([]float64, len(uniq)-1)
	for i := range mids {
		mids[i] = (uniq[i] + uniq[i+1]) / 2
	}

	spacing := (max - min) / float64(count+1)
	if count >= len(mids) {
		return filterSpacing(mids, spacing)
	}
	vals := make([]float64, 0, count)
	if count == 1 {
		vals = append(vals, mids[len(mids)/2])
	} else {
		for i := 0; i < count; i++ {
			pos := float64(i) * float64(len(mids)-1) / float64(count-1)
			vals = append(vals, mids[int(math.Round(pos))])
		}
	}
	return filterSpacing(vals, spacing)
}

// Nice rounds the implied step to the nearest 1/2/5 x 10^n magnitude and
// emits multiples of it strictly inside the range.
func Nice(min, max float64, count int) []float64 {
	if count <= 0 || max <= min {
		return nil
	}
	raw := (max - min) / float64(count+1)
	step := niceStep(raw)
	var vals []float64
	start := math.Ceil(min/step) * step
	for v := start; v < max; v += step {
		if v <= min {
			continue
		}
		vals = append(vals, v)
	}
	return filterSpacing(vals, raw)
}

// niceStep picks the {1,2,5}x10^n value closest to raw.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	best := 1.0
	for _, c := range []float64{1, 2, 5, 10} {
		if math.Abs(norm-c) < math.Abs(norm-best) {
			best = c
		}
	}
	return best * mag
}

// filterSpacing drops any value closer to its predecessor than the nominal
// equal-interval spacing, so near-flat regions don't produce visually
// duplicate contour lines.
func filterSpacing(vals []float64, spacing float64) []float64 {
	if len(vals) == 0 || spacing <= 0 {
		return vals
	}
	const slack = 1e-9
	out := vals[:1]
	for _, v := range vals[1:] {
		if v-out[len(out)-1] >= spacing-slack {
			out = append(out, v)
		}
	}
	return out
}
