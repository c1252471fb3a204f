package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTessellateLines(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 L 10 0 L 10 10"))
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Closed)
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}}, subs[0].Points)
}

func TestTessellateClosedSubpath(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 L 10 0 L 10 10 Z"))
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Closed)
	// the closing vertex returns to the subpath start
	last := subs[0].Points[len(subs[0].Points)-1]
	assert.Equal(t, Point{0, 0}, last)
}

func TestTessellateMultipleSubpaths(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 L 10 0 M 20 20 L 30 20"))
	require.Len(t, subs, 2)
	assert.Equal(t, Point{20, 20}, subs[1].Points[0])
}

func TestQuadEndpointsAndFlatness(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 Q 50 100 100 0"))
	require.Len(t, subs, 1)
	pts := subs[0].Points
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.Equal(t, Point{100, 0}, pts[len(pts)-1])
	// the curve must actually bend
	assert.Greater(t, len(pts), 4)
	for _, p := range pts {
		assert.LessOrEqual(t, p.Y, 50.0+DefaultTolerance)
		assert.GreaterOrEqual(t, p.Y, -DefaultTolerance)
	}
}

func TestCubicEndpoints(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 C 0 100 100 100 100 0"))
	pts := subs[0].Points
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.Equal(t, Point{100, 0}, pts[len(pts)-1])
	assert.Greater(t, len(pts), 4)
}

// A smooth segment reflects the previous control point through the current
// point, so Q followed by T is symmetric about the join.
func TestSmoothQuadReflection(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 Q 25 50 50 0 T 100 0"))
	pts := subs[0].Points
	assert.Equal(t, Point{100, 0}, pts[len(pts)-1])

	var minY, maxY float64
	for _, p := range pts {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	// first hump rises, reflected hump dips by the same amount
	assert.InDelta(t, maxY, -minY, 1.0)
	assert.Greater(t, maxY, 10.0)
}

// T with no preceding quad degenerates to a line from the current point.
func TestSmoothQuadWithoutPredecessor(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 T 10 0"))
	pts := subs[0].Points
	assert.Equal(t, Point{10, 0}, pts[len(pts)-1])
	for _, p := range pts {
		assert.InDelta(t, 0, p.Y, 1e-9)
	}
}

func TestArcEndpoints(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 A 50 50 0 0 1 100 0"))
	pts := subs[0].Points
	assert.Equal(t, Point{0, 0}, pts[0])
	p := pts[len(pts)-1]
	assert.InDelta(t, 100, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.Greater(t, len(pts), 4)
}

func TestArcRadiusUpscaling(t *testing.T) {
	// radii too small for the endpoints are scaled up until the arc fits
	subs := Tessellate(Parse("M 0 0 A 1 1 0 0 0 100 0"))
	pts := subs[0].Points
	p := pts[len(pts)-1]
	assert.InDelta(t, 100, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
}

func TestArcZeroRadiusIsLine(t *testing.T) {
	subs := Tessellate(Parse("M 0 0 A 0 0 0 0 1 10 10"))
	pts := subs[0].Points
	require.Len(t, pts, 2)
	assert.Equal(t, Point{10, 10}, pts[1])
}

func TestTessellateAspectCompressesX(t *testing.T) {
	subs := TessellateAspect(Parse("M 0 0 L 100 0"), 2.0)
	pts := subs[0].Points
	assert.InDelta(t, 50, pts[len(pts)-1].X, 1e-9)
}

func TestToleranceControlsVertexCount(t *testing.T) {
	coarse := TessellateTol(Parse("M 0 0 Q 50 100 100 0"), 5.0)
	fine := TessellateTol(Parse("M 0 0 Q 50 100 100 0"), 0.05)
	assert.Greater(t, len(fine[0].Points), len(coarse[0].Points))
}
