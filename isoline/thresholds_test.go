package isoline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	assert.Equal(t, []float64{20, 40, 60, 80}, Equal(0, 100, 4))
	assert.Equal(t, []float64{50}, Equal(0, 100, 1))
	assert.Nil(t, Equal(0, 100, 0))
	assert.Nil(t, Equal(5, 5, 3))
	assert.Nil(t, Equal(10, 0, 3))
}

func TestEqualStaysInsideRange(t *testing.T) {
	vals := Equal(-3, 7, 9)
	require.NotEmpty(t, vals)
	for _, v := range vals {
		assert.Greater(t, v, -3.0)
		assert.Less(t, v, 7.0)
	}
}

func TestQuantileTwoDistinctValues(t *testing.T) {
	// only one unique midpoint exists no matter how many are requested
	samples := []float64{1, 1, 1, 5, 5}
	vals := Quantile(1, 5, 5, samples)
	assert.Equal(t, []float64{3}, vals)
}

func TestQuantileSingleThresholdPicksMiddle(t *testing.T) {
	samples := []float64{0, 10, 20, 30, 40}
	vals := Quantile(0, 40, 1, samples)
	require.Len(t, vals, 1)
	assert.Equal(t, 25.0, vals[0])
}

func TestQuantileSpreadsAcrossMidpoints(t *testing.T) {
	samples := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	vals := Quantile(0, 100, 3, samples)
	require.Len(t, vals, 3)
	assert.Equal(t, 5.0, vals[0])
	assert.Equal(t, 95.0, vals[2])
}

func TestQuantileDegenerateSamples(t *testing.T) {
	assert.Nil(t, Quantile(0, 1, 3, nil))
	assert.Nil(t, Quantile(0, 1, 3, []float64{7}))
	assert.Nil(t, Quantile(0, 1, 3, []float64{7, 7, 7}))
}

func TestNiceStepsAreRound(t *testing.T) {
	vals := Nice(0, 100, 4)
	require.NotEmpty(t, vals)
	for _, v := range vals {
		assert.Equal(t, 0.0, mod(v, 20), "value %v", v)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 100.0)
	}
}

func mod(a, b float64) float64 {
	m := a - float64(int(a/b))*b
	if m < 1e-9 || b-m < 1e-9 {
		return 0
	}
	return m
}

func TestNiceOddRange(t *testing.T) {
	vals := Nice(0.37, 9.12, 5)
	require.NotEmpty(t, vals)
	for _, v := range vals {
		assert.Greater(t, v, 0.37)
		assert.Less(t, v, 9.12)
	}
}

func TestFilterSpacingDropsCrowdedValues(t *testing.T) {
	got := filterSpacing([]float64{1, 1.1, 3, 5}, 2)
	assert.Equal(t, []float64{1, 3, 5}, got)
}
