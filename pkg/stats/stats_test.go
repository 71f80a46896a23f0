package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
		{150, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(values, tt.p), 1e-12, "p=%v", tt.p)
	}
	// input left untouched
	assert.Equal(t, []float64{4, 1, 3, 2}, values)
}

func TestPercentile_Edges(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 25))
	assert.Equal(t, 7.0, Median([]float64{7}))
}

func TestQuartiles(t *testing.T) {
	q25, q50, q75 := Quartiles([]float64{10, 20, 30, 40, 50})
	assert.Equal(t, 20.0, q25)
	assert.Equal(t, 30.0, q50)
	assert.Equal(t, 40.0, q75)
}

func TestMinMaxClamp(t *testing.T) {
	assert.Equal(t, 9.0, Max([]float64{3, 9, -1}))
	assert.Equal(t, -1.0, Min([]float64{3, 9, -1}))
	assert.True(t, math.IsNaN(Max(nil)))

	assert.Equal(t, 0.5, Clamp(0.1, 0.5, 35))
	assert.Equal(t, 35.0, Clamp(40, 0.5, 35))
	assert.Equal(t, 12.0, Clamp(12, 0.5, 35))
	assert.Equal(t, 18, ClampInt(3, 18, 80))
	assert.Equal(t, 80, ClampInt(95, 18, 80))
}
