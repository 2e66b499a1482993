package reco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairwiseDistances2D(t *testing.T) {
	points := [][]float64{{0, 0}, {3, 4}, {0, 4}}
	dr := PairwiseDistances(points, nil)

	r, c := dr.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	assert.InDelta(t, 5.0, dr.At(0, 1), 1e-12)
	assert.InDelta(t, 4.0, dr.At(0, 2), 1e-12)
	assert.InDelta(t, 3.0, dr.At(1, 2), 1e-12)
	for i := 0; i < 3; i++ {
		assert.Zero(t, dr.At(i, i))
		for j := 0; j < 3; j++ {
			assert.Equal(t, dr.At(i, j), dr.At(j, i))
		}
	}
}

func TestPairwiseDistancesNormalised(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {10, 10, 1}, {20, 0, 0}}
	dr := PairwiseDistances(points, []float64{10, 10, 1})

	assert.InDelta(t, math.Sqrt(3), dr.At(0, 1), 1e-12)
	assert.InDelta(t, 2.0, dr.At(0, 2), 1e-12)
	// input untouched
	assert.Equal(t, []float64{10, 10, 1}, points[1])
}

func TestPairwiseDistancesDegenerate(t *testing.T) {
	assert.False(t, hasPositive(PairwiseDistances(nil, nil)))
	assert.False(t, hasPositive(PairwiseDistances([][]float64{{1, 2}}, nil)))
	assert.False(t, hasPositive(PairwiseDistances([][]float64{{1, 2}, {1, 2}}, nil)))
	assert.True(t, hasPositive(PairwiseDistances([][]float64{{1, 2}, {1, 3}}, nil)))
}

func TestIsClose(t *testing.T) {
	assert.True(t, isClose(1.0, 1.0+1e-9))
	assert.True(t, isClose(0, 1e-9))
	assert.False(t, isClose(1.0, 1.001))
}
