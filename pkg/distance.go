package reco

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PairwiseDistances returns the NxN euclidean distance matrix of points.
// If scale is not nil every coordinate is divided by the matching entry
// before computing distances.
func PairwiseDistances(points [][]float64, scale []float64) *mat.Dense {
	n := len(points)
	if n == 0 {
		return &mat.Dense{}
	}
	normalised := points
	if scale != nil {
		normalised = make([][]float64, n)
		for i, p := range points {
			normalised[i] = make([]float64, len(p))
			floats.DivTo(normalised[i], p, scale)
		}
	}

	distances := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(normalised[i], normalised[j], 2)
			distances.Set(i, j, d)
			distances.Set(j, i, d)
		}
	}
	return distances
}

// hasPositive reports whether any pair of points is apart.
func hasPositive(distances *mat.Dense) bool {
	n, _ := distances.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if distances.At(i, j) > 0 {
				return true
			}
		}
	}
	return false
}

func xyPoints(table HitTable) [][]float64 {
	points := make([][]float64, len(table))
	for i, row := range table {
		points[i] = []float64{row.X, row.Y}
	}
	return points
}

func xyzPoints(table HitTable) [][]float64 {
	points := make([][]float64, len(table))
	for i, row := range table {
		points[i] = []float64{row.X, row.Y, row.Z}
	}
	return points
}

// isClose mirrors numpy.isclose with its default tolerances.
func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}
