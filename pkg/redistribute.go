package reco

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SplitEnergy shares total among items proportionally to weights.
// A single item always gets the whole total. A zero weight sum gives
// NaN or Inf entries, never a panic.
func SplitEnergy(total float64, weights []float64) []float64 {
	if len(weights) == 1 {
		return []float64{total}
	}
	sum := floats.Sum(weights)
	shares := make([]float64, len(weights))
	for i, w := range weights {
		shares[i] = total * w / sum
	}
	return shares
}

func nanSum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

func column(table HitTable, v Variable) []float64 {
	values := make([]float64, len(table))
	for i := range table {
		values[i] = v.Get(&table[i].Hit)
	}
	return values
}

// rescale multiplies each variable of pass so that its sum matches the
// sum over all. NaN entries are skipped in both sums.
func rescale(pass HitTable, all HitTable, vars []Variable) {
	for _, v := range vars {
		factor := nanSum(column(all, v)) / nanSum(column(pass, v))
		for i := range pass {
			v.Set(&pass[i].Hit, v.Get(&pass[i].Hit)*factor)
		}
	}
}
