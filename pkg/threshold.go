package reco

import (
	"math"
	"sort"

	"golang.org/x/exp/maps"
)

// ThresholdHits drops, slice by slice in Z, the hits with charge below th
// and gives their energy to the surviving hits of the same slice. A slice
// with no surviving hit becomes a single NN hit carrying the slice energy.
// With onCorrected the cut is applied on Qc instead of Q. Hits with a NaN Z
// belong to no slice and are appended unchanged. A zero threshold returns
// hits untouched.
func ThresholdHits(hits []Hit, th float64, onCorrected bool) []Hit {
	if th == 0 {
		return hits
	}

	newHits := make([]Hit, 0, len(hits))
	for _, z := range distinctZ(hits) {
		slice := make([]Hit, 0)
		for _, h := range hits {
			if h.Z == z {
				slice = append(slice, h)
			}
		}

		rawEs := make([]float64, len(slice))
		corEs := make([]float64, len(slice))
		for i, h := range slice {
			rawEs[i] = h.E
			corEs[i] = h.Ec
		}
		rawESlice := 0.0
		for _, e := range rawEs {
			rawESlice += e
		}
		corESlice := nanSum(corEs) + epsilon

		passed := make([]Hit, 0, len(slice))
		passedRaw := make([]float64, 0, len(slice))
		passedCor := make([]float64, 0, len(slice))
		for _, h := range slice {
			q := h.Q
			if onCorrected {
				q = h.Qc
			}
			if q >= th {
				passed = append(passed, h)
				passedRaw = append(passedRaw, h.E)
				passedCor = append(passedCor, h.Ec)
			}
		}

		if len(passed) == 0 {
			first := slice[0]
			newHits = append(newHits, NewPlaceholderHit(first.Npeak, z, rawESlice, corESlice, first.Xpeak, first.Ypeak))
			continue
		}

		rawShares := SplitEnergy(rawESlice, passedRaw)
		corShares := SplitEnergy(corESlice, passedCor)
		for i := range passed {
			passed[i].E = rawShares[i]
			passed[i].Ec = corShares[i]
		}
		newHits = append(newHits, passed...)
	}
	for _, h := range hits {
		if math.IsNaN(h.Z) {
			newHits = append(newHits, h)
		}
	}
	return newHits
}

// ThresholdTable applies ThresholdHits to every (event, peak) group.
func ThresholdTable(th float64, onCorrected bool) TableFunc {
	return PerGroup(func(group HitTable) HitTable {
		hits := ThresholdHits(group.Hits(), th, onCorrected)
		out := make(HitTable, len(hits))
		for i, h := range hits {
			out[i] = HitRow{Event: group[0].Event, Time: group[0].Time, Hit: h}
		}
		return out
	})
}

// epsilon keeps the corrected slice energy away from zero when every Ec is NaN.
var epsilon = math.Nextafter(1, 2) - 1

func distinctZ(hits []Hit) []float64 {
	seen := make(map[float64]struct{}, len(hits))
	for _, h := range hits {
		if math.IsNaN(h.Z) {
			continue
		}
		seen[h.Z] = struct{}{}
	}
	zs := maps.Keys(seen)
	sort.Float64s(zs)
	return zs
}
