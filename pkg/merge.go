package reco

import "math"

// MergeStats counts what happened to the NN hits of one merge.
type MergeStats struct {
	NNHits   int
	Merged   int
	Orphaned int
	LostE    float64
	LostEc   float64
}

func (s *MergeStats) add(other MergeStats) {
	s.NNHits += other.NNHits
	s.Merged += other.Merged
	s.Orphaned += other.Orphaned
	s.LostE += other.LostE
	s.LostEc += other.LostEc
}

// MergeNNHits returns the valid hits with the energy of the NN hits added
// to the hits closest in Z. See MergeNNHitsWithStats.
func MergeNNHits(hits []Hit, samePeak bool) []Hit {
	merged, _ := MergeNNHitsWithStats(hits, samePeak)
	return merged
}

// MergeNNHitsWithStats gives the raw and corrected energy of every NN hit
// to the valid hits closest in Z, proportionally to their own raw and
// corrected energies. Hits at the same closest distance share the energy.
// With samePeak only hits of the NN hit's peak are candidates. An NN hit
// without candidates, or without a comparable Z, is skipped and its energy
// is reported as lost.
// The input is never modified; if there are no valid hits the result is empty.
func MergeNNHitsWithStats(hits []Hit, samePeak bool) ([]Hit, MergeStats) {
	var stats MergeStats
	nnHits := make([]Hit, 0)
	valid := make([]Hit, 0, len(hits))
	for _, h := range hits {
		if h.IsNN() {
			nnHits = append(nnHits, h)
		} else {
			valid = append(valid, h)
		}
	}
	stats.NNHits = len(nnHits)
	if len(valid) == 0 {
		return []Hit{}, stats
	}

	// Accumulated so that every NN hit sees the energies before merging.
	addE := make([]float64, len(valid))
	addEc := make([]float64, len(valid))

	for _, nn := range nnHits {
		candidates := make([]int, 0, len(valid))
		for i, h := range valid {
			if !samePeak || h.Npeak == nn.Npeak {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			stats.Orphaned++
			stats.LostE += nn.E
			stats.LostEc += nn.Ec
			continue
		}

		zClosest := math.Inf(1)
		for _, i := range candidates {
			if dz := math.Abs(valid[i].Z - nn.Z); dz < zClosest {
				zClosest = dz
			}
		}

		closest := make([]int, 0, 2)
		rawWeights := make([]float64, 0, 2)
		corWeights := make([]float64, 0, 2)
		for _, i := range candidates {
			if isClose(math.Abs(valid[i].Z-nn.Z), zClosest) {
				closest = append(closest, i)
				rawWeights = append(rawWeights, valid[i].E)
				corWeights = append(corWeights, valid[i].Ec)
			}
		}
		// NaN Z on either side leaves nothing to compare with
		if len(closest) == 0 {
			stats.Orphaned++
			stats.LostE += nn.E
			stats.LostEc += nn.Ec
			continue
		}

		rawShares := SplitEnergy(nn.E, rawWeights)
		corShares := SplitEnergy(nn.Ec, corWeights)
		for k, i := range closest {
			addE[i] += rawShares[k]
			addEc[i] += corShares[k]
		}
		stats.Merged++
	}

	for i := range valid {
		valid[i].E += addE[i]
		valid[i].Ec += addEc[i]
	}
	return valid, stats
}
