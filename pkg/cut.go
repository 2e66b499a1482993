package reco

// CutOverQ keeps, per (event, peak) group, the hits with Q above qThreshold
// and rescales vars so their group totals are unchanged.
func CutOverQ(qThreshold float64, vars []string) (TableFunc, error) {
	variables, err := ParseVariables(vars)
	if err != nil {
		return nil, err
	}
	cut := cutAndRedistribute(func(h *Hit) bool { return h.Q > qThreshold }, variables)
	return PerGroup(cut), nil
}

func cutAndRedistribute(keep func(*Hit) bool, vars []Variable) TableFunc {
	return func(group HitTable) HitTable {
		pass := make(HitTable, 0, len(group))
		for i := range group {
			if keep(&group[i].Hit) {
				pass = append(pass, group[i])
			}
		}
		if len(pass) == 0 {
			return pass
		}
		rescale(pass, group, vars)
		return pass
	}
}
