package reco

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IsolationMode selects how isolated hits are detected.
type IsolationMode interface {
	isolationMode()
}

// SensorIsolation drops hits whose closest neighbour in XY is further
// than sqrt(DX²+DY²).
type SensorIsolation struct {
	DX float64
	DY float64
}

// ClusterIsolation drops hits that do not belong to a dense 3D cluster.
// Coordinates are normalised by DX, DY, DZ; a hit seeds a cluster when
// more than NHits hits (itself included) are within sqrt(3) of it.
type ClusterIsolation struct {
	DX    float64
	DY    float64
	DZ    float64
	NHits int
}

func (SensorIsolation) isolationMode()  {}
func (ClusterIsolation) isolationMode() {}

const DefaultDropMinimum = 3

// ParseIsolationMode turns a drop distance list into a mode: 2 entries
// select SensorIsolation, 3 select ClusterIsolation.
func ParseIsolationMode(distance []float64, nhits int) (IsolationMode, error) {
	switch len(distance) {
	case 2:
		return SensorIsolation{DX: distance[0], DY: distance[1]}, nil
	case 3:
		return ClusterIsolation{DX: distance[0], DY: distance[1], DZ: distance[2], NHits: nhits}, nil
	default:
		return nil, &ErrInvalidDropDistance{Distance: distance}
	}
}

// DropIsolated removes isolated hits from every (event, peak) group of a
// table and rescales vars over the survivors of the group. NN hits are not
// positioned: they are left out of the neighbour search and kept as they are.
func DropIsolated(mode IsolationMode, vars []string) (TableFunc, error) {
	variables, err := ParseVariables(vars)
	if err != nil {
		return nil, err
	}
	switch m := mode.(type) {
	case SensorIsolation:
		return PerGroup(dropIsolatedSensors(m, variables)), nil
	case ClusterIsolation:
		return PerGroup(dropIsolatedClusters(m, variables)), nil
	default:
		return nil, &ErrInvalidDropDistance{}
	}
}

func dropIsolatedSensors(mode SensorIsolation, vars []Variable) TableFunc {
	dist := math.Hypot(mode.DX, mode.DY)

	return func(group HitTable) HitTable {
		sensors := sensorRows(group)
		dr := PairwiseDistances(xyPoints(sensors.rows), nil)
		if !hasPositive(dr) {
			return sensors.keep(group, nil, vars)
		}

		mask := make([]bool, len(sensors.rows))
		for i := range sensors.rows {
			mask[i] = closestOther(dr, i) <= dist
		}
		return sensors.keep(group, mask, vars)
	}
}

// sensorSet holds the rows of a group with a sensor position and where they
// sit in the group. NN hits carry no position and are never a neighbour.
type sensorSet struct {
	rows  HitTable
	index []int
}

func sensorRows(group HitTable) sensorSet {
	set := sensorSet{rows: make(HitTable, 0, len(group)), index: make([]int, 0, len(group))}
	for i, row := range group {
		if !row.IsNN() {
			set.rows = append(set.rows, row)
			set.index = append(set.index, i)
		}
	}
	return set
}

// keep rebuilds the group in its original order from the masked sensor rows,
// rescaled over every sensor row, and the NN rows, which pass untouched.
// A nil mask keeps no sensor row.
func (s sensorSet) keep(group HitTable, mask []bool, vars []Variable) HitTable {
	pass := make(HitTable, 0, len(s.rows))
	kept := make(map[int]int, len(s.rows))
	for i := range mask {
		if mask[i] {
			kept[s.index[i]] = len(pass)
			pass = append(pass, s.rows[i])
		}
	}
	if len(pass) > 0 {
		rescale(pass, s.rows, vars)
	}

	out := make(HitTable, 0, len(group))
	for i, row := range group {
		if row.IsNN() {
			out = append(out, row)
		} else if k, ok := kept[i]; ok {
			out = append(out, pass[k])
		}
	}
	return out
}

// closestOther is the smallest strictly positive distance in row i.
// Hits sitting on top of each other do not count as neighbours.
func closestOther(dr *mat.Dense, i int) float64 {
	closest := math.Inf(1)
	_, n := dr.Dims()
	for j := 0; j < n; j++ {
		if d := dr.At(i, j); d > 0 && d < closest {
			closest = d
		}
	}
	return closest
}

func dropIsolatedClusters(mode ClusterIsolation, vars []Variable) TableFunc {
	scale := []float64{mode.DX, mode.DY, mode.DZ}
	// normalised space: one cell away in every dimension
	dist := math.Sqrt(3)

	return func(group HitTable) HitTable {
		sensors := sensorRows(group)
		dr := PairwiseDistances(xyzPoints(sensors.rows), scale)
		if !hasPositive(dr) {
			return sensors.keep(group, nil, vars)
		}

		n := len(sensors.rows)
		mask := make([]bool, n)
		for i := 0; i < n; i++ {
			neighbours := 0
			for j := 0; j < n; j++ {
				if dr.At(i, j) < dist {
					neighbours++
				}
			}
			mask[i] = neighbours > mode.NHits
		}
		return sensors.keep(group, expandMask(dr, mask, dist), vars)
	}
}

// expandMask grows the cluster mask with the neighbours of included hits
// until nothing changes, so the sparse edge of a cluster is kept. It runs at
// most len(mask) rounds.
func expandMask(dr *mat.Dense, mask []bool, dist float64) []bool {
	n := len(mask)
	expanded := make([]bool, n)
	copy(expanded, mask)
	for round := 0; round < n; round++ {
		next := make([]bool, n)
		changed := false
		for i := 0; i < n; i++ {
			next[i] = expanded[i]
			if expanded[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if expanded[j] && withinDistance(dr.At(i, j), dist) {
					next[i] = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
		expanded = next
	}
	return expanded
}

func withinDistance(d, dist float64) bool {
	return d <= dist || isClose(d, dist)
}
