package reco

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xyRow(event, npeak int, x, y, e float64) HitRow {
	return HitRow{Event: event, Hit: Hit{Npeak: npeak, X: x, Y: y, Q: 10, E: e, Ec: 2 * e}}
}

func xyzRow(x, y, z, e float64) HitRow {
	return HitRow{Event: 1, Hit: Hit{X: x, Y: y, Z: z, Q: 10, E: e, Ec: e}}
}

func tableSum(table HitTable, v Variable) float64 {
	return nanSum(column(table, v))
}

func TestParseIsolationMode(t *testing.T) {
	mode, err := ParseIsolationMode([]float64{10, 12}, 3)
	require.NoError(t, err)
	assert.Equal(t, SensorIsolation{DX: 10, DY: 12}, mode)

	mode, err = ParseIsolationMode([]float64{10, 12, 4}, 5)
	require.NoError(t, err)
	assert.Equal(t, ClusterIsolation{DX: 10, DY: 12, DZ: 4, NHits: 5}, mode)
}

func TestParseIsolationModeInvalidLength(t *testing.T) {
	for _, distance := range [][]float64{nil, {1.0}, {1, 2, 3, 4}} {
		mode, err := ParseIsolationMode(distance, 3)
		assert.Nil(t, mode)
		var invalid *ErrInvalidDropDistance
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, distance, invalid.Distance)
	}
}

func TestDropIsolatedUnknownVariable(t *testing.T) {
	_, err := DropIsolated(SensorIsolation{DX: 1, DY: 1}, []string{"E", "Charge"})
	var unknown *ErrUnknownVariable
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Charge", unknown.Name)
}

func TestDropIsolatedSensorsGrid(t *testing.T) {
	table := HitTable{}
	for x := 0.0; x < 3; x++ {
		for y := 0.0; y < 3; y++ {
			if x == 2 && y == 2 {
				continue
			}
			table = append(table, xyRow(1, 0, x, y, 1))
		}
	}
	table = append(table, xyRow(1, 0, 5, 5, 4))

	drop, err := DropIsolated(SensorIsolation{DX: 1, DY: 1}, []string{"E", "Ec"})
	require.NoError(t, err)
	out := drop(table)

	require.Len(t, out, 8)
	for _, row := range out {
		assert.Less(t, row.X, 3.0)
		assert.InDelta(t, 1.5, row.E, 1e-12)
	}
	assert.InDelta(t, tableSum(table, VarE), tableSum(out, VarE), 1e-9)
	assert.InDelta(t, tableSum(table, VarEc), tableSum(out, VarEc), 1e-9)
}

func TestDropIsolatedSensorsDiagonalNeighbour(t *testing.T) {
	table := HitTable{xyRow(1, 0, 0, 0, 1), xyRow(1, 0, 1, 1, 1), xyRow(1, 0, 3, 0, 1)}

	drop, err := DropIsolated(SensorIsolation{DX: 1, DY: 1}, []string{"E"})
	require.NoError(t, err)
	out := drop(table)

	require.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].X)
	assert.Equal(t, 1.0, out[1].X)
	// Ec is not redistributed
	assert.Equal(t, 2.0, out[0].Ec)
}

func TestDropIsolatedSensorsDegenerateGroups(t *testing.T) {
	drop, err := DropIsolated(SensorIsolation{DX: 1, DY: 1}, []string{"E"})
	require.NoError(t, err)

	assert.Empty(t, drop(HitTable{xyRow(1, 0, 0, 0, 1)}))
	assert.Empty(t, drop(HitTable{xyRow(1, 0, 0, 0, 1), xyRow(1, 0, 0, 0, 1)}))
	assert.Empty(t, drop(HitTable{xyRow(1, 0, 0, 0, 1), xyRow(1, 0, 9, 9, 1)}))
	assert.Empty(t, drop(HitTable{}))
}

func TestDropIsolatedSensorsPerGroup(t *testing.T) {
	table := HitTable{
		xyRow(1, 0, 0, 0, 1),
		xyRow(1, 0, 1, 0, 1),
		xyRow(1, 1, 1, 0, 3),
		xyRow(2, 0, 0, 0, 1),
		xyRow(2, 0, 0, 1, 1),
	}
	drop, err := DropIsolated(SensorIsolation{DX: 1, DY: 1}, []string{"E"})
	require.NoError(t, err)
	out := drop(table)

	// the lonely hit of (1, 1) goes, every other group is kept whole
	require.Len(t, out, 4)
	assert.Equal(t, []int{1, 1, 2, 2}, []int{out[0].Event, out[1].Event, out[2].Event, out[3].Event})
	for _, row := range out {
		assert.Equal(t, 0, row.Npeak)
		assert.Equal(t, 1.0, row.E)
	}
}

// denseCluster has 5 hits, each with at least 3 others within sqrt(3).
func denseCluster() HitTable {
	return HitTable{
		xyzRow(0, 0, 0, 1),
		xyzRow(10, 0, 0, 1),
		xyzRow(0, 10, 0, 1),
		xyzRow(10, 10, 0, 1),
		xyzRow(0, 0, 1, 1),
	}
}

func TestDropIsolatedClustersKeepsEdge(t *testing.T) {
	table := denseCluster()
	// exactly sqrt(3) away from (10, 10, 0) in normalised units
	table = append(table, xyzRow(20, 20, 1, 2))
	table = append(table, xyzRow(100, 100, 10, 5))

	drop, err := DropIsolated(ClusterIsolation{DX: 10, DY: 10, DZ: 1, NHits: 3}, []string{"E", "Ec"})
	require.NoError(t, err)
	out := drop(table)

	require.Len(t, out, 6)
	assert.Equal(t, 20.0, out[5].X)
	assert.InDelta(t, tableSum(table, VarE), tableSum(out, VarE), 1e-9)
	assert.InDelta(t, tableSum(table, VarEc), tableSum(out, VarEc), 1e-9)
}

func TestDropIsolatedClustersExpandsChain(t *testing.T) {
	table := denseCluster()
	table = append(table, xyzRow(20, 20, 1, 1))
	table = append(table, xyzRow(30, 30, 2, 1))
	table = append(table, xyzRow(40, 40, 3, 1))

	drop, err := DropIsolated(ClusterIsolation{DX: 10, DY: 10, DZ: 1, NHits: 3}, []string{"E"})
	require.NoError(t, err)

	assert.Len(t, drop(table), 8)
}

func TestDropIsolatedClustersNoSeed(t *testing.T) {
	table := HitTable{
		xyzRow(10, 10, 0, 1),
		xyzRow(20, 20, 1, 1),
	}
	drop, err := DropIsolated(ClusterIsolation{DX: 10, DY: 10, DZ: 1, NHits: 3}, []string{"E"})
	require.NoError(t, err)

	assert.Empty(t, drop(table))
	assert.Empty(t, drop(HitTable{xyzRow(0, 0, 0, 1)}))
}

func TestDropIsolatedClustersMinimum(t *testing.T) {
	drop, err := DropIsolated(ClusterIsolation{DX: 10, DY: 10, DZ: 1, NHits: 5}, []string{"E"})
	require.NoError(t, err)

	// 5 hits count 5 with themselves, never more than 5
	assert.Empty(t, drop(denseCluster()))
}

func TestExpandMaskBoundedRounds(t *testing.T) {
	points := [][]float64{{0}, {1}, {2}, {3}, {4}}
	dr := PairwiseDistances(points, nil)
	mask := expandMask(dr, []bool{true, false, false, false, false}, 1)

	assert.Equal(t, []bool{true, true, true, true, true}, mask)
}

func TestDropIsolatedIgnoresNNHits(t *testing.T) {
	placeholder := HitRow{Event: 1, Hit: NewPlaceholderHit(0, 2, 3, 3, 0, 0)}

	drop, err := DropIsolated(SensorIsolation{DX: 10, DY: 10}, []string{"E"})
	require.NoError(t, err)

	out := drop(HitTable{xyRow(1, 0, 10, 0, 1), placeholder})
	require.Len(t, out, 1)
	assert.True(t, out[0].IsNN())
	assert.Equal(t, 3.0, out[0].E)

	table := HitTable{xyRow(1, 0, 0, 0, 1), placeholder, xyRow(1, 0, 1, 0, 1), xyRow(1, 0, 90, 0, 2)}
	out = drop(table)
	require.Len(t, out, 3)
	assert.Equal(t, 0.0, out[0].X)
	assert.True(t, out[1].IsNN())
	assert.Equal(t, 1.0, out[2].X)
	assert.InDelta(t, 2.0, out[0].E, 1e-12)
	assert.InDelta(t, tableSum(table, VarE), tableSum(out, VarE), 1e-9)
}

func TestDropIsolatedClustersIgnoresNNHits(t *testing.T) {
	table := denseCluster()[:4]
	for i := 0; i < 3; i++ {
		table = append(table, HitRow{Event: 1, Hit: NewPlaceholderHit(0, 0, 1, 1, 0, 0)})
	}
	drop, err := DropIsolated(ClusterIsolation{DX: 10, DY: 10, DZ: 1, NHits: 4}, []string{"E"})
	require.NoError(t, err)
	out := drop(table)

	// the 4 sensors alone are not dense enough, the NN hits do not help
	require.Len(t, out, 3)
	for _, row := range out {
		assert.True(t, row.IsNN())
	}
}
