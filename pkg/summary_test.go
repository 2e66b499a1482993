package reco

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummary(t *testing.T) {
	stats := EventStats{
		Event:   12,
		HitsIn:  30,
		HitsOut: 21,
		EIn:     1.5,
		EOut:    1.25,
		Merge:   MergeStats{NNHits: 4, Merged: 3, Orphaned: 1, LostE: 0.25},
	}
	rows := []SummaryRow{NewSummaryRow(stats)}
	path := filepath.Join(t.TempDir(), "summary.csv")

	require.NoError(t, WriteSummary(path, rows))
	read, err := ReadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, rows, read)
	assert.Equal(t, 1, read[0].NNOrphaned)
}

func TestWriteSummaryBadPath(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing", "summary.csv"), nil)
	assert.Error(t, err)
}
