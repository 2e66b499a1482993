package reco

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

type SummaryRow struct {
	Event      int     `csv:"event"`
	HitsIn     int     `csv:"hits_in"`
	HitsOut    int     `csv:"hits_out"`
	EIn        float64 `csv:"e_in"`
	EOut       float64 `csv:"e_out"`
	NNHits     int     `csv:"nn_hits"`
	NNOrphaned int     `csv:"nn_orphaned"`
	NNLostE    float64 `csv:"nn_lost_e"`
}

func NewSummaryRow(stats EventStats) SummaryRow {
	return SummaryRow{
		Event:      stats.Event,
		HitsIn:     stats.HitsIn,
		HitsOut:    stats.HitsOut,
		EIn:        stats.EIn,
		EOut:       stats.EOut,
		NNHits:     stats.Merge.NNHits,
		NNOrphaned: stats.Merge.Orphaned,
		NNLostE:    stats.Merge.LostE,
	}
}

// WriteSummary writes one CSV line per processed event.
func WriteSummary(path string, rows []SummaryRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating summary file %q: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing summary file %q: %w", path, err)
	}
	return nil
}

func ReadSummary(path string) ([]SummaryRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening summary file %q: %w", path, err)
	}
	defer file.Close()

	rows := make([]SummaryRow, 0)
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error reading summary file %q: %w", path, err)
	}
	return rows, nil
}
