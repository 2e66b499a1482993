package h5

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	reco "github.com/next-exp/reco_go/pkg"
)

type Writer struct {
	File       *hdf5.File
	Filename   string
	RunGroup   *hdf5.Group
	RecoGroup  *hdf5.Group
	EventTable *hdf5.Dataset
	HitsTable  *hdf5.Dataset
	EvtCounter int
	HitCounter int
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename}
	writer.File, err = createFile(filename)
	if err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.RecoGroup, err = createGroup(writer.File, DefaultHitsGroup); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.EventTable, err = createTable(writer.RunGroup, "events", EventDataHDF5{}, compressionLevel); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.HitsTable, err = createTable(writer.RecoGroup, DefaultHitsTable, HitHDF5{}, compressionLevel); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	return writer, nil
}

// WriteCollection appends the event and its hits. Events without hits
// only get an entry in Run/events.
func (w *Writer) WriteCollection(hc reco.HitCollection) error {
	evt := []EventDataHDF5{{evt_number: int64(hc.Event), timestamp: hc.Time}}
	if err := writeArrayToTable(w.EventTable, &evt, w.EvtCounter); err != nil {
		return fmt.Errorf("event %d: %w", hc.Event, err)
	}
	w.EvtCounter++

	table := reco.TableFromCollection(hc)
	rows := make([]HitHDF5, len(table))
	for i, row := range table {
		rows[i] = toHDF5(row)
	}
	if err := writeArrayToTable(w.HitsTable, &rows, w.HitCounter); err != nil {
		return fmt.Errorf("event %d: %w", hc.Event, err)
	}
	w.HitCounter += len(rows)
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	if w.EventTable != nil {
		if err := w.EventTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing event table: %w", err))
		}
	}
	if w.HitsTable != nil {
		if err := w.HitsTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing hits table: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if w.RecoGroup != nil {
		if err := w.RecoGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing RECO group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
