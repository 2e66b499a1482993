package h5

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	reco "github.com/next-exp/reco_go/pkg"
)

// HitHDF5 is one row of the RECO/Events table. Field names are the
// column names, the HDF5 compound type is built from them.
type HitHDF5 struct {
	event    int64
	time     float64
	npeak    uint16
	Xpeak    float64
	Ypeak    float64
	nsipm    uint16
	X        float64
	Y        float64
	Xrms     float64
	Yrms     float64
	Z        float64
	Q        float64
	E        float64
	Qc       float64
	Ec       float64
	track_id int32
	Ep       float64
}

type EventDataHDF5 struct {
	evt_number int64
	timestamp  float64
}

func toHDF5(row reco.HitRow) HitHDF5 {
	return HitHDF5{
		event:    int64(row.Event),
		time:     row.Time,
		npeak:    uint16(row.Npeak),
		Xpeak:    row.Xpeak,
		Ypeak:    row.Ypeak,
		nsipm:    uint16(row.Nsipm),
		X:        row.X,
		Y:        row.Y,
		Xrms:     row.Xrms,
		Yrms:     row.Yrms,
		Z:        row.Z,
		Q:        row.Q,
		E:        row.E,
		Qc:       row.Qc,
		Ec:       row.Ec,
		track_id: int32(row.TrackID),
		Ep:       row.Ep,
	}
}

func fromHDF5(h HitHDF5) reco.HitRow {
	return reco.HitRow{
		Event: int(h.event),
		Time:  h.time,
		Hit: reco.Hit{
			Npeak:   int(h.npeak),
			Nsipm:   int(h.nsipm),
			X:       h.X,
			Y:       h.Y,
			Xrms:    h.Xrms,
			Yrms:    h.Yrms,
			Z:       h.Z,
			Q:       h.Q,
			E:       h.E,
			Xpeak:   h.Xpeak,
			Ypeak:   h.Ypeak,
			Qc:      h.Qc,
			Ec:      h.Ec,
			TrackID: int(h.track_id),
			Ep:      h.Ep,
		},
	}
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first nRows rows of the table.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, nRows int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(nRows)
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return fmt.Errorf("error resizing table: %w", err)
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return fmt.Errorf("error selecting hyperslab: %w", err)
	}

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing table: %w", err)
	}
	return nil
}

func readTable[T any](group *hdf5.Group, name string) ([]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrReadTable{TableName: name, Err: err}
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	rows := make([]T, space.SimpleExtentNPoints())
	if len(rows) == 0 {
		return rows, nil
	}
	if err := dset.Read(&rows); err != nil {
		return nil, &ErrReadTable{TableName: name, Err: err}
	}
	return rows, nil
}
