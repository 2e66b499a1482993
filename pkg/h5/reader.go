package h5

import (
	hdf5 "github.com/jmbenlloch/go-hdf5"
	reco "github.com/next-exp/reco_go/pkg"
)

const (
	DefaultHitsGroup = "RECO"
	DefaultHitsTable = "Events"
)

// ReadHitCollections reads a hits table and returns one collection per
// event, in file order.
func ReadHitCollections(filename string, groupName string, tableName string) ([]reco.HitCollection, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	group, err := file.OpenGroup(groupName)
	if err != nil {
		return nil, &ErrReadTable{TableName: groupName + "/" + tableName, Err: err}
	}
	defer group.Close()

	rows, err := readTable[HitHDF5](group, tableName)
	if err != nil {
		return nil, err
	}

	table := make(reco.HitTable, len(rows))
	for i, row := range rows {
		table[i] = fromHDF5(row)
	}
	return reco.CollectionsFromTable(table), nil
}
