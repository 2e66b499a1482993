package reco

import (
	"errors"
	"testing"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelPositionSchema = `CREATE TABLE ChannelPosition (
	MinRun   INTEGER,
	MaxRun   INTEGER,
	SensorID INTEGER,
	X        REAL,
	Y        REAL
)`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := ConnectToLocalDatabase(":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a new database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	db.MustExec(channelPositionSchema)
	insert := "INSERT INTO ChannelPosition (MinRun, MaxRun, SensorID, X, Y) VALUES (?, ?, ?, ?, ?)"
	sensorID := 1000
	for _, x := range []float64{-15.55, 0, 15.55} {
		for _, y := range []float64{-15.55, 0, 15.55, 31.1} {
			db.MustExec(insert, 0, 100000, sensorID, x, y)
			sensorID++
		}
	}
	// PMTs and other runs are ignored
	db.MustExec(insert, 0, 100000, 1, 0.1, 0.1)
	db.MustExec(insert, 200000, 300000, 5000, 1.0, 1.0)
	return db
}

func TestLoadSensorPitch(t *testing.T) {
	db := newTestDB(t)

	pitchX, pitchY, err := LoadSensorPitch(db, 12000)
	require.NoError(t, err)
	assert.InDelta(t, 15.55, pitchX, 1e-9)
	assert.InDelta(t, 15.55, pitchY, 1e-9)
}

func TestLoadSensorPitchUnknownRun(t *testing.T) {
	db := newTestDB(t)

	_, _, err := LoadSensorPitch(db, 150000)
	var noSensors *ErrNoSensors
	require.True(t, errors.As(err, &noSensors))
	assert.Equal(t, 150000, noSensors.RunNumber)
}

func TestApplyPitch(t *testing.T) {
	distance := []float64{10, 10, 4}
	assert.Equal(t, []float64{15.55, 15.55, 4}, ApplyPitch(distance, 15.55, 15.55))
	assert.Equal(t, []float64{10, 10, 4}, distance)
	assert.Equal(t, []float64{1}, ApplyPitch([]float64{1}, 15.55, 15.55))
}
