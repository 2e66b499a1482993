package reco

import (
	"fmt"
	"math"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	"golang.org/x/exp/maps"
	_ "modernc.org/sqlite"
)

// SiPMs have sensor IDs above this value, PMTs below.
const sipmIDThreshold = 999

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// ConnectToLocalDatabase opens a detector database stored in a sqlite file.
func ConnectToLocalDatabase(path string) (*sqlx.DB, error) {
	return sqlx.Connect("sqlite", path)
}

type SensorPosition struct {
	SensorID int     `db:"SensorID"`
	X        float64 `db:"X"`
	Y        float64 `db:"Y"`
}

func getSiPMPositionsFromDB(db *sqlx.DB, runNumber int) ([]SensorPosition, error) {
	query := "SELECT SensorID, X, Y FROM ChannelPosition WHERE MinRun <= ? and MaxRun >= ? and SensorID > ? ORDER BY SensorID"

	if configuration.Verbosity > 0 {
		logger.Info("Reading SiPM positions from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	positions := make([]SensorPosition, 0)
	rows, err := db.Queryx(query, runNumber, runNumber, sipmIDThreshold)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	for rows.Next() {
		result := SensorPosition{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		positions = append(positions, result)
	}
	return positions, rows.Err()
}

// LoadSensorPitch returns the SiPM pitch in X and Y for a run: the smallest
// gap between two distinct sensor coordinates along each axis.
func LoadSensorPitch(db *sqlx.DB, runNumber int) (float64, float64, error) {
	positions, err := getSiPMPositionsFromDB(db, runNumber)
	if err != nil {
		return 0, 0, err
	}
	if len(positions) == 0 {
		return 0, 0, &ErrNoSensors{RunNumber: runNumber}
	}

	xs := make(map[float64]struct{})
	ys := make(map[float64]struct{})
	for _, p := range positions {
		xs[p.X] = struct{}{}
		ys[p.Y] = struct{}{}
	}
	pitchX := smallestGap(maps.Keys(xs))
	pitchY := smallestGap(maps.Keys(ys))
	if math.IsInf(pitchX, 1) || math.IsInf(pitchY, 1) {
		return 0, 0, &ErrNoSensors{RunNumber: runNumber}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("SiPM pitch for run %d: %.2f x %.2f", runNumber, pitchX, pitchY)
		logger.Info(message, "database")
	}
	return pitchX, pitchY, nil
}

func smallestGap(values []float64) float64 {
	sort.Float64s(values)
	gap := math.Inf(1)
	for i := 1; i < len(values); i++ {
		gap = math.Min(gap, values[i]-values[i-1])
	}
	return gap
}

// ApplyPitch replaces the XY entries of a drop distance with the pitch.
func ApplyPitch(distance []float64, pitchX, pitchY float64) []float64 {
	out := make([]float64, len(distance))
	copy(out, distance)
	if len(out) >= 2 {
		out[0] = pitchX
		out[1] = pitchY
	}
	return out
}
