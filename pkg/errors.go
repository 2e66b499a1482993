package reco

import "fmt"

// ErrInvalidDropDistance is returned when the isolation distance does not
// have 2 (sensor) or 3 (cluster) entries.
type ErrInvalidDropDistance struct {
	Distance []float64
}

func (e *ErrInvalidDropDistance) Error() string {
	return fmt.Sprintf("invalid drop distance %v: expected 2 or 3 entries, got %d", e.Distance, len(e.Distance))
}

// ErrUnknownVariable represents a column that cannot be redistributed.
type ErrUnknownVariable struct {
	Name string
}

func (e *ErrUnknownVariable) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

// ErrInvalidThreshold represents a negative charge threshold.
type ErrInvalidThreshold struct {
	Threshold float64
}

func (e *ErrInvalidThreshold) Error() string {
	return fmt.Sprintf("invalid threshold %v: must be >= 0", e.Threshold)
}

// ErrNoSensors is returned when the detector DB has no SiPM positions for a run.
type ErrNoSensors struct {
	RunNumber int
}

func (e *ErrNoSensors) Error() string {
	return fmt.Sprintf("no sensor positions found for run %d", e.RunNumber)
}
