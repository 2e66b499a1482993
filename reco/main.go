package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	reco "github.com/next-exp/reco_go/pkg"
	"github.com/next-exp/reco_go/pkg/h5"
)

var configuration reco.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	logger = newStdLogger()
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	if err := run(*configFilename); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(configFilename string) error {
	var err error
	configuration, err = LoadConfiguration(configFilename)
	if err != nil {
		return fmt.Errorf("Error reading configuration file: %w", err)
	}
	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	reco.SetConfiguration(configuration)
	reco.SetLogger(logger)

	if configuration.PitchFromDB {
		configuration.DropDistance, err = dropDistanceFromDB(configuration)
		if err != nil {
			return err
		}
		reco.SetConfiguration(configuration)
	}

	pipeline, err := reco.NewPipeline(configuration)
	if err != nil {
		return fmt.Errorf("Error configuring pipeline: %w", err)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Pipeline stages: %v", pipeline.Stages())
		logger.Info(message, "main")
	}

	start := time.Now()
	reader, err := NewEventReader(configuration.FileIn, configuration)
	if err != nil {
		return fmt.Errorf("Error reading input file: %w", err)
	}
	evtsToRead := numberOfEventsToProcess(len(reader.Events), configuration.Skip, configuration.MaxEvents)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d, to process: %d", len(reader.Events), evtsToRead)
		logger.Info(message, "main")
	}

	results := runWorkers(reader, pipeline, configuration.NumWorkers, evtsToRead)

	writer, err := h5.NewWriter(configuration.FileOut, configuration.CompressionLevel)
	if err != nil {
		return fmt.Errorf("Error creating output file: %w", err)
	}
	summary, failed, err := writeResults(writer, results)
	if closeErr := writer.Close(); closeErr != nil {
		logger.Error(closeErr.Error())
	}
	if err != nil {
		return err
	}

	if configuration.SummaryFile != "" {
		if err := reco.WriteSummary(configuration.SummaryFile, summary); err != nil {
			return err
		}
	}

	duration := time.Since(start)
	message := fmt.Sprintf("Events in: %d, events out: %d, failed: %d. Total time: %d ms",
		evtsToRead, len(summary), failed, duration.Milliseconds())
	logger.Info(message, "main")
	return nil
}

func writeResults(writer *h5.Writer, results []WorkerResult) ([]reco.SummaryRow, int, error) {
	summary := make([]reco.SummaryRow, 0, len(results))
	failed := 0
	for _, result := range results {
		if result.Error {
			message := fmt.Sprintf("discarding event %d", result.Event.Event)
			logger.Error(message)
			failed++
			continue
		}
		if err := writer.WriteCollection(result.Event); err != nil {
			return summary, failed, fmt.Errorf("error writing event: %w", err)
		}
		summary = append(summary, reco.NewSummaryRow(result.Stats))
	}
	return summary, failed, nil
}

func dropDistanceFromDB(config reco.Configuration) ([]float64, error) {
	var dbConn *sqlx.DB
	var err error
	switch config.DBDriver {
	case "mysql":
		dbConn, err = reco.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
	default:
		dbConn, err = reco.ConnectToLocalDatabase(config.DetectorDB)
	}
	if err != nil {
		return nil, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	pitchX, pitchY, err := reco.LoadSensorPitch(dbConn, config.RunNumber)
	if err != nil {
		return nil, fmt.Errorf("Error reading sensor pitch: %w", err)
	}
	return reco.ApplyPitch(config.DropDistance, pitchX, pitchY), nil
}
