package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	reco "github.com/next-exp/reco_go/pkg"
	"github.com/next-exp/reco_go/pkg/h5"
	"gopkg.in/yaml.v3"
)

func defaultConfiguration() reco.Configuration {
	var config reco.Configuration

	config.InputGroup = h5.DefaultHitsGroup
	config.InputTable = h5.DefaultHitsTable
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.NumWorkers = 1
	config.MergeNN = false
	config.SamePeak = true
	config.SliceThreshold = 0
	config.ThresholdOnCorrected = false
	config.CutSensors = false
	config.DropMinimum = reco.DefaultDropMinimum
	config.RedistributeVars = append([]string(nil), reco.DefaultRedistributeVars...)
	config.CompressionLevel = 4
	config.PitchFromDB = false
	config.DBDriver = "sqlite"
	config.Host = "next.ific.uv.es"
	config.User = "nextreader"
	config.Passwd = "readonly"
	config.DBName = "NEXT100"
	return config
}

// LoadConfiguration reads a JSON or YAML (.yaml, .yml) configuration file
// on top of the defaults.
func LoadConfiguration(filename string) (reco.Configuration, error) {
	config := defaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, err
	}
	if config.NumWorkers < 1 {
		config.NumWorkers = 1
	}
	return config, nil
}

func printConfiguration(config reco.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Summary file: %s", config.SummaryFile), "config")
	logger.Info(fmt.Sprintf("Input table: %s/%s", config.InputGroup, config.InputTable), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Merge NN hits: %t", config.MergeNN), "config")
	logger.Info(fmt.Sprintf("Same peak: %t", config.SamePeak), "config")
	logger.Info(fmt.Sprintf("Slice threshold: %g", config.SliceThreshold), "config")
	logger.Info(fmt.Sprintf("Threshold on corrected: %t", config.ThresholdOnCorrected), "config")
	logger.Info(fmt.Sprintf("Cut sensors: %t", config.CutSensors), "config")
	logger.Info(fmt.Sprintf("Q threshold: %g", config.QThreshold), "config")
	logger.Info(fmt.Sprintf("Drop distance: %v", config.DropDistance), "config")
	logger.Info(fmt.Sprintf("Drop minimum: %d", config.DropMinimum), "config")
	logger.Info(fmt.Sprintf("Redistribute vars: %v", config.RedistributeVars), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Pitch from DB: %t", config.PitchFromDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Detector DB: %s", config.DetectorDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}
