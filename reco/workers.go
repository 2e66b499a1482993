package main

import (
	"fmt"
	"io"

	reco "github.com/next-exp/reco_go/pkg"
)

type WorkerData struct {
	Index int
	Event reco.HitCollection
}

type WorkerResult struct {
	Index int
	Event reco.HitCollection
	Stats reco.EventStats
	Error bool
}

func worker(id int, pipeline *reco.Pipeline, jobs <-chan WorkerData, results chan<- WorkerResult) {
	for job := range jobs {
		results <- processEvent(id, pipeline, job)
	}
}

// processEvent never lets a panic escape: the event is reported as failed
// and the worker keeps going.
func processEvent(id int, pipeline *reco.Pipeline, job WorkerData) (result WorkerResult) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("worker %d recovered from panic on event %d: %v", id, job.Event.Event, r)
			logger.Error(errMessage.Error())
			result = WorkerResult{Index: job.Index, Event: job.Event, Error: true}
		}
	}()

	if VerbosityLevel > 2 {
		message := fmt.Sprintf("Worker %d processing event %d", id, job.Event.Event)
		logger.Info(message, "worker")
	}
	event, stats := pipeline.Process(job.Event)
	return WorkerResult{Index: job.Index, Event: event, Stats: stats}
}

func sendEventsToWorkers(reader *EventReader, jobs chan<- WorkerData) {
	defer close(jobs)
	for index := 0; ; index++ {
		event, err := reader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			return
		}
		jobs <- WorkerData{Index: index, Event: event}
	}
}

// collectResults gathers evtsToRead results and puts them back in input order.
func collectResults(results <-chan WorkerResult, evtsToRead int) []WorkerResult {
	ordered := make([]WorkerResult, evtsToRead)
	for i := 0; i < evtsToRead; i++ {
		result := <-results
		ordered[result.Index] = result
	}
	return ordered
}

func runWorkers(reader *EventReader, pipeline *reco.Pipeline, numWorkers int, evtsToRead int) []WorkerResult {
	jobs := make(chan WorkerData, 100)
	results := make(chan WorkerResult, 100)

	for w := 1; w <= numWorkers; w++ {
		go worker(w, pipeline, jobs, results)
	}
	go sendEventsToWorkers(reader, jobs)

	return collectResults(results, evtsToRead)
}
