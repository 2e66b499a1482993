package main

import (
	"fmt"
	"io"

	reco "github.com/next-exp/reco_go/pkg"
	"github.com/next-exp/reco_go/pkg/h5"
)

// EventReader hands out the events of a file honouring skip and max_events.
type EventReader struct {
	Events   []reco.HitCollection
	EvtCount int
	position int
}

func NewEventReader(filename string, config reco.Configuration) (*EventReader, error) {
	events, err := h5.ReadHitCollections(filename, config.InputGroup, config.InputTable)
	if err != nil {
		return nil, err
	}
	return &EventReader{Events: events, EvtCount: -1}, nil
}

func (r *EventReader) getNextEvent() (reco.HitCollection, error) {
	if r.position >= len(r.Events) {
		return reco.HitCollection{}, io.EOF
	}
	event := r.Events[r.position]
	r.position++

	r.EvtCount++
	if r.EvtCount >= configuration.MaxEvents+configuration.Skip {
		if VerbosityLevel > 0 {
			logger.Info("Max events reached", "fileReader")
		}
		return reco.HitCollection{}, io.EOF
	}
	if r.EvtCount < configuration.Skip {
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Skipping event %d with ID %d", r.EvtCount, event.Event)
			logger.Info(message, "fileReader")
		}
		return r.getNextEvent()
	}
	if VerbosityLevel > 1 {
		message := fmt.Sprintf("Reading event %d with ID %d", r.EvtCount, event.Event)
		logger.Info(message, "fileReader")
	}
	return event, nil
}

// numberOfEventsToProcess mirrors the limits applied by getNextEvent.
func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	evtsToRead := fileEvtCount - skipEvts
	if evtsToRead > maxEvtCount {
		evtsToRead = maxEvtCount
	}
	if evtsToRead < 0 {
		evtsToRead = 0
	}
	return evtsToRead
}
