package reco

import "fmt"

// EventStats summarises what the pipeline did to one event.
type EventStats struct {
	Event   int
	HitsIn  int
	HitsOut int
	EIn     float64
	EOut    float64
	Merge   MergeStats
}

// Pipeline holds the configured hit transformations. It keeps no state
// between events and can be shared by several goroutines.
type Pipeline struct {
	mergeNN  bool
	samePeak bool
	stages   []TableFunc
	names    []string
}

// NewPipeline builds every stage enabled in config. Configuration errors
// are reported here, before any event is processed.
func NewPipeline(config Configuration) (*Pipeline, error) {
	p := &Pipeline{mergeNN: config.MergeNN, samePeak: config.SamePeak}

	vars := config.RedistributeVars
	if vars == nil {
		vars = DefaultRedistributeVars
	}
	if _, err := ParseVariables(vars); err != nil {
		return nil, err
	}

	if config.SliceThreshold < 0 {
		return nil, &ErrInvalidThreshold{Threshold: config.SliceThreshold}
	}
	if config.SliceThreshold > 0 {
		p.add("threshold", ThresholdTable(config.SliceThreshold, config.ThresholdOnCorrected))
	}

	if config.CutSensors {
		cut, err := CutOverQ(config.QThreshold, vars)
		if err != nil {
			return nil, err
		}
		p.add("cut_over_q", cut)
	}

	if len(config.DropDistance) > 0 {
		mode, err := ParseIsolationMode(config.DropDistance, config.DropMinimum)
		if err != nil {
			return nil, err
		}
		drop, err := DropIsolated(mode, vars)
		if err != nil {
			return nil, err
		}
		p.add("drop_isolated", drop)
	}
	return p, nil
}

func (p *Pipeline) add(name string, stage TableFunc) {
	p.names = append(p.names, name)
	p.stages = append(p.stages, stage)
}

// Stages lists the enabled table stages in execution order. With merge_nn
// the merge also runs again on the output of the threshold.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.names)+1)
	if p.mergeNN {
		names = append(names, "merge_nn")
	}
	return append(names, p.names...)
}

// Process runs the event through every stage and returns a new collection.
// The input collection is not modified.
func (p *Pipeline) Process(hc HitCollection) (HitCollection, EventStats) {
	stats := EventStats{Event: hc.Event, HitsIn: len(hc.Hits), EIn: sumE(hc.Hits)}

	hits := hc.Hits
	if p.mergeNN {
		hits, stats.Merge = MergeNNHitsWithStats(hits, p.samePeak)
	}

	table := TableFromCollection(HitCollection{Event: hc.Event, Time: hc.Time, Hits: hits})
	for i, stage := range p.stages {
		table = stage(table)
		// empty slices left by the threshold become NN hits, merge them
		// before anything looks at sensor positions
		if p.mergeNN && p.names[i] == "threshold" {
			var merge MergeStats
			table, merge = p.merge(hc, table)
			stats.Merge.add(merge)
		}
		if configuration.Verbosity > 2 {
			message := fmt.Sprintf("Event %d: %d hits after %s", hc.Event, len(table), p.names[i])
			logger.Info(message, "pipeline")
		}
	}
	if stats.Merge.Orphaned > 0 && configuration.Verbosity > 0 {
		message := fmt.Sprintf("Event %d: %d NN hits without candidates, %.3f energy lost",
			hc.Event, stats.Merge.Orphaned, stats.Merge.LostE)
		logger.Info(message, "pipeline")
	}

	out := HitCollection{Event: hc.Event, Time: hc.Time, Hits: table.Hits()}
	stats.HitsOut = len(out.Hits)
	stats.EOut = sumE(out.Hits)
	return out, stats
}

func (p *Pipeline) merge(hc HitCollection, table HitTable) (HitTable, MergeStats) {
	hits, stats := MergeNNHitsWithStats(table.Hits(), p.samePeak)
	return TableFromCollection(HitCollection{Event: hc.Event, Time: hc.Time, Hits: hits}), stats
}

func sumE(hits []Hit) float64 {
	e := 0.0
	for _, h := range hits {
		e += h.E
	}
	return e
}
