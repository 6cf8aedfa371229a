package router

import (
	"time"

	"github.com/arthur-debert/filerouter/pkg/types"
)

// Result is the outcome of routing a single file
type Result struct {
	File        types.PendingFile
	Rule        *types.Rule
	Destination string
	Outcome     types.Outcome

	// NameFallback is set when the template rendered an empty name
	NameFallback bool

	// CreatedDir is the destination directory created for this file, if any
	CreatedDir string

	Err error
}

// Message returns a human readable description of the result
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	switch r.Outcome {
	case types.OutcomeMoved:
		return "moved to " + r.Destination
	case types.OutcomeInPlace:
		return "already at " + r.Destination
	default:
		return string(r.Outcome)
	}
}

// DrainReport describes one drain of the intake queue
type DrainReport struct {
	ID        string
	Trigger   string
	DryRun    bool
	StartedAt time.Time
	Duration  time.Duration
	Results   []Result

	// Requeued counts files put back because the drain was cancelled
	Requeued int
}

// Count returns the number of results with outcome o
func (d *DrainReport) Count(o types.Outcome) int {
	n := 0
	for _, res := range d.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failed returns the number of results that are neither successes nor
// expected warnings
func (d *DrainReport) Failed() int {
	n := 0
	for _, res := range d.Results {
		if !res.Outcome.Succeeded() && !res.Outcome.IsWarning() {
			n++
		}
	}
	return n
}
