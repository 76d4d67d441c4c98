package tasks

import (
	"fmt"

	"github.com/desertthunder/trackimport/internal/models"
)

// Outcome is the terminal state of a single track in an import run.
type Outcome int

const (
	Added Outcome = iota
	NotFound
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case NotFound:
		return "not_found"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// TrackResult is the result of running the search/append pipeline for one track.
type TrackResult struct {
	Track   models.TrackRequest
	Outcome Outcome
	URI     string // Matched catalog identifier, empty unless Outcome is Added
	Err     error  // Set only when Outcome is Failed
}

// Message renders the console line for the result.
func (r TrackResult) Message() string {
	switch r.Outcome {
	case Added:
		return fmt.Sprintf("Track added successfully: %s", r.Track)
	case NotFound:
		return fmt.Sprintf("Track not found: %s", r.Track)
	default:
		return fmt.Sprintf("Track failed: %s: %v", r.Track, r.Err)
	}
}

func addedResult(t models.TrackRequest, uri string) TrackResult {
	return TrackResult{Track: t, Outcome: Added, URI: uri}
}

func notFoundResult(t models.TrackRequest) TrackResult {
	return TrackResult{Track: t, Outcome: NotFound}
}

func failedResult(t models.TrackRequest, err error) TrackResult {
	return TrackResult{Track: t, Outcome: Failed, Err: err}
}
