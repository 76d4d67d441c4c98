// package tasks implements the track import run: search each requested track, append matches,
// collect the rest.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackimport/internal/models"
	"github.com/desertthunder/trackimport/internal/services"
	"github.com/desertthunder/trackimport/internal/shared"
)

// ErrorPolicy controls how [Importer.Run] reacts to a failed track.
type ErrorPolicy int

const (
	// AbortOnError stops the run at the first failure.
	AbortOnError ErrorPolicy = iota
	// ContinueOnError records the failure and moves to the next track.
	ContinueOnError
)

// RunResult contains the outcome of every track processed by [Importer.Run].
type RunResult struct {
	Added    []TrackResult
	NotFound models.NotFoundList
	Failed   []TrackResult
	Total    int // Tracks processed, including failures
}

// Err reports a [shared.ErrPartialFailure] when any track failed under [ContinueOnError].
func (r *RunResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d tracks, first: %v", shared.ErrPartialFailure, len(r.Failed), r.Total, r.Failed[0].Err)
}

// ImporterOpts contains configuration options for creating an [Importer].
type ImporterOpts struct {
	Catalog    services.Catalog
	PlaylistID string
	Policy     ErrorPolicy
	Logger     *log.Logger
	OnResult   func(TrackResult)
}

// Importer drives the search → append pipeline for a list of tracks.
type Importer struct {
	catalog    services.Catalog
	playlistID string
	policy     ErrorPolicy
	logger     *log.Logger
	onResult   func(TrackResult)
}

// NewImporter creates an [Importer]. The playlist id is not validated here; a missing id only fails
// once a matched track needs it.
func NewImporter(opts ImporterOpts) *Importer {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OnResult == nil {
		opts.OnResult = func(TrackResult) {}
	}

	return &Importer{
		catalog:    opts.Catalog,
		playlistID: opts.PlaylistID,
		policy:     opts.Policy,
		logger:     opts.Logger,
		onResult:   opts.OnResult,
	}
}

// Process runs search and, on a match, append for a single track.
func (i *Importer) Process(ctx context.Context, token string, track models.TrackRequest) TrackResult {
	uri, found, err := i.catalog.SearchTrack(ctx, token, track.Artist, track.Title)
	if err != nil {
		return failedResult(track, err)
	}

	if !found {
		return notFoundResult(track)
	}

	if err := (shared.SpotifyConfig{PlaylistID: i.playlistID}).RequirePlaylist(); err != nil {
		return failedResult(track, err)
	}

	if err := i.catalog.AddToPlaylist(ctx, token, i.playlistID, uri); err != nil {
		return failedResult(track, err)
	}

	return addedResult(track, uri)
}

// Run processes tracks in order with the access token obtained for this run.
//
// Under [AbortOnError] the first failure is returned immediately along with the partial result.
// Under [ContinueOnError] failures are collected and Run returns a nil error; see [RunResult.Err].
// Context cancellation always stops the run.
func (i *Importer) Run(ctx context.Context, token string, tracks []models.TrackRequest) (*RunResult, error) {
	result := &RunResult{}

	for n, track := range tracks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		i.logger.Debug("processing track", "index", n, "artist", track.Artist, "title", track.Title)

		res := i.Process(ctx, token, track)
		result.Total++

		switch res.Outcome {
		case Added:
			i.logger.Debug("track added", "uri", res.URI)
			result.Added = append(result.Added, res)
		case NotFound:
			result.NotFound.Add(track)
		case Failed:
			if i.policy == AbortOnError {
				return result, fmt.Errorf("%s: %w", track, res.Err)
			}
			i.logger.Warn("track failed", "artist", track.Artist, "title", track.Title, "error", res.Err)
			result.Failed = append(result.Failed, res)
		}

		i.onResult(res)
	}

	return result, nil
}
