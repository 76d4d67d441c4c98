package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trackimport/internal/formatter"
	"github.com/desertthunder/trackimport/internal/shared"
	"github.com/desertthunder/trackimport/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import loads the track list, exchanges the authorization code once, then searches and appends each track.
//
// Unmatched tracks are written to the output file when there is at least one. Under the default policy the
// first failure stops the run before anything is written.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	input := cmd.String("input")
	if input == "" {
		input = config.Import.Input
	}
	if input == "" {
		return fmt.Errorf("%w: no track list (set --input or import.input)", shared.ErrMissingArgument)
	}
	output := cmd.String("output")
	if output == "" {
		output = config.Import.Output
	}
	if output == "" {
		return fmt.Errorf("%w: no not-found path (set --output or import.output)", shared.ErrMissingArgument)
	}
	if cmd.Bool("validate-append") {
		config.Import.ValidateAppend = true
	}
	if cmd.Bool("continue-on-error") {
		config.Import.ContinueOnError = true
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())

	tracks, err := shared.LoadTracks(input)
	if err != nil {
		return err
	}
	logger.Info("loaded tracks", "path", input, "count", len(tracks))

	if err := config.Credentials.Spotify.RequireExchange(); err != nil {
		return err
	}

	spotify := r.spotify(config)
	credential, err := spotify.Exchange(ctx, config.Credentials.Spotify.AuthCode)
	if err != nil {
		return err
	}
	logger.Debug("access token obtained")

	policy := tasks.AbortOnError
	if config.Import.ContinueOnError {
		policy = tasks.ContinueOnError
	}

	importer := tasks.NewImporter(tasks.ImporterOpts{
		Catalog:    spotify,
		PlaylistID: config.Credentials.Spotify.PlaylistID,
		Policy:     policy,
		Logger:     logger,
		OnResult: func(res tasks.TrackResult) {
			if err := r.writePlainln("%s", res.Message()); err != nil {
				logger.Warn("failed to write track result", "track", res.Track.String(), "error", err)
			}
		},
	})

	result, err := importer.Run(ctx, credential.AccessToken, tracks)
	if err != nil {
		return err
	}

	summary := formatter.Summary{
		Total:    result.Total,
		Added:    len(result.Added),
		NotFound: len(result.NotFound),
		Failed:   len(result.Failed),
	}

	if !result.NotFound.Empty() {
		if err := shared.WriteTracks(output, result.NotFound); err != nil {
			return err
		}
		summary.Output = output
		if err := r.writePlainln("Not found tracks written to %s", output); err != nil {
			logger.Warn("failed to write notice", "error", err)
		}
	}

	logger.Info("import finished", "added", summary.Added, "not_found", summary.NotFound, "failed", summary.Failed)

	if cmd.Bool("summary") {
		if err := r.writePlainln("%s", formatter.RenderSummary(summary)); err != nil {
			logger.Warn("failed to write summary", "error", err)
		}
	}

	if err := result.Err(); err != nil {
		return fmt.Errorf("import incomplete: %w", err)
	}
	return nil
}
