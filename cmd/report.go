package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trackimport/internal/formatter"
	"github.com/desertthunder/trackimport/internal/shared"
	"github.com/urfave/cli/v3"
)

// Report renders a track list file, typically the not-found output of a previous import.
func (r *Runner) Report(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	input := cmd.String("input")
	if input == "" {
		return fmt.Errorf("%w: --input is empty", shared.ErrMissingArgument)
	}

	tracks, err := shared.LoadTracks(input)
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteReport(format, title, tracks, path); err != nil {
			return err
		}
		r.logger.Info("report written", "path", path, "format", format, "tracks", len(tracks))
		return nil
	}

	data, err := formatter.Render(format, title, tracks)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
