// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "trackimport",
		Usage:    "Import a list of tracks into a Spotify playlist",
		Version:  "0.1.0",
		Flags:    append(globalFlags(), importFlags()...),
		Action:   r.Import,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		importCommand, authCommand, reportCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a dotenv file loaded before reading the environment",
			Value: ".env",
		},
	}
}

func importFlags() []cli.Flag {
	return append(configFlags(),
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Track list to import (default: import.input from config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Where unmatched tracks are written (default: import.output from config)",
		},
		&cli.BoolFlag{
			Name:  "validate-append",
			Usage: "Treat non-2xx playlist responses as failures",
		},
		&cli.BoolFlag{
			Name:  "continue-on-error",
			Usage: "Record failed tracks and keep going instead of stopping",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "Print a summary after the run",
		},
	)
}

// importCommand runs the search and append flow
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "import",
		Usage:  "Search each track and append matches to the configured playlist",
		Flags:  importFlags(),
		Action: r.Import,
	}
}

// authCommand helps obtain an authorization code
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Obtain a Spotify authorization code",
		Commands: []*cli.Command{
			{
				Name:   "url",
				Usage:  "Print the Spotify authorize URL",
				Flags:  configFlags(),
				Action: r.AuthURL,
			},
			{
				Name:  "code",
				Usage: "Capture the authorization code through a local callback server",
				Flags: append(configFlags(),
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the redirect",
						Value: authTimeout,
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the URL instead of opening a browser",
					},
				),
				Action: r.AuthCode,
			},
		},
	}
}

// reportCommand renders a track list file
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render a track list (e.g. the not-found file) as CSV, Markdown or text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Track list file",
				Value:   "not_found_tracks.json",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown or text",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Report title",
				Value: "Tracks Not Found",
			},
		},
		Action: r.Report,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
