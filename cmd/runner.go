package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackimport/internal/services"
	"github.com/desertthunder/trackimport/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Config is nil each action resolves its own snapshot from the --config and --env-file flags.
type RunnerOpts struct {
	Config      *shared.Config
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

// resolveConfig captures the configuration snapshot for one command invocation.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.config != nil {
		snapshot := *r.config
		return &snapshot, nil
	}

	config, err := shared.ResolveConfig(cmd.String("config"), cmd.String("env-file"))
	if err != nil {
		return nil, err
	}
	r.logger.Debug("configuration resolved", "config", cmd.String("config"), "env_file", cmd.String("env-file"))
	return config, nil
}

func (r *Runner) spotify(config *shared.Config) *services.SpotifyService {
	return services.NewSpotifyService(config.Credentials.Spotify, services.SpotifyOpts{
		HTTPClient:     r.httpClient,
		ValidateAppend: config.Import.ValidateAppend,
	})
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
