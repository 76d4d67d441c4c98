package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/trackimport/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration. An existing file is left untouched.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			r.logger.Warn("config file already exists", "path", configPath)
			return r.writePlainln("Config already exists at %s", configPath)
		}
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlainln("Config written to %s", configPath)
	r.writePlainln("Next steps:")
	r.writePlainln("1. Fill in credentials.spotify or set %s, %s, %s and %s",
		shared.EnvClientID, shared.EnvClientSecret, shared.EnvRedirectURI, shared.EnvPlaylistID)
	return r.writePlainln("2. Run 'trackimport auth code' to obtain %s", shared.EnvAuthCode)
}
