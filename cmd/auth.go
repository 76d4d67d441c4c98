package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/trackimport/internal/server"
	"github.com/desertthunder/trackimport/internal/shared"
	"github.com/urfave/cli/v3"
)

const authTimeout = 2 * time.Minute

// AuthURL prints the Spotify authorize URL for the configured client and redirect URI.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Credentials.Spotify.RequireClient(); err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	return r.writePlainln("%s", r.spotify(config).AuthURL(state))
}

// AuthCode serves the redirect URI locally, sends the user to the authorize page and prints the code
// Spotify redirects back with. The code is not exchanged here.
func (r *Runner) AuthCode(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Credentials.Spotify.RequireClient(); err != nil {
		return err
	}

	addr, path, err := server.ListenAddr(config.Credentials.Spotify.RedirectURI)
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	handler := server.NewCallbackHandler(path, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(handler)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("waiting for authorization callback", "addr", listener.Addr().String(), "path", path)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := r.spotify(config).AuthURL(state)
	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else if err := r.openBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("Could not open browser automatically.\nOpen this URL in your browser:\n%s\n\n", authURL)
	}

	timeout := cmd.Duration("timeout")
	if timeout <= 0 {
		timeout = authTimeout
	}
	r.writePlain("Waiting for authorization (%s timeout)...\n", timeout)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result server.CallbackResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timer.C:
		return fmt.Errorf("%w: no authorization callback after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if result.Err != nil {
		return result.Err
	}

	r.writePlainln("Authorization code received. Set it before running import:")
	return r.writePlainln("export %s=%s", shared.EnvAuthCode, result.Code)
}
