package server

import (
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/desertthunder/trackimport/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the path patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string
}

// ListenAddr returns the host:port to listen on and the callback path for redirectURI.
//
// Only plain http loopback redirects can be served locally. A missing port defaults to 80.
func ListenAddr(redirectURI string) (addr, path string, err error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid redirect URI %q: %v", shared.ErrConfig, redirectURI, err)
	}

	if u.Scheme != "http" {
		return "", "", fmt.Errorf("%w: redirect URI %q must use http to be served locally", shared.ErrInvalidArgument, redirectURI)
	}

	host := u.Hostname()
	if host == "" {
		return "", "", fmt.Errorf("%w: redirect URI %q has no host", shared.ErrInvalidArgument, redirectURI)
	}

	port := u.Port()
	if port == "" {
		port = "80"
	}

	path = u.Path
	if path == "" {
		path = "/"
	}

	return net.JoinHostPort(host, port), path, nil
}
