// package services defines the interfaces the importer depends on and implements them for Spotify
package services

import (
	"context"

	"github.com/desertthunder/trackimport/internal/models"
)

// Catalog is a music service that can resolve tracks and append them to playlists.
type Catalog interface {
	// SearchTrack returns the identifier of the top hit for artist and title.
	// found is false, with a nil error, when the catalog has no match.
	SearchTrack(ctx context.Context, token, artist, title string) (uri string, found bool, err error)

	// AddToPlaylist appends a single track identifier to the playlist.
	AddToPlaylist(ctx context.Context, token, playlistID, uri string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// Authenticator exchanges a one-time authorization code for an access credential.
type Authenticator interface {
	Exchange(ctx context.Context, code string) (*models.AccessCredential, error)
}

var (
	_ Catalog       = (*SpotifyService)(nil)
	_ Authenticator = (*SpotifyService)(nil)
)
