// Spotify API implementation of [Catalog] and [Authenticator]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/trackimport/internal/models"
	"github.com/desertthunder/trackimport/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyTrack is the subset of a Spotify track object used for matching.
type SpotifyTrack struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type searchTracks struct {
	Items []SpotifyTrack `json:"items"`
}

// SpotifySearchResponse is the body of GET /search with type=track.
type SpotifySearchResponse struct {
	Tracks *searchTracks `json:"tracks"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}

// SpotifyService talks to the Spotify accounts and Web API endpoints.
//
// It holds no token: the access token is obtained once by [SpotifyService.Exchange] and passed to each call.
type SpotifyService struct {
	config         *oauth2.Config
	baseURL        string
	httpClient     *http.Client
	validateAppend bool
}

// SpotifyOpts contains optional settings for [NewSpotifyService].
type SpotifyOpts struct {
	HTTPClient *http.Client

	// ValidateAppend turns non-2xx playlist responses into [shared.ErrAppend].
	ValidateAppend bool
}

// NewSpotifyService creates a Spotify client from the configuration snapshot.
func NewSpotifyService(cfg shared.SpotifyConfig, opts SpotifyOpts) *SpotifyService {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	authURL := orDefault(cfg.AuthURL, spotifyAuthURL)
	tokenURL := orDefault(cfg.TokenURL, spotifyTokenURL)
	baseURL := strings.TrimRight(orDefault(cfg.APIURL, spotifyBaseURL), "/")

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes: []string{
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyService{
		config:         config,
		baseURL:        baseURL,
		httpClient:     opts.HTTPClient,
		validateAppend: opts.ValidateAppend,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the authorization URL the user visits to obtain a one-time code.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Exchange trades a one-time authorization code for an access credential.
//
// The request is a form-encoded POST with grant_type=authorization_code, the code, the redirect URI,
// and HTTP Basic client authentication. The response must be JSON carrying both an access and a refresh
// token. It is never retried.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*models.AccessCredential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.tokenClient())

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token response has no refresh_token", shared.ErrAuthFailed)
	}

	return &models.AccessCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// tokenClient wraps the service's client for token endpoint requests.
func (s *SpotifyService) tokenClient() *http.Client {
	base := s.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &http.Client{
		Transport: &tokenTransport{
			base:         base,
			clientID:     s.config.ClientID,
			clientSecret: s.config.ClientSecret,
		},
		Timeout: s.httpClient.Timeout,
	}
}

// tokenTransport sends the client credentials as a Basic header built from the raw id and secret,
// replacing the form-escaped pair oauth2 writes, and rejects successful responses that are not JSON.
type tokenTransport struct {
	base         http.RoundTripper
	clientID     string
	clientSecret string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.clientID, t.clientSecret)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
		if mediaType != "application/json" {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("token response content type %q is not application/json", resp.Header.Get("Content-Type"))
		}
	}

	return resp, nil
}

// SearchTrack looks up the first catalog track matching artist and title.
//
// The query is sent verbatim as "artist:<artist> track:<title>"; only URL encoding is applied, so field
// syntax inside either value is interpreted by Spotify. An empty result is reported as found == false
// with a nil error.
func (s *SpotifyService) SearchTrack(ctx context.Context, token, artist, title string) (string, bool, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("artist:%s track:%s", artist, title))
	params.Set("type", "track")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to create request: %v", shared.ErrSearch, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: request failed: %v", shared.ErrSearch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("%w: status %d, body: %s", shared.ErrSearch, resp.StatusCode, string(body))
	}

	var result SpotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", false, fmt.Errorf("%w: failed to decode response: %v", shared.ErrSearch, err)
	}

	if result.Tracks == nil || result.Tracks.Items == nil {
		return "", false, fmt.Errorf("%w: response missing tracks.items", shared.ErrSearch)
	}

	if len(result.Tracks.Items) == 0 {
		return "", false, nil
	}

	uri := result.Tracks.Items[0].URI
	if uri == "" {
		return "", false, fmt.Errorf("%w: first item has no uri", shared.ErrSearch)
	}

	return uri, true, nil
}

// AddToPlaylist appends a single track URI to the playlist.
//
// Unless validation is enabled the response status and body are not inspected: any response that
// arrives counts as success.
func (s *SpotifyService) AddToPlaylist(ctx context.Context, token, playlistID, uri string) error {
	body, err := json.Marshal(addTracksRequest{URIs: []string{uri}})
	if err != nil {
		return fmt.Errorf("%w: failed to encode body: %v", shared.ErrAppend, err)
	}

	endpoint := fmt.Sprintf("%s/playlists/%s/tracks", s.baseURL, url.PathEscape(playlistID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrAppend, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrAppend, err)
	}
	defer resp.Body.Close()

	if !s.validateAppend {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAppend, resp.StatusCode, string(respBody))
	}

	return nil
}
