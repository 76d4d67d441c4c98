// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/trackimport/internal/models"
)

// FakeCatalog is a test double for services.Catalog keyed by "artist|title".
type FakeCatalog struct {
	// Matches maps "artist|title" to the URI returned by SearchTrack. Missing keys mean no match.
	Matches map[string]string
	// SearchErrs and AppendErrs force an error for the given "artist|title" or URI.
	SearchErrs map[string]error
	AppendErrs map[string]error

	mu       sync.Mutex
	Searches []models.TrackRequest
	Appended []Append
}

// Append records a single AddToPlaylist call.
type Append struct {
	Token      string
	PlaylistID string
	URI        string
}

// Key builds the lookup key used by [FakeCatalog].
func Key(artist, title string) string {
	return artist + "|" + title
}

func (f *FakeCatalog) SearchTrack(ctx context.Context, token, artist, title string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, models.TrackRequest{Artist: artist, Title: title})

	if err, ok := f.SearchErrs[Key(artist, title)]; ok {
		return "", false, err
	}
	uri, ok := f.Matches[Key(artist, title)]
	return uri, ok, nil
}

func (f *FakeCatalog) AddToPlaylist(ctx context.Context, token, playlistID, uri string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.AppendErrs[uri]; ok {
		return err
	}
	f.Appended = append(f.Appended, Append{Token: token, PlaylistID: playlistID, URI: uri})
	return nil
}

func (f *FakeCatalog) Name() string { return "fake" }

// SpotifyServer is an [httptest.Server] that mimics the token, search and playlist endpoints.
type SpotifyServer struct {
	*httptest.Server

	// TokenStatus overrides the token endpoint status when non-zero.
	TokenStatus int
	// Matches maps "artist|title" to a list of URIs returned as tracks.items.
	Matches map[string][]string
	// AppendStatus overrides the playlist endpoint status when non-zero.
	AppendStatus int

	mu           sync.Mutex
	TokenCalls   int
	SearchCalls  int
	AppendedURIs []string
}

// NewSpotifyServer starts a fake Spotify server and registers its shutdown with t.
func NewSpotifyServer(t *testing.T) *SpotifyServer {
	t.Helper()
	s := &SpotifyServer{Matches: map[string][]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", s.token)
	mux.HandleFunc("/v1/search", s.search)
	mux.HandleFunc("/v1/playlists/", s.appendTracks)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *SpotifyServer) token(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.TokenCalls++
	status := s.TokenStatus
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Invalid authorization code"}`)
		return
	}
	fmt.Fprint(w, `{"access_token":"test-access","refresh_token":"test-refresh","token_type":"Bearer","expires_in":3600}`)
}

func (s *SpotifyServer) search(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.SearchCalls++
	s.mu.Unlock()

	q := r.URL.Query().Get("q")
	var artist, title string
	if rest, ok := strings.CutPrefix(q, "artist:"); ok {
		artist, title, _ = strings.Cut(rest, " track:")
	}

	items := []map[string]string{}
	for _, uri := range s.Matches[Key(artist, title)] {
		items = append(items, map[string]string{"uri": uri})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": items}})
}

func (s *SpotifyServer) appendTracks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URIs []string `json:"uris"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	s.AppendedURIs = append(s.AppendedURIs, body.URIs...)
	status := s.AppendStatus
	s.mu.Unlock()

	if status == 0 {
		status = http.StatusCreated
	}
	w.WriteHeader(status)
	fmt.Fprint(w, `{"snapshot_id":"snap"}`)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
