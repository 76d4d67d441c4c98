// package models defines the data model for the track import CLI
package models

import "fmt"

// TrackRequest is a single (artist, title) pair read from the input file.
//
// Identity is structural: two requests with the same artist and title are equal.
type TrackRequest struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// String formats the request as "<artist> - <title>", the form used in console output.
func (t TrackRequest) String() string {
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// AccessCredential holds the tokens returned by the authorization code exchange.
//
// It lives for a single run and is never persisted or refreshed.
type AccessCredential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NotFoundList is the ordered set of requests without a catalog match.
type NotFoundList []TrackRequest

// Add appends a request, preserving input order.
func (l *NotFoundList) Add(t TrackRequest) {
	*l = append(*l, t)
}

// Empty reports whether no request is recorded.
func (l NotFoundList) Empty() bool {
	return len(l) == 0
}
