// Package services defines the [Catalog] and [Authenticator] interfaces and implements both for Spotify.
//
// # Spotify Implementation
//
// [SpotifyService] uses [oauth2.Config] for the authorization code exchange. The client id and secret
// are sent as an HTTP Basic header ([oauth2.AuthStyleInHeader]) and the form body carries
// grant_type, code and redirect_uri. The resulting access token is returned to the caller rather
// than stored, so every API call takes the token explicitly. There is no refresh.
//
// Search and append are plain HTTP calls against the Web API base URL, which is configurable so
// tests can point the client at an [net/http/httptest.Server].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAuthFailed] : code exchange rejected or response malformed
//   - [shared.ErrSearch] : transport failure, non-2xx or malformed search response
//   - [shared.ErrAppend] : transport failure, or non-2xx when append validation is enabled
//
// An empty search result is not an error.
package services
