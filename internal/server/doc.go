// Package server runs the short-lived local HTTP listener used to capture a Spotify authorization code.
//
// # Router
//
// [BasicRouter] registers [Handler] implementations on an [http.ServeMux]. [Middleware] runs in the order
// it was added. [RequestLogger] logs each request through charmbracelet/log.
//
// # Callback Handler
//
// [CallbackHandler] serves the redirect URI path. It validates the state parameter, extracts the one-time
// code and sends it through a channel. It does not exchange the code: the import run does that with the
// code supplied through SPOTIFY_AUTH_CODE. Only the first callback is processed.
//
// [ListenAddr] derives the listen address and callback path from the configured redirect URI, so the
// registered redirect and the local listener cannot drift apart.
package server
