// Package tasks runs the per-track import pipeline.
//
// # Pipeline
//
// [Importer.Run] walks the input in order. For each track it calls [services.Catalog.SearchTrack];
// a match is appended to the configured playlist with [services.Catalog.AddToPlaylist], no match is
// recorded in the run's [models.NotFoundList]. Each track ends in exactly one [Outcome].
//
// # Error Policy
//
// The [ErrorPolicy] decides what happens when a search or append fails:
//   - [AbortOnError] : the run stops and returns the error; later tracks are not attempted
//   - [ContinueOnError] : the track is recorded as [Failed] and the run moves on
//
// [Importer.Process] exposes the single-track pipeline so callers can apply their own policy.
//
// # Reporting
//
// Results are delivered synchronously through the optional OnResult callback, in input order, before
// the next track is processed. The CLI uses it to print one line per track.
package tasks
