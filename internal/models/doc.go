// Package models defines the value types shared by the loader, the Spotify client and the importer.
//
//   - [TrackRequest] : an (artist, title) pair from the input file
//   - [AccessCredential] : the access/refresh token pair from the code exchange
//   - [NotFoundList] : requests that had no catalog match, in input order
//
// None of these types carry behavior beyond formatting; they are constructed by
// decoding JSON and are never mutated after construction.
package models
