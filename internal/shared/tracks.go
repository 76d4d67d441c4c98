package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/trackimport/internal/models"
)

// LoadTracks reads the JSON array of track requests at path, preserving file order.
//
// Any deviation from the expected shape fails the whole load with [ErrLoad]; there is no partial parse.
func LoadTracks(path string) ([]models.TrackRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	tracks, err := DecodeTracks(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	return tracks, nil
}

// DecodeTracks decodes a JSON array of objects holding exactly an artist and a title string.
//
// Keys are matched exactly: a key in another case, a repeated key or any other key is an error.
func DecodeTracks(r io.Reader) ([]models.TrackRequest, error) {
	dec := json.NewDecoder(r)

	var raw *[]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("expected a JSON array, got null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON array")
	}

	tracks := make([]models.TrackRequest, 0, len(*raw))
	for i, entry := range *raw {
		track, err := decodeTrack(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

func decodeTrack(data json.RawMessage) (models.TrackRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return models.TrackRequest{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return models.TrackRequest{}, fmt.Errorf("expected an object, got %s", data)
	}

	fields := map[string]*string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.TrackRequest{}, err
		}
		key, _ := tok.(string)

		if key != "artist" && key != "title" {
			return models.TrackRequest{}, fmt.Errorf("unknown field %q", key)
		}
		if _, seen := fields[key]; seen {
			return models.TrackRequest{}, fmt.Errorf("duplicate field %q", key)
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return models.TrackRequest{}, fmt.Errorf("field %q: %v", key, err)
		}
		fields[key] = value
	}

	if fields["artist"] == nil {
		return models.TrackRequest{}, errors.New("missing artist")
	}
	if fields["title"] == nil {
		return models.TrackRequest{}, errors.New("missing title")
	}

	return models.TrackRequest{Artist: *fields["artist"], Title: *fields["title"]}, nil
}

// WriteTracks writes tracks to path as a pretty-printed JSON array, replacing any existing file.
func WriteTracks(path string, tracks []models.TrackRequest) error {
	data, err := MarshalJSON(tracks, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
