package shared

import "fmt"

var (
	// Input and output file errors
	ErrLoad  = fmt.Errorf("failed to load tracks")
	ErrWrite = fmt.Errorf("failed to write tracks")

	// Configuration errors
	ErrConfig = fmt.Errorf("missing configuration")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// API and service errors
	ErrSearch         = fmt.Errorf("catalog search failed")
	ErrAppend         = fmt.Errorf("playlist append failed")
	ErrPartialFailure = fmt.Errorf("one or more tracks failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
