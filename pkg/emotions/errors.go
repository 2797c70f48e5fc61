package emotions

import "errors"

var (
	// ErrNotFound is returned when a label has no profile.
	ErrNotFound = errors.New("emotion not found")

	// ErrInvalidScripts is returned when a voice script file is malformed.
	ErrInvalidScripts = errors.New("invalid voice scripts")
)
