package protocol

import (
	"errors"
	"fmt"
)

// Action is a dashboard button.
type Action string

const (
	ActionPause      Action = "pause"
	ActionResume     Action = "resume"
	ActionVolumeUp   Action = "volume-up"
	ActionVolumeDown Action = "volume-down"
	ActionRelease    Action = "release"
	ActionQuit       Action = "quit" // closes the helper
)

// ErrUnknownAction is returned for actions outside Actions().
var ErrUnknownAction = errors.New("unknown action")

// Actions returns every supported action in display order.
func Actions() []Action {
	return []Action{
		ActionPause,
		ActionResume,
		ActionVolumeUp,
		ActionVolumeDown,
		ActionRelease,
		ActionQuit,
	}
}

// ParseAction validates s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}
