// Package audio plays mood music and synthesized voice lines on a single
// output channel.
package audio

import (
	"errors"
	"io"
	"time"
)

// Sentinel errors.
var (
	// ErrNotLoaded is returned by Play when no track has been loaded.
	ErrNotLoaded = errors.New("audio: no track loaded")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("audio: engine closed")

	// ErrUnsupported is returned where no player backend exists for the platform.
	ErrUnsupported = errors.New("audio: exec engine is not supported on this platform")

	// ErrPlayerNotFound is returned when the player binary is not on PATH.
	ErrPlayerNotFound = errors.New("audio: player binary not found")
)

// Engine is a single-channel audio player. Loading or playing a track
// replaces whatever was playing before.
type Engine interface {
	// Load selects the track for the next Play. It stops current playback.
	Load(path string) error

	// Play starts the loaded track at offset.
	Play(offset time.Duration) error

	// Pause suspends playback, keeping the position.
	Pause() error

	// Unpause continues a paused track.
	Unpause() error

	// Stop ends playback. It is safe to call Stop when idle.
	Stop() error

	// SetVolume sets the output volume in [0, 1].
	SetVolume(v float64) error

	// Busy reports whether a track is currently playing or paused.
	Busy() bool

	// Position returns how far into the current track playback is.
	Position() time.Duration

	io.Closer
}

// ClampVolume limits v to [0, 1].
func ClampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
