package helper

import "errors"

// Sentinel errors.
var (
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("helper: already running")

	// ErrStopped is returned by Control once the loop has exited.
	ErrStopped = errors.New("helper: stopped")

	// ErrMissingDependency is returned by New when a required collaborator is nil.
	ErrMissingDependency = errors.New("helper: missing dependency")
)

// Messages shown to the user.
const (
	classifyFailedFormat = "情绪识别失败：%v"
	speechFailedFormat   = "%s\n(语音合成失败：%v)"
)
