package camera

import (
	"errors"
	"io"
)

// ErrReadFailed is returned when the device produced no frame.
var ErrReadFailed = errors.New("camera: read failed")

// ErrClosed is returned by Read after Close.
var ErrClosed = errors.New("camera: closed")

// Source produces JPEG-encoded frames.
type Source interface {
	// Read grabs the next frame.
	Read() ([]byte, error)

	io.Closer
}
