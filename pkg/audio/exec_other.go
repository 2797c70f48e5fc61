//go:build !unix

package audio

import "time"

// ExecEngine is unavailable on this platform.
type ExecEngine struct{}

// NewExecEngine returns ErrUnsupported on non-unix platforms.
func NewExecEngine(opts ...Option) (*ExecEngine, error) {
	return nil, ErrUnsupported
}

func (e *ExecEngine) Load(path string) error          { return ErrUnsupported }
func (e *ExecEngine) Play(offset time.Duration) error { return ErrUnsupported }
func (e *ExecEngine) Pause() error                    { return ErrUnsupported }
func (e *ExecEngine) Unpause() error                  { return ErrUnsupported }
func (e *ExecEngine) Stop() error                     { return nil }
func (e *ExecEngine) SetVolume(v float64) error       { return ErrUnsupported }
func (e *ExecEngine) Busy() bool                      { return false }
func (e *ExecEngine) Position() time.Duration         { return 0 }
func (e *ExecEngine) Close() error                    { return nil }

var _ Engine = (*ExecEngine)(nil)
