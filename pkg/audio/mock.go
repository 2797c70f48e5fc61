package audio

import (
	"sync"
	"time"
)

// MockCall records an engine invocation.
type MockCall struct {
	Method string
	Path   string
	Offset time.Duration
	Volume float64
}

// Mock is an in-memory Engine for tests. Playback never ends on its own;
// call Finish to simulate the end of a track.
type Mock struct {
	mu       sync.Mutex
	calls    []MockCall
	path     string
	volume   float64
	busy     bool
	paused   bool
	position time.Duration
	closed   bool

	// PlayErr, when set, is returned by Play.
	PlayErr error
}

// NewMock returns a mock engine at full volume.
func NewMock() *Mock {
	return &Mock{volume: 1.0}
}

func (m *Mock) record(c MockCall) {
	m.calls = append(m.calls, c)
}

// Load records the path and stops playback.
func (m *Mock) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.record(MockCall{Method: "Load", Path: path})
	m.path = path
	m.busy = false
	m.paused = false
	return nil
}

// Play marks the loaded track as playing from offset.
func (m *Mock) Play(offset time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.record(MockCall{Method: "Play", Path: m.path, Offset: offset})
	if m.PlayErr != nil {
		return m.PlayErr
	}
	if m.path == "" {
		return ErrNotLoaded
	}
	m.busy = true
	m.paused = false
	m.position = offset
	return nil
}

// Pause marks playback paused.
func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCall{Method: "Pause"})
	if m.busy {
		m.paused = true
	}
	return nil
}

// Unpause clears the paused flag.
func (m *Mock) Unpause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCall{Method: "Unpause"})
	m.paused = false
	return nil
}

// Stop ends playback.
func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCall{Method: "Stop"})
	m.busy = false
	m.paused = false
	m.position = 0
	return nil
}

// SetVolume records the clamped volume.
func (m *Mock) SetVolume(v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = ClampVolume(v)
	m.record(MockCall{Method: "SetVolume", Volume: m.volume})
	return nil
}

// Busy reports whether a track is playing or paused.
func (m *Mock) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Position returns the simulated position.
func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.busy {
		return 0
	}
	return m.position
}

// Close marks the engine closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(MockCall{Method: "Close"})
	m.busy = false
	m.closed = true
	return nil
}

// Finish simulates the current track reaching its end.
func (m *Mock) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	m.paused = false
	m.position = 0
}

// Advance moves the simulated position forward.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy && !m.paused {
		m.position += d
	}
}

// Path returns the loaded track.
func (m *Mock) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Volume returns the last volume set.
func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Paused reports whether Pause was called on a live track.
func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Calls returns all recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call with the given method, or nil.
func (m *Mock) LastCall(method string) *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			c := m.calls[i]
			return &c
		}
	}
	return nil
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

var _ Engine = (*Mock)(nil)
