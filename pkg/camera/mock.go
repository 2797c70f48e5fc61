package camera

import "sync"

// Mock is a Source that returns a fixed frame.
type Mock struct {
	mu       sync.Mutex
	frame    []byte
	failNext int
	reads    int
	closes   int
	closed   bool
}

// NewMock returns a source that always yields frame.
func NewMock(frame []byte) *Mock {
	return &Mock{frame: frame}
}

// FailNext makes the next n reads fail with ErrReadFailed.
func (m *Mock) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = n
}

// SetFrame replaces the frame returned by Read.
func (m *Mock) SetFrame(frame []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = frame
}

// Read returns the frame or an injected failure.
func (m *Mock) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.closed {
		return nil, ErrClosed
	}
	if m.failNext > 0 {
		m.failNext--
		return nil, ErrReadFailed
	}
	out := make([]byte, len(m.frame))
	copy(out, m.frame)
	return out, nil
}

// Close marks the source closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	m.closed = true
	return nil
}

// Reads returns how many times Read was called.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

var _ Source = (*Mock)(nil)
