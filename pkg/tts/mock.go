package tts

import (
	"context"
	"sync"
	"unicode/utf8"
)

// fakeMP3 is an ID3 header with padding; players reject it but file-level
// code does not care.
var fakeMP3 = append([]byte("ID3"), make([]byte, 64)...)

// Mock is a Provider for tests. It answers every line with the same clip
// or the same error and remembers what it was asked to say.
type Mock struct {
	mu     sync.Mutex
	err    error
	texts  []string
	counts map[string]int
}

// NewMock returns a mock that synthesizes a small fake MP3.
func NewMock() *Mock {
	return &Mock{counts: make(map[string]int)}
}

// WithError returns a mock whose Synthesize and Health fail with err.
func WithError(err error) *Mock {
	m := NewMock()
	m.err = err
	return m
}

// SetError changes the failure returned from now on; nil restores success.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Synthesize(ctx context.Context, text string) (*Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts["Synthesize"]++
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Clip{
		Audio:       append([]byte(nil), fakeMP3...),
		ContentType: "audio/mp3",
		Chars:       utf8.RuneCountInString(text),
	}, nil
}

func (m *Mock) Health(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts["Health"]++
	return m.err
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts["Close"]++
	return nil
}

// Texts returns every line passed to Synthesize, in order.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// CallCount returns how often method ("Synthesize", "Health", "Close") ran.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[method]
}

var _ Provider = (*Mock)(nil)
