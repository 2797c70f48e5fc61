package face

import (
	"context"
	"sync"

	"github.com/teslashibe/emotional-helper/pkg/emotions"
)

// Mock implements Classifier for testing.
type Mock struct {
	// ClassifyFunc is called when Classify is invoked.
	// If nil, returns emotions.None.
	ClassifyFunc func(ctx context.Context, jpeg []byte) (emotions.Label, error)

	mu    sync.Mutex
	calls int
	last  []byte
}

// NewMock returns a mock that always reports label.
func NewMock(label emotions.Label) *Mock {
	return &Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte) (emotions.Label, error) {
			return label, nil
		},
	}
}

// WithError returns a mock that always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte) (emotions.Label, error) {
			return emotions.None, err
		},
	}
}

// Classify records the call and delegates to ClassifyFunc.
func (m *Mock) Classify(ctx context.Context, jpeg []byte) (emotions.Label, error) {
	m.mu.Lock()
	m.calls++
	m.last = append([]byte(nil), jpeg...)
	fn := m.ClassifyFunc
	m.mu.Unlock()

	if fn == nil {
		return emotions.None, nil
	}
	return fn(ctx, jpeg)
}

// CallCount returns the number of Classify calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastImage returns the bytes passed to the most recent call.
func (m *Mock) LastImage() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Verify Mock implements Classifier at compile time.
var _ Classifier = (*Mock)(nil)
