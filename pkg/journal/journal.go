// Package journal keeps a history of reactions: what was detected, what
// was said and whether speaking it worked.
package journal

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/emotional-helper/pkg/emotions"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("journal: closed")

// DefaultLimit caps Recent when no limit is given.
const DefaultLimit = 50

// Entry is one reaction.
type Entry struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Label     emotions.Label `json:"label"`
	Line      string         `json:"line"`
	Spoken    bool           `json:"spoken"`
	Error     string         `json:"error,omitempty"`
}

// Journal stores entries.
type Journal interface {
	// Record stores e, filling ID and CreatedAt when empty.
	Record(ctx context.Context, e Entry) (Entry, error)

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	Close() error
}

// Prepare fills the ID and timestamp of e if unset.
func Prepare(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Millisecond)
	return e
}

// NormalizeLimit maps non-positive limits to DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Memory is an in-process Journal used when no database is configured.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	closed  bool
}

// NewMemory keeps at most max entries (DefaultLimit when max <= 0).
func NewMemory(max int) *Memory {
	return &Memory{max: NormalizeLimit(max)}
}

// Record appends e, dropping the oldest entry when full.
func (m *Memory) Record(ctx context.Context, e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Entry{}, ErrClosed
	}
	e = Prepare(e)
	m.entries = append(m.entries, e)
	if len(m.entries) > m.max {
		m.entries = m.entries[len(m.entries)-m.max:]
	}
	return e, nil
}

// Recent returns the newest entries first.
func (m *Memory) Recent(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Entry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit = NormalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close discards the entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}

var _ Journal = (*Memory)(nil)
