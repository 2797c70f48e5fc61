package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/teslashibe/emotional-helper/pkg/emotions"
	"github.com/teslashibe/emotional-helper/pkg/journal"
)

func TestStore_Recent(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		entries   []journal.Entry
		limit     int
		wantOrder []emotions.Label
	}{
		{
			name:      "empty",
			wantOrder: []emotions.Label{},
		},
		{
			name: "newest first",
			entries: []journal.Entry{
				{Label: "angry", Line: "深呼吸", CreatedAt: base},
				{Label: "happy", Line: "真好", Spoken: true, CreatedAt: base.Add(time.Minute)},
				{Label: "sad", Line: "抱抱你", CreatedAt: base.Add(2 * time.Minute)},
			},
			wantOrder: []emotions.Label{"sad", "happy", "angry"},
		},
		{
			name: "limit applied",
			entries: []journal.Entry{
				{Label: "fear", CreatedAt: base},
				{Label: "surprise", CreatedAt: base.Add(time.Second)},
				{Label: "neutral", CreatedAt: base.Add(2 * time.Second)},
			},
			limit:     2,
			wantOrder: []emotions.Label{"neutral", "surprise"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(":memory:")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()

			ctx := context.Background()
			for _, e := range tt.entries {
				if _, err := s.Record(ctx, e); err != nil {
					t.Fatalf("Record: %v", err)
				}
			}

			got, err := s.Recent(ctx, tt.limit)
			if err != nil {
				t.Fatalf("Recent: %v", err)
			}
			if len(got) != len(tt.wantOrder) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.wantOrder))
			}
			for i, label := range tt.wantOrder {
				if got[i].Label != label {
					t.Errorf("entry %d label = %s, want %s", i, got[i].Label, label)
				}
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx := context.Background()
	rec, err := s.Record(ctx, journal.Entry{
		Label:  "happy",
		Line:   "今天也要开心哦",
		Spoken: false,
		Error:  "TTS failed",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated ID")
	}
	s.Close()

	// reopen to check persistence
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	if e.ID != rec.ID || e.Line != rec.Line || e.Error != "TTS failed" || e.Spoken {
		t.Errorf("round trip mismatch: %+v vs %+v", e, rec)
	}
	if !e.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, rec.CreatedAt)
	}
}
