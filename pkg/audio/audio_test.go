package audio

import (
	"errors"
	"testing"
	"time"
)

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFFplayArgs(t *testing.T) {
	args := FFplayArgs("/tmp/angry.mp3", 1500*time.Millisecond, 0.3)
	want := []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-ss", "1.500", "-volume", "30", "/tmp/angry.mp3"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestMockEngine(t *testing.T) {
	m := NewMock()

	if err := m.Play(0); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Play before Load: got %v, want ErrNotLoaded", err)
	}

	m.Load("music/happy.mp3")
	m.Play(2 * time.Second)
	if !m.Busy() {
		t.Fatal("expected busy after Play")
	}
	m.Advance(time.Second)
	if m.Position() != 3*time.Second {
		t.Errorf("Position = %v, want 3s", m.Position())
	}

	m.Pause()
	m.Advance(time.Second)
	if m.Position() != 3*time.Second {
		t.Error("paused track should not advance")
	}
	m.Unpause()

	m.Finish()
	if m.Busy() {
		t.Error("expected idle after Finish")
	}
	if m.CallCount("Play") != 2 {
		t.Errorf("Play calls = %d, want 2", m.CallCount("Play"))
	}
	if c := m.LastCall("Play"); c == nil || c.Offset != 2*time.Second {
		t.Errorf("unexpected last Play call %+v", c)
	}

	m.SetVolume(1.4)
	if m.Volume() != 1 {
		t.Errorf("Volume = %v, want clamped 1", m.Volume())
	}

	m.Close()
	if err := m.Load("x.mp3"); !errors.Is(err, ErrClosed) {
		t.Errorf("Load after Close: got %v, want ErrClosed", err)
	}
}
