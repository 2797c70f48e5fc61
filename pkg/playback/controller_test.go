package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/teslashibe/emotional-helper/pkg/audio"
)

func newTestController(t *testing.T) (*Controller, *audio.Mock) {
	t.Helper()
	eng := audio.NewMock()
	return New(eng, DefaultConfig()), eng
}

func TestVolumeBounds(t *testing.T) {
	c, eng := newTestController(t)

	if c.Volume() != 1.0 {
		t.Fatalf("initial volume = %v, want 1.0", c.Volume())
	}

	// repeated presses at the top stay at 1.0
	for i := 0; i < 3; i++ {
		if v, _ := c.VolumeUp(); v != 1.0 {
			t.Errorf("VolumeUp at max = %v", v)
		}
	}

	prev := c.Volume()
	for i := 0; i < 15; i++ {
		v, err := c.VolumeDown()
		if err != nil {
			t.Fatalf("VolumeDown: %v", err)
		}
		if v < 0 || v > 1 {
			t.Fatalf("volume out of range: %v", v)
		}
		if prev > 0 && prev-v < 0.099 {
			t.Errorf("step %d: %v -> %v, want 0.1 decrease", i, prev, v)
		}
		prev = v
	}
	if c.Volume() != 0 {
		t.Errorf("volume = %v, want 0", c.Volume())
	}
	if eng.Volume() != 0 {
		t.Errorf("engine volume = %v, want 0", eng.Volume())
	}

	c.VolumeUp()
	if c.Volume() != 0.1 {
		t.Errorf("volume = %v, want exactly 0.1", c.Volume())
	}
}

func TestInitialVolumeRounded(t *testing.T) {
	eng := audio.NewMock()
	c := New(eng, Config{InitialVolume: 0.46})
	if c.Volume() != 0.5 {
		t.Errorf("volume = %v, want 0.5", c.Volume())
	}
	if eng.Volume() != 0.5 {
		t.Errorf("engine volume = %v, want 0.5", eng.Volume())
	}
}

func TestForegroundPreemptsBackground(t *testing.T) {
	c, eng := newTestController(t)

	c.SetBackground("music/happy.mp3")
	if ev := c.Tick(); ev != EventBackgroundStarted {
		t.Fatalf("Tick = %v, want EventBackgroundStarted", ev)
	}
	if eng.Path() != "music/happy.mp3" {
		t.Fatalf("engine path = %q", eng.Path())
	}

	eng.Advance(7 * time.Second)
	if err := c.PlayForeground("runtime/voice.mp3"); err != nil {
		t.Fatalf("PlayForeground: %v", err)
	}
	if s := c.Snapshot(); s.Layer != "foreground" {
		t.Errorf("layer = %s, want foreground", s.Layer)
	}

	// still speaking
	if ev := c.Tick(); ev != EventNone {
		t.Errorf("Tick while busy = %v", ev)
	}

	eng.Finish()
	if ev := c.Tick(); ev != EventForegroundDone {
		t.Fatalf("Tick = %v, want EventForegroundDone", ev)
	}
	last := eng.LastCall("Play")
	if last.Path != "music/happy.mp3" || last.Offset != 7*time.Second {
		t.Errorf("background resumed with %+v, want happy at 7s", last)
	}
}

func TestBackgroundLoopsFromStart(t *testing.T) {
	c, eng := newTestController(t)
	c.SetBackground("music/sad.mp3")
	c.Tick()
	eng.Advance(3 * time.Minute)
	eng.Finish()

	if ev := c.Tick(); ev != EventBackgroundStarted {
		t.Fatalf("Tick = %v, want EventBackgroundStarted", ev)
	}
	if last := eng.LastCall("Play"); last.Offset != 0 {
		t.Errorf("loop restarted at %v, want 0", last.Offset)
	}
}

func TestForegroundWithoutBackground(t *testing.T) {
	c, eng := newTestController(t)
	c.PlayForeground("runtime/voice.mp3")
	eng.Finish()

	if ev := c.Tick(); ev != EventForegroundDone {
		t.Fatalf("Tick = %v, want EventForegroundDone", ev)
	}
	if ev := c.Tick(); ev != EventNone {
		t.Errorf("idle Tick = %v, want EventNone", ev)
	}
	if eng.CallCount("Play") != 1 {
		t.Errorf("Play calls = %d, want 1", eng.CallCount("Play"))
	}
}

func TestPausedBlocksHandoff(t *testing.T) {
	c, eng := newTestController(t)
	c.SetBackground("music/fear.mp3")
	c.Pause()
	if ev := c.Tick(); ev != EventNone {
		t.Errorf("Tick while paused = %v", ev)
	}
	if eng.CallCount("Play") != 0 {
		t.Error("nothing should play while paused")
	}

	c.Resume()
	if ev := c.Tick(); ev != EventBackgroundStarted {
		t.Errorf("Tick after resume = %v", ev)
	}
}

func TestSetBackgroundClearsIdlePause(t *testing.T) {
	c, eng := newTestController(t)
	c.Pause()
	c.SetBackground("music/happy.mp3")

	if ev := c.Tick(); ev != EventBackgroundStarted {
		t.Errorf("Tick = %v, want EventBackgroundStarted", ev)
	}
	if eng.CallCount("Play") != 1 {
		t.Error("queued music did not start")
	}
	if c.Snapshot().Paused {
		t.Error("still paused")
	}
}

func TestRelease(t *testing.T) {
	c, eng := newTestController(t)
	c.SetBackground("music/angry.mp3")
	c.Tick()
	c.Pause()

	if err := c.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if eng.Busy() {
		t.Error("audio should stop")
	}
	s := c.Snapshot()
	if s.Paused || s.Background != "" || s.Layer != "none" {
		t.Errorf("unexpected snapshot after release: %+v", s)
	}
	if c.HasBackground() {
		t.Error("background should be cleared")
	}
	if ev := c.Tick(); ev != EventNone {
		t.Errorf("Tick after release = %v", ev)
	}
}

func TestBrokenBackgroundIsDropped(t *testing.T) {
	c, eng := newTestController(t)
	eng.PlayErr = errors.New("decode failed")
	c.SetBackground("music/disgust.mp3")

	c.Tick()
	if c.HasBackground() {
		t.Error("failing background should be dropped")
	}
	eng.PlayErr = nil
	c.Tick()
	if eng.CallCount("Play") != 1 {
		t.Errorf("Play calls = %d, want 1", eng.CallCount("Play"))
	}
}

func TestPlayForegroundError(t *testing.T) {
	c, eng := newTestController(t)
	eng.PlayErr = errors.New("boom")
	if err := c.PlayForeground("runtime/voice.mp3"); err == nil {
		t.Fatal("expected error")
	}
	if s := c.Snapshot(); s.Layer != "none" {
		t.Errorf("layer = %s, want none", s.Layer)
	}
}
