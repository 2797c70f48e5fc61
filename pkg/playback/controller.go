// Package playback layers one-shot voice lines over looping mood music on a
// single audio channel.
//
// The foreground layer (a spoken line) preempts the background layer (mood
// music). When the foreground clip ends the background resumes at the offset
// it was interrupted at; when the background itself ends it restarts from 0.
package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teslashibe/emotional-helper/pkg/audio"
)

// Layer identifies what currently owns the audio channel.
type Layer int

const (
	LayerNone Layer = iota
	LayerForeground
	LayerBackground
)

func (l Layer) String() string {
	switch l {
	case LayerForeground:
		return "foreground"
	case LayerBackground:
		return "background"
	default:
		return "none"
	}
}

// Event is what Tick observed.
type Event int

const (
	EventNone Event = iota
	// EventForegroundDone means a voice line finished playing.
	EventForegroundDone
	// EventBackgroundStarted means the music loop was (re)started.
	EventBackgroundStarted
)

// volumeSteps is the number of volume increments between silent and full.
const volumeSteps = 10

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	Volume     float64       `json:"volume"`
	Paused     bool          `json:"paused"`
	Layer      string        `json:"layer"`
	Foreground string        `json:"foreground,omitempty"`
	Background string        `json:"background,omitempty"`
	Position   time.Duration `json:"position"`
}

// Config configures a Controller.
type Config struct {
	// InitialVolume in [0, 1], rounded to the nearest step.
	InitialVolume float64
	Logger        *slog.Logger
}

// DefaultConfig starts at full volume.
func DefaultConfig() Config {
	return Config{
		InitialVolume: 1.0,
		Logger:        slog.Default(),
	}
}

// Controller drives an audio.Engine.
type Controller struct {
	engine audio.Engine
	logger *slog.Logger

	mu       sync.Mutex
	volume   int // tenths, 0..volumeSteps
	paused   bool
	active   Layer
	fgPath   string
	bgPath   string
	bgOffset time.Duration
}

// New creates a controller and applies the initial volume to engine.
func New(engine audio.Engine, cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Controller{
		engine: engine,
		logger: cfg.Logger.With("component", "playback"),
		volume: clampSteps(int(audio.ClampVolume(cfg.InitialVolume)*volumeSteps + 0.5)),
	}
	if err := engine.SetVolume(c.volumeLocked()); err != nil {
		c.logger.Warn("set initial volume failed", "error", err)
	}
	return c
}

// PlayForeground plays a one-shot clip from the start, preempting any
// background music. The music position is remembered for Tick.
func (c *Controller) PlayForeground(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == LayerBackground && c.engine.Busy() {
		c.bgOffset = c.engine.Position()
	}

	c.paused = false
	c.fgPath = path
	if err := c.startLocked(path, 0); err != nil {
		c.active = LayerNone
		c.fgPath = ""
		return err
	}
	c.active = LayerForeground
	return nil
}

// SetBackground queues path as the looping background track starting at 0.
// It starts on the next Tick that finds the channel idle. A pause left
// over from before is cleared.
func (c *Controller) SetBackground(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
	c.bgPath = path
	c.bgOffset = 0
}

// HasBackground reports whether a background loop is queued or playing.
func (c *Controller) HasBackground() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bgPath != ""
}

// Tick hands the channel back to the background when it goes idle.
// Nothing happens while paused.
func (c *Controller) Tick() Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused || c.engine.Busy() {
		return EventNone
	}

	ev := EventNone
	switch c.active {
	case LayerForeground:
		ev = EventForegroundDone
		c.active = LayerNone
		c.fgPath = ""
	case LayerBackground:
		// loop finished on its own
		c.bgOffset = 0
		c.active = LayerNone
	}

	if c.bgPath == "" {
		return ev
	}

	if err := c.startLocked(c.bgPath, c.bgOffset); err != nil {
		c.logger.Warn("background track failed, dropping it", "path", c.bgPath, "error", err)
		c.bgPath = ""
		c.bgOffset = 0
		return ev
	}
	c.active = LayerBackground
	if ev == EventNone {
		ev = EventBackgroundStarted
	}
	return ev
}

// Pause pauses the channel.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
	if err := c.engine.Pause(); err != nil {
		return fmt.Errorf("playback: pause: %w", err)
	}
	return nil
}

// Resume continues after Pause.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
	if err := c.engine.Unpause(); err != nil {
		return fmt.Errorf("playback: resume: %w", err)
	}
	return nil
}

// VolumeUp raises the volume by one step and returns the new volume.
func (c *Controller) VolumeUp() (float64, error) {
	return c.adjustVolume(1)
}

// VolumeDown lowers the volume by one step and returns the new volume.
func (c *Controller) VolumeDown() (float64, error) {
	return c.adjustVolume(-1)
}

func (c *Controller) adjustVolume(delta int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = clampSteps(c.volume + delta)
	v := c.volumeLocked()
	if err := c.engine.SetVolume(v); err != nil {
		return v, fmt.Errorf("playback: set volume: %w", err)
	}
	return v, nil
}

// Volume returns the current volume in [0, 1].
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volumeLocked()
}

// Paused reports whether Pause is in effect.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Release stops all audio and forgets both layers.
func (c *Controller) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = LayerNone
	c.fgPath = ""
	c.bgPath = ""
	c.bgOffset = 0
	c.paused = false
	if err := c.engine.Stop(); err != nil {
		return fmt.Errorf("playback: stop: %w", err)
	}
	return nil
}

// Position returns the engine position of the active track.
func (c *Controller) Position() time.Duration {
	return c.engine.Position()
}

// Snapshot returns the current controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Volume:     c.volumeLocked(),
		Paused:     c.paused,
		Layer:      c.active.String(),
		Foreground: c.fgPath,
		Background: c.bgPath,
		Position:   c.engine.Position(),
	}
}

// Close releases the engine.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = LayerNone
	return c.engine.Close()
}

func (c *Controller) startLocked(path string, offset time.Duration) error {
	if err := c.engine.Load(path); err != nil {
		return err
	}
	if err := c.engine.Play(offset); err != nil {
		return err
	}
	c.logger.Debug("track started", "path", path, "offset", offset)
	return nil
}

func (c *Controller) volumeLocked() float64 {
	return float64(c.volume) / volumeSteps
}

func clampSteps(v int) int {
	if v < 0 {
		return 0
	}
	if v > volumeSteps {
		return volumeSteps
	}
	return v
}
