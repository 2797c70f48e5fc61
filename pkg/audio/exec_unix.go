//go:build unix

package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ExecEngine plays tracks by running an external player per track.
// Pause and resume stop and continue the player process.
type ExecEngine struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	path   string
	volume float64
	closed bool

	cmd  *exec.Cmd
	done chan struct{}

	// position bookkeeping
	offset      time.Duration
	startedAt   time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

// NewExecEngine creates an engine after checking the player is installed.
func NewExecEngine(opts ...Option) (*ExecEngine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Args == nil {
		cfg.Args = FFplayArgs
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	player, err := exec.LookPath(cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, cfg.Player)
	}
	cfg.Player = player

	return &ExecEngine{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "audio.exec"),
		volume: ClampVolume(cfg.Volume),
	}, nil
}

// Load stops current playback and selects path.
func (e *ExecEngine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("audio: load %s: %w", path, err)
	}
	e.stopLocked()
	e.path = path
	return nil
}

// Play starts the loaded track at offset.
func (e *ExecEngine) Play(offset time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.path == "" {
		return ErrNotLoaded
	}
	e.stopLocked()
	return e.startLocked(offset)
}

// Pause stops the player process in place.
func (e *ExecEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.runningLocked() || e.paused {
		return nil
	}
	if err := e.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
		return fmt.Errorf("audio: pause: %w", err)
	}
	e.paused = true
	e.pausedAt = time.Now()
	return nil
}

// Unpause continues a paused player.
func (e *ExecEngine) Unpause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.runningLocked() || !e.paused {
		return nil
	}
	if err := e.cmd.Process.Signal(syscall.SIGCONT); err != nil {
		return fmt.Errorf("audio: resume: %w", err)
	}
	e.pausedTotal += time.Since(e.pausedAt)
	e.paused = false
	return nil
}

// Stop ends playback.
func (e *ExecEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	return nil
}

// SetVolume changes the volume. A live player is relaunched at its
// current position since the player cannot change volume in flight.
func (e *ExecEngine) SetVolume(v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	v = ClampVolume(v)
	if v == e.volume {
		return nil
	}
	e.volume = v
	if !e.runningLocked() {
		return nil
	}

	pos := e.positionLocked()
	wasPaused := e.paused
	e.stopLocked()
	if err := e.startLocked(pos); err != nil {
		return err
	}
	if wasPaused {
		if err := e.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
			return fmt.Errorf("audio: pause: %w", err)
		}
		e.paused = true
		e.pausedAt = time.Now()
	}
	return nil
}

// Busy reports whether the player process is alive.
func (e *ExecEngine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runningLocked()
}

// Position returns the playback position, excluding paused time.
func (e *ExecEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.runningLocked() {
		return 0
	}
	return e.positionLocked()
}

// Close stops playback. The engine cannot be used afterwards.
func (e *ExecEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.stopLocked()
	e.closed = true
	return nil
}

func (e *ExecEngine) startLocked(offset time.Duration) error {
	if offset < 0 {
		offset = 0
	}
	cmd := exec.Command(e.cfg.Player, e.cfg.Args(e.path, offset, e.volume)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("audio: start %s: %w", e.cfg.Player, err)
	}

	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			e.logger.Debug("player wait failed", "error", err)
		}
		close(done)
	}()

	e.cmd = cmd
	e.done = done
	e.offset = offset
	e.startedAt = time.Now()
	e.paused = false
	e.pausedTotal = 0

	e.logger.Debug("playing", "path", e.path, "offset", offset, "volume", e.volume)
	return nil
}

func (e *ExecEngine) stopLocked() {
	if e.cmd == nil {
		return
	}
	if e.runningLocked() {
		_ = e.cmd.Process.Kill()
		<-e.done
	}
	e.cmd = nil
	e.done = nil
	e.paused = false
}

func (e *ExecEngine) runningLocked() bool {
	if e.done == nil {
		return false
	}
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

func (e *ExecEngine) positionLocked() time.Duration {
	elapsed := time.Since(e.startedAt) - e.pausedTotal
	if e.paused {
		elapsed -= time.Since(e.pausedAt)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return e.offset + elapsed
}

var _ Engine = (*ExecEngine)(nil)
