package audio

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// DefaultPlayer is the external player used by ExecEngine.
const DefaultPlayer = "ffplay"

// ArgsFunc builds the player argument list for a track.
type ArgsFunc func(path string, offset time.Duration, volume float64) []string

// Config holds ExecEngine configuration.
type Config struct {
	// Player is the binary name or path.
	Player string

	// Args builds the command line. Defaults to FFplayArgs.
	Args ArgsFunc

	// Volume is the initial volume in [0, 1].
	Volume float64

	Logger *slog.Logger
}

// Option configures an ExecEngine.
type Option func(*Config)

// WithPlayer sets the player binary.
func WithPlayer(player string) Option {
	return func(c *Config) {
		c.Player = player
	}
}

// WithArgs overrides how the player command line is built.
func WithArgs(fn ArgsFunc) Option {
	return func(c *Config) {
		c.Args = fn
	}
}

// WithVolume sets the initial volume.
func WithVolume(v float64) Option {
	return func(c *Config) {
		c.Volume = ClampVolume(v)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns the ffplay configuration at full volume.
func DefaultConfig() Config {
	return Config{
		Player: DefaultPlayer,
		Args:   FFplayArgs,
		Volume: 1.0,
		Logger: slog.Default(),
	}
}

// FFplayArgs runs ffplay headless, exiting at end of track.
func FFplayArgs(path string, offset time.Duration, volume float64) []string {
	return []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", fmt.Sprintf("%.3f", offset.Seconds()),
		"-volume", strconv.Itoa(int(ClampVolume(volume)*100 + 0.5)),
		path,
	}
}
