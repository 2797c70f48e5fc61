package helper

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/teslashibe/emotional-helper/internal/config"
)

// Default configuration values.
const (
	DefaultAssetsDir       = "assets"
	DefaultRuntimeDir      = ".runtime"
	DefaultSampleEvery     = 5
	DefaultTickInterval    = 10 * time.Millisecond
	DefaultPreviewEvery    = 3
	DefaultReactionTimeout = 45 * time.Second

	frameFile = "frame.jpg"
	voiceFile = "voice.mp3"
)

// Environment variable names read by LoadEnvConfig.
const (
	EnvAssets      = "EMOHELPER_ASSETS"
	EnvRuntime     = "EMOHELPER_RUNTIME"
	EnvSampleEvery = "EMOHELPER_SAMPLE_EVERY"
	EnvAutoRelease = "EMOHELPER_AUTO_RELEASE"
)

// Config holds the main loop settings.
// Flag parsing is done in cmd/emohelper; this struct is data only.
type Config struct {
	// AssetsDir contains music/<label>.mp3 and musiclogo/<icon>.jpg.
	AssetsDir string

	// RuntimeDir receives frame.jpg and voice.mp3.
	RuntimeDir string

	// SampleEvery is the number of ticks between classification attempts.
	SampleEvery int

	// TickInterval is the loop period.
	TickInterval time.Duration

	// PreviewEvery is the number of ticks between dashboard camera frames.
	// Zero disables the preview.
	PreviewEvery int

	// AutoReleaseVoiceOnly returns to idle once the line of a mood without
	// music has been spoken.
	AutoReleaseVoiceOnly bool

	InitialVolume float64

	// ReactionTimeout bounds one classify+synthesize job.
	ReactionTimeout time.Duration
}

// DefaultConfig returns the stock loop settings.
func DefaultConfig() Config {
	return Config{
		AssetsDir:            DefaultAssetsDir,
		RuntimeDir:           DefaultRuntimeDir,
		SampleEvery:          DefaultSampleEvery,
		TickInterval:         DefaultTickInterval,
		PreviewEvery:         DefaultPreviewEvery,
		AutoReleaseVoiceOnly: true,
		InitialVolume:        1.0,
		ReactionTimeout:      DefaultReactionTimeout,
	}
}

// LoadEnvConfig applies environment overrides.
// Call this after flag parsing.
func (c *Config) LoadEnvConfig() {
	c.AssetsDir = config.EnvOr(EnvAssets, c.AssetsDir)
	c.RuntimeDir = config.EnvOr(EnvRuntime, c.RuntimeDir)
	c.SampleEvery = config.EnvInt(EnvSampleEvery, c.SampleEvery)
	c.AutoReleaseVoiceOnly = config.EnvBool(EnvAutoRelease, c.AutoReleaseVoiceOnly)
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch {
	case c.AssetsDir == "":
		return &ConfigError{Field: "AssetsDir", Message: "assets directory is required"}
	case c.RuntimeDir == "":
		return &ConfigError{Field: "RuntimeDir", Message: "runtime directory is required"}
	case c.SampleEvery < 1:
		return &ConfigError{Field: "SampleEvery", Message: fmt.Sprintf("sample interval must be at least 1 tick, got %d", c.SampleEvery)}
	case c.TickInterval <= 0:
		return &ConfigError{Field: "TickInterval", Message: "tick interval must be positive"}
	case c.PreviewEvery < 0:
		return &ConfigError{Field: "PreviewEvery", Message: "preview interval must not be negative"}
	case c.InitialVolume < 0 || c.InitialVolume > 1:
		return &ConfigError{Field: "InitialVolume", Message: fmt.Sprintf("initial volume %.2f outside [0,1]", c.InitialVolume)}
	case c.ReactionTimeout <= 0:
		return &ConfigError{Field: "ReactionTimeout", Message: "reaction timeout must be positive"}
	}
	return nil
}

// MusicDir is where the mood tracks live.
func (c *Config) MusicDir() string { return filepath.Join(c.AssetsDir, "music") }

// IconDir is where the track icons live.
func (c *Config) IconDir() string { return filepath.Join(c.AssetsDir, "musiclogo") }

// FramePath is the snapshot sent to the classifier.
func (c *Config) FramePath() string { return filepath.Join(c.RuntimeDir, frameFile) }

// VoicePath is the synthesized line.
func (c *Config) VoicePath() string { return filepath.Join(c.RuntimeDir, voiceFile) }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
