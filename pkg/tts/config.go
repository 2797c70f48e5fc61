package tts

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/teslashibe/emotional-helper/internal/httpc"
	"github.com/teslashibe/emotional-helper/pkg/baidu"
)

// Defaults for the Baidu short-text TTS endpoint.
const (
	DefaultBaiduURL = "http://tsn.baidu.com/text2audio"
	DefaultCUID     = "EmotionalHelper"
	DefaultLanguage = "zh"
)

// Config holds TTS provider configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Provider credentials
	Credentials baidu.Credentials
	BaseURL     string
	TokenURL    string

	// Request parameters. Zero values for Speed, Pitch and Volume leave
	// the server defaults in place.
	CUID     string
	Language string
	VoiceID  string
	Speed    int
	Pitch    int
	Volume   int

	// Timeouts
	Timeout time.Duration

	HTTPClient *http.Client

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring TTS providers.
type Option func(*Config)

// WithCredentials sets the API key/secret key pair.
func WithCredentials(creds baidu.Credentials) Option {
	return func(c *Config) {
		c.Credentials = creds
	}
}

// WithBaseURL overrides the synthesis endpoint.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(url string) Option {
	return func(c *Config) {
		c.TokenURL = url
	}
}

// WithCUID sets the client identifier sent as cuid.
func WithCUID(cuid string) Option {
	return func(c *Config) {
		c.CUID = cuid
	}
}

// WithVoice sets the speaker (a preset name or raw per value).
func WithVoice(voiceID string) Option {
	return func(c *Config) {
		c.VoiceID = ResolveBaiduVoice(voiceID)
	}
}

// WithProsody sets speed, pitch and volume (each 0-15, 0 = server default).
func WithProsody(speed, pitch, volume int) Option {
	return func(c *Config) {
		c.Speed = speed
		c.Pitch = pitch
		c.Volume = volume
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client used for synthesis requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the structured logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaiduURL,
		TokenURL: baidu.DefaultTokenURL,
		CUID:     DefaultCUID,
		Language: DefaultLanguage,
		Timeout:  httpc.APITimeout,
		Logger:   slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if !c.Credentials.Valid() {
		return ErrMissingCredentials
	}
	return nil
}
