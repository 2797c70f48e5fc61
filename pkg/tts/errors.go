package tts

import (
	"errors"

	"github.com/teslashibe/emotional-helper/internal/config"
)

var (
	// ErrMissingCredentials is returned when the TTS API keys are not configured.
	ErrMissingCredentials = errors.New("tts: missing env: " + config.EnvTTSAPIKey + " / " + config.EnvTTSSecretKey)

	// ErrEmptyText is returned when asked to synthesize nothing.
	ErrEmptyText = errors.New("tts: empty text")
)

// service tags *baidu.APIError values returned by this package.
const service = "tts"
