package face

import (
	"errors"

	"github.com/teslashibe/emotional-helper/internal/config"
)

var (
	// ErrMissingCredentials is returned when the face API keys are not configured.
	ErrMissingCredentials = errors.New("face: missing env: " + config.EnvFaceAPIKey + " / " + config.EnvFaceSecretKey)

	// ErrEmptyImage is returned when asked to classify zero bytes.
	ErrEmptyImage = errors.New("face: empty image")
)
