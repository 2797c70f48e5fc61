// Package baidu exchanges Baidu AI Cloud API keys for OAuth access tokens.
//
// Every Baidu capability used by emotional-helper (face detection and text
// to speech) authenticates with a short-lived token obtained through the
// client-credentials grant:
//
//	src := baidu.NewTokenSource(ctx, baidu.Credentials{APIKey: k, SecretKey: s})
//	tok, err := src.Token()
//	// tok.AccessToken goes into the access_token / tok parameter
//
// Sources are plain oauth2.TokenSource values, so they compose with
// oauth2.ReuseTokenSource when caching is wanted.
package baidu

import (
	"strings"

	"github.com/teslashibe/emotional-helper/internal/config"
)

// Credentials is an API key/secret key pair for one Baidu application.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// Valid reports whether both keys are present.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.SecretKey) != ""
}

// FaceCredentialsFromEnv reads BAIDU_FACE_API_KEY / BAIDU_FACE_SECRET_KEY.
func FaceCredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:    config.Env(config.EnvFaceAPIKey),
		SecretKey: config.Env(config.EnvFaceSecretKey),
	}
}

// TTSCredentialsFromEnv reads BAIDU_TTS_API_KEY / BAIDU_TTS_SECRET_KEY.
func TTSCredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:    config.Env(config.EnvTTSAPIKey),
		SecretKey: config.Env(config.EnvTTSSecretKey),
	}
}
