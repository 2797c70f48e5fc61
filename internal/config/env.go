// Package config provides environment helpers for emotional-helper commands.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the Baidu cloud credentials.
const (
	EnvTTSAPIKey     = "BAIDU_TTS_API_KEY"
	EnvTTSSecretKey  = "BAIDU_TTS_SECRET_KEY"
	EnvFaceAPIKey    = "BAIDU_FACE_API_KEY"
	EnvFaceSecretKey = "BAIDU_FACE_SECRET_KEY"
)

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given). Variables already present in the environment win. Missing
// files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Env returns the trimmed value of name, or "" when unset or blank.
func Env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// EnvOr returns the trimmed value of name, falling back to def.
func EnvOr(name, def string) string {
	if v := Env(name); v != "" {
		return v
	}
	return def
}

// EnvInt returns name parsed as an int, falling back to def when unset
// or malformed.
func EnvInt(name string, def int) int {
	v := Env(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvBool returns name parsed as a bool, falling back to def.
func EnvBool(name string, def bool) bool {
	v := Env(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
