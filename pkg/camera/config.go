// Package camera captures JPEG frames from a webcam.
package camera

import "fmt"

// Config holds capture settings.
type Config struct {
	DeviceID  int `json:"device_id"` // OpenCV device index
	Width     int `json:"width"`     // requested frame width in pixels
	Height    int `json:"height"`    // requested frame height in pixels
	Framerate int `json:"framerate"`
	Quality   int `json:"quality"` // JPEG quality 1-100
}

// Limits for requested capture settings.
const (
	MaxWidth  = 3840
	MaxHeight = 2160
)

// DefaultConfig returns the first webcam at 640x480.
// The emotion API does not benefit from larger frames.
func DefaultConfig() Config {
	return Config{
		DeviceID:  0,
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   85,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errs []string

	if c.DeviceID < 0 {
		errs = append(errs, "device_id must not be negative")
	}
	if c.Width < 160 || c.Width > MaxWidth {
		errs = append(errs, fmt.Sprintf("width must be between 160 and %d", MaxWidth))
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errs = append(errs, fmt.Sprintf("height must be between 120 and %d", MaxHeight))
	}
	if c.Framerate < 1 || c.Framerate > 120 {
		errs = append(errs, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, "quality must be between 1 and 100")
	}

	return errs
}
