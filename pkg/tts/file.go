package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// SynthesizeToFile synthesizes text with p and writes the audio to path,
// creating parent directories as needed. Nothing is written on failure.
func SynthesizeToFile(ctx context.Context, p Provider, text, path string) error {
	result, err := p.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tts: create output dir: %w", err)
	}
	if err := os.WriteFile(path, result.Audio, 0o644); err != nil {
		return fmt.Errorf("tts: write audio: %w", err)
	}
	return nil
}
