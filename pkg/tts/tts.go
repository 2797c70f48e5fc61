// Package tts turns the helper's voice lines into MP3 clips.
//
// Baidu short-text TTS is the only backend. It returns whole clips, never
// streams, so the package deals in complete buffers and SynthesizeToFile
// drops one where the audio engine can load it:
//
//	speech := tts.NewBaidu(tts.WithCredentials(baidu.TTSCredentialsFromEnv()))
//	defer speech.Close()
//
//	err := tts.SynthesizeToFile(ctx, speech, "你好", ".runtime/voice.mp3")
package tts

import (
	"context"
	"strings"
	"time"
)

// Provider synthesizes speech.
type Provider interface {
	// Synthesize returns the spoken form of text.
	Synthesize(ctx context.Context, text string) (*Clip, error)

	// Health checks that the credentials are accepted.
	Health(ctx context.Context) error

	Close() error
}

// Clip is one synthesized line.
type Clip struct {
	Audio       []byte
	ContentType string        // as reported by the server, e.g. "audio/mp3"
	Chars       int           // runes synthesized
	Latency     time.Duration // request round trip
}

// Ext returns the file extension matching the clip's content type.
func (c *Clip) Ext() string {
	switch {
	case strings.Contains(c.ContentType, "wav"):
		return ".wav"
	case strings.Contains(c.ContentType, "basic"), strings.Contains(c.ContentType, "pcm"):
		return ".pcm"
	default:
		return ".mp3"
	}
}
