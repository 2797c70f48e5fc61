package tts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/teslashibe/emotional-helper/pkg/baidu"
	"github.com/teslashibe/emotional-helper/pkg/tts"
)

func TestMockProvider(t *testing.T) {
	mock := tts.NewMock()
	ctx := context.Background()

	clip, err := mock.Synthesize(ctx, "你好")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clip.Audio) == 0 || clip.Chars != 2 {
		t.Errorf("clip = %d bytes, %d chars", len(clip.Audio), clip.Chars)
	}
	if clip.Ext() != ".mp3" {
		t.Errorf("Ext = %q", clip.Ext())
	}

	mock.Synthesize(ctx, "再见")
	if got := mock.Texts(); len(got) != 2 || got[1] != "再见" {
		t.Errorf("Texts = %v", got)
	}

	testErr := errors.New("test error")
	mock.SetError(testErr)
	if _, err := mock.Synthesize(ctx, "x"); !errors.Is(err, testErr) {
		t.Errorf("expected test error, got %v", err)
	}
	if err := mock.Health(ctx); !errors.Is(err, testErr) {
		t.Errorf("expected test error from Health, got %v", err)
	}
	mock.Close()
	if mock.CallCount("Synthesize") != 3 || mock.CallCount("Health") != 1 || mock.CallCount("Close") != 1 {
		t.Errorf("counts = %d/%d/%d", mock.CallCount("Synthesize"), mock.CallCount("Health"), mock.CallCount("Close"))
	}
}

func TestMockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tts.NewMock().Synthesize(ctx, "你好"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestClipExt(t *testing.T) {
	tests := map[string]string{
		"audio/mp3":   ".mp3",
		"audio/mpeg":  ".mp3",
		"audio/wav":   ".wav",
		"audio/basic": ".pcm",
	}
	for ct, want := range tests {
		if got := (&tts.Clip{ContentType: ct}).Ext(); got != want {
			t.Errorf("Ext(%s) = %q, want %q", ct, got, want)
		}
	}
}

func TestSynthesizeToFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "runtime", "voice.mp3")
		if err := tts.SynthesizeToFile(ctx, tts.NewMock(), "你好", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if string(data[:3]) != "ID3" {
			t.Errorf("unexpected audio header %q", data[:3])
		}
	})

	t.Run("writes nothing on failure", func(t *testing.T) {
		path := filepath.Join(dir, "failed", "voice.mp3")
		err := tts.SynthesizeToFile(ctx, tts.WithError(errors.New("nope")), "你好", path)
		if err == nil {
			t.Fatal("expected error")
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("file should not exist")
		}
	})
}

func TestFunctionalOptions(t *testing.T) {
	cfg := tts.DefaultConfig()
	cfg.Apply(
		tts.WithVoice("xiaoyu"),
		tts.WithCUID("test-cuid"),
		tts.WithTimeout(5*time.Second),
		tts.WithProsody(5, 6, 7),
	)

	if cfg.VoiceID != "1" {
		t.Errorf("expected per 1, got %s", cfg.VoiceID)
	}
	if cfg.CUID != "test-cuid" {
		t.Errorf("expected cuid test-cuid, got %s", cfg.CUID)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.Speed != 5 || cfg.Pitch != 6 || cfg.Volume != 7 {
		t.Errorf("unexpected prosody %d/%d/%d", cfg.Speed, cfg.Pitch, cfg.Volume)
	}
	if cfg.Language != "zh" {
		t.Errorf("expected language zh, got %s", cfg.Language)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := tts.DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, tts.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}

	cfg.Credentials = baidu.Credentials{APIKey: "ak", SecretKey: "sk"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
