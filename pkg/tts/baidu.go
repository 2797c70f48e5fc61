package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teslashibe/emotional-helper/internal/httpc"
	"github.com/teslashibe/emotional-helper/pkg/baidu"
)

// maxErrorBody is how much of a non-audio response is kept as diagnostic.
const maxErrorBody = 500

// Baidu implements Provider for Baidu short-text TTS.
type Baidu struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewBaidu creates a Baidu TTS provider. Missing credentials are reported
// on the first Synthesize call, not here.
func NewBaidu(opts ...Option) *Baidu {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	client := cfg.HTTPClient
	if client == nil {
		client = httpc.NewClient(cfg.Timeout)
	}

	return &Baidu{
		config: cfg,
		client: client,
		logger: cfg.Logger.With("component", "tts.baidu"),
	}
}

// Synthesize converts text to MP3 audio.
func (b *Baidu) Synthesize(ctx context.Context, text string) (*Clip, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	token, err := b.token(ctx)
	if err != nil {
		return nil, err
	}

	form := b.form(token, text)

	ctx, cancel := context.WithTimeout(ctx, b.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.config.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: read response: %w", err)
	}
	latency := time.Since(start)

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !strings.Contains(contentType, "audio/") {
		return nil, parseError(resp.StatusCode, body)
	}

	b.logger.Debug("synthesized audio",
		"chars", utf8.RuneCountInString(text),
		"bytes", len(body),
		"latency", latency,
		"content_type", contentType,
	)

	return &Clip{
		Audio:       body,
		ContentType: contentType,
		Chars:       utf8.RuneCountInString(text),
		Latency:     latency,
	}, nil
}

// Health verifies the credentials by fetching a token.
func (b *Baidu) Health(ctx context.Context) error {
	if err := b.config.Validate(); err != nil {
		return err
	}
	_, err := b.token(ctx)
	return err
}

// Close releases resources.
func (b *Baidu) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func (b *Baidu) form(token, text string) url.Values {
	form := url.Values{}
	form.Set("tok", token)
	form.Set("tex", text)
	form.Set("cuid", b.config.CUID)
	form.Set("lan", b.config.Language)
	form.Set("ctp", "1")
	if b.config.VoiceID != "" {
		form.Set("per", b.config.VoiceID)
	}
	if b.config.Speed > 0 {
		form.Set("spd", strconv.Itoa(b.config.Speed))
	}
	if b.config.Pitch > 0 {
		form.Set("pit", strconv.Itoa(b.config.Pitch))
	}
	if b.config.Volume > 0 {
		form.Set("vol", strconv.Itoa(b.config.Volume))
	}
	return form
}

func (b *Baidu) token(ctx context.Context) (string, error) {
	src := baidu.NewTokenSource(ctx, b.config.Credentials,
		baidu.WithBaseURL(b.config.TokenURL),
		baidu.WithLogger(b.config.Logger),
	)
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("tts: %w", err)
	}
	return tok.AccessToken, nil
}

// baiduError is the JSON body Baidu sends instead of audio.
type baiduError struct {
	ErrNo  int    `json:"err_no"`
	ErrMsg string `json:"err_msg"`
}

// parseError turns a non-audio response into an APIError carrying the
// start of the body. Baidu reports failures as JSON with HTTP 200.
func parseError(status int, body []byte) error {
	apiErr := &baidu.APIError{
		StatusCode: status,
		Message:    baidu.Truncate(string(body), maxErrorBody),
		Service:    service,
	}
	var be baiduError
	if json.Unmarshal(body, &be) == nil && be.ErrNo != 0 {
		apiErr.Code = strconv.Itoa(be.ErrNo)
	}
	return apiErr
}

// Verify Baidu implements Provider at compile time.
var _ Provider = (*Baidu)(nil)
