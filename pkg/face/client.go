package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/teslashibe/emotional-helper/internal/httpc"
	"github.com/teslashibe/emotional-helper/pkg/baidu"
	"github.com/teslashibe/emotional-helper/pkg/emotions"
)

const (
	// DefaultDetectURL is the Baidu face detection v3 endpoint.
	DefaultDetectURL = "https://aip.baidubce.com/rest/2.0/face/v3/detect"

	// DefaultFaceFields lists the attributes requested per face.
	DefaultFaceFields = "face_token,age,beauty,expression,emotion"

	statusSuccess = "SUCCESS"
)

// Config holds face client configuration.
type Config struct {
	Credentials baidu.Credentials
	DetectURL   string
	TokenURL    string
	FaceFields  string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithCredentials sets the API key/secret key pair.
func WithCredentials(creds baidu.Credentials) Option {
	return func(c *Config) {
		c.Credentials = creds
	}
}

// WithDetectURL overrides the detection endpoint.
func WithDetectURL(u string) Option {
	return func(c *Config) {
		c.DetectURL = u
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(u string) Option {
	return func(c *Config) {
		c.TokenURL = u
	}
}

// WithTimeout sets the detection request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client used for detection requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns the production endpoints and a 20s timeout.
func DefaultConfig() *Config {
	return &Config{
		DetectURL:  DefaultDetectURL,
		TokenURL:   baidu.DefaultTokenURL,
		FaceFields: DefaultFaceFields,
		Timeout:    httpc.APITimeout,
		Logger:     slog.Default(),
	}
}

// Client implements Classifier against the Baidu face API.
type Client struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a face client. Missing credentials are reported on
// the first Classify call, not here.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		config: cfg,
		client: client,
		logger: cfg.Logger.With("component", "face.baidu"),
	}
}

type detectRequest struct {
	Image     string `json:"image"`
	ImageType string `json:"image_type"`
	FaceField string `json:"face_field"`
	Option    string `json:"option"`
}

type detectResponse struct {
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
	Result    *struct {
		FaceNum  int `json:"face_num"`
		FaceList []struct {
			Emotion *struct {
				Type        string  `json:"type"`
				Probability float64 `json:"probability"`
			} `json:"emotion"`
		} `json:"face_list"`
	} `json:"result"`
}

// Classify returns the emotion of the first detected face.
func (c *Client) Classify(ctx context.Context, jpeg []byte) (emotions.Label, error) {
	if !c.config.Credentials.Valid() {
		return emotions.None, ErrMissingCredentials
	}
	if len(jpeg) == 0 {
		return emotions.None, ErrEmptyImage
	}

	token, err := c.token(ctx)
	if err != nil {
		return emotions.None, err
	}

	body, err := json.Marshal(detectRequest{
		Image:     base64.StdEncoding.EncodeToString(jpeg),
		ImageType: "BASE64",
		FaceField: c.config.FaceFields,
		Option:    "COMMON",
	})
	if err != nil {
		return emotions.None, fmt.Errorf("face: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	endpoint := c.config.DetectURL + "?access_token=" + url.QueryEscape(token.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return emotions.None, fmt.Errorf("face: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return emotions.None, fmt.Errorf("face: detect: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return emotions.None, fmt.Errorf("face: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return emotions.None, &baidu.APIError{
			StatusCode: resp.StatusCode,
			Message:    baidu.Truncate(strings.TrimSpace(string(data)), 500),
			Service:    "face",
		}
	}

	var dr detectResponse
	if err := json.Unmarshal(data, &dr); err != nil {
		return emotions.None, fmt.Errorf("face: decode response: %w", err)
	}

	label := c.labelFrom(&dr)
	c.logger.Debug("detect complete",
		"status", dr.ErrorMsg,
		"emotion", label.String(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return label, nil
}

// labelFrom normalises every unusable response to emotions.None.
func (c *Client) labelFrom(dr *detectResponse) emotions.Label {
	if dr.ErrorMsg != statusSuccess {
		c.logger.Debug("detection unsuccessful", "code", dr.ErrorCode, "msg", dr.ErrorMsg)
		return emotions.None
	}
	if dr.Result == nil || len(dr.Result.FaceList) == 0 {
		return emotions.None
	}
	first := dr.Result.FaceList[0]
	if first.Emotion == nil || first.Emotion.Type == "" {
		return emotions.None
	}
	label, ok := emotions.Parse(first.Emotion.Type)
	if !ok {
		c.logger.Warn("unknown emotion type", "type", first.Emotion.Type)
		return emotions.None
	}
	return label
}

func (c *Client) token(ctx context.Context) (*oauth2.Token, error) {
	src := baidu.NewTokenSource(ctx, c.config.Credentials,
		baidu.WithBaseURL(c.config.TokenURL),
		baidu.WithLogger(c.config.Logger),
	)
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("face: %w", err)
	}
	return tok, nil
}

// Verify Client implements Classifier at compile time.
var _ Classifier = (*Client)(nil)
