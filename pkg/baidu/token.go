package baidu

import (
	"context"
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
)

// DefaultTokenURL is the Baidu OAuth endpoint.
const DefaultTokenURL = "https://aip.baidubce.com/oauth/2.0/token"

// Option configures a token source.
type Option func(*tokenConfig)

type tokenConfig struct {
	tokenURL string
	client   *http.Client
	timeout  time.Duration
	reuse    bool
	logger   *slog.Logger
}

// WithBaseURL overrides the token endpoint URL.
func WithBaseURL(u string) Option {
	return func(c *tokenConfig) {
		c.tokenURL = u
	}
}

// WithHTTPClient sets the HTTP client used for token requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *tokenConfig) {
		c.client = client
	}
}

// WithTimeout sets the token request timeout (default 10s).
func WithTimeout(timeout time.Duration) Option {
	return func(c *tokenConfig) {
		c.timeout = timeout
	}
}

// WithReuse caches tokens until they expire.
func WithReuse() Option {
	return func(c *tokenConfig) {
		c.reuse = true
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *tokenConfig) {
		c.logger = logger
	}
}

// tokenSource fetches a fresh token on every call.
type tokenSource struct {
	ctx      context.Context
	creds    Credentials
	tokenURL string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// NewTokenSource returns a source exchanging creds for access tokens.
// The context bounds every request made by the source.
func NewTokenSource(ctx context.Context, creds Credentials, opts ...Option) oauth2.TokenSource {
	cfg := tokenConfig{
		tokenURL: DefaultTokenURL,
		timeout:  httpc.TokenTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.client == nil {
		cfg.client = httpc.NewClient(cfg.timeout)
	}

	src := &tokenSource{
		ctx:      ctx,
		creds:    creds,
		tokenURL: cfg.tokenURL,
		client:   cfg.client,
		timeout:  cfg.timeout,
		logger:   cfg.logger.With("component", "baidu.token"),
	}
	if cfg.reuse {
		return oauth2.ReuseTokenSource(nil, src)
	}
	return src
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Token performs the client-credentials exchange.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	if !s.creds.Valid() {
		return nil, ErrMissingCredentials
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("grant_type", "client_credentials")
	q.Set("client_id", s.creds.APIKey)
	q.Set("client_secret", s.creds.SecretKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("baidu token: create request: %w", err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("baidu token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("baidu token: read response: %w", err)
	}

	var tr tokenResponse
	decodeErr := json.Unmarshal(body, &tr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := tr.ErrorDescription
		if decodeErr != nil || msg == "" {
			msg = Truncate(strings.TrimSpace(string(body)), 500)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Code: tr.Error, Message: msg, Service: "oauth"}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("baidu token: decode response: %w", decodeErr)
	}
	if tr.AccessToken == "" {
		if tr.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrNoAccessToken, tr.Error, tr.ErrorDescription)
		}
		return nil, ErrNoAccessToken
	}

	s.logger.Debug("fetched access token",
		"expires_in", tr.ExpiresIn,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   "bearer",
	}
	if tr.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}
