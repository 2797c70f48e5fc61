package baidu_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/teslashibe/emotional-helper/pkg/baidu"
)

func TestTokenSource(t *testing.T) {
	creds := baidu.Credentials{APIKey: "ak", SecretKey: "sk"}

	t.Run("returns access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("Expected GET, got %s", r.Method)
			}
			q := r.URL.Query()
			if q.Get("grant_type") != "client_credentials" {
				t.Errorf("grant_type = %q", q.Get("grant_type"))
			}
			if q.Get("client_id") != "ak" || q.Get("client_secret") != "sk" {
				t.Errorf("unexpected client credentials: %v", q)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"24.abc","expires_in":2592000}`))
		}))
		defer server.Close()

		tok, err := baidu.NewTokenSource(context.Background(), creds, baidu.WithBaseURL(server.URL)).Token()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.AccessToken != "24.abc" {
			t.Errorf("AccessToken = %q, want 24.abc", tok.AccessToken)
		}
		if tok.Expiry.IsZero() {
			t.Error("expected expiry to be set")
		}
	})

	t.Run("missing access_token fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"invalid_client","error_description":"unknown client id"}`))
		}))
		defer server.Close()

		_, err := baidu.NewTokenSource(context.Background(), creds, baidu.WithBaseURL(server.URL)).Token()
		if !errors.Is(err, baidu.ErrNoAccessToken) {
			t.Fatalf("expected ErrNoAccessToken, got %v", err)
		}
	})

	t.Run("http error is an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		_, err := baidu.NewTokenSource(context.Background(), creds, baidu.WithBaseURL(server.URL)).Token()
		var apiErr *baidu.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if !apiErr.IsServerError() {
			t.Errorf("expected server error, got status %d", apiErr.StatusCode)
		}
	})

	t.Run("missing credentials skip the request", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		_, err := baidu.NewTokenSource(context.Background(), baidu.Credentials{APIKey: "ak"}, baidu.WithBaseURL(server.URL)).Token()
		if !errors.Is(err, baidu.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no request, got %d", calls.Load())
		}
	})

	t.Run("fresh token per call unless reused", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"access_token":"t","expires_in":3600}`))
		}))
		defer server.Close()

		src := baidu.NewTokenSource(context.Background(), creds, baidu.WithBaseURL(server.URL))
		src.Token()
		src.Token()
		if calls.Load() != 2 {
			t.Errorf("expected 2 token requests, got %d", calls.Load())
		}

		calls.Store(0)
		reused := baidu.NewTokenSource(context.Background(), creds, baidu.WithBaseURL(server.URL), baidu.WithReuse())
		reused.Token()
		reused.Token()
		if calls.Load() != 1 {
			t.Errorf("expected 1 token request with reuse, got %d", calls.Load())
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := baidu.Truncate("情绪管理小帮手", 2); got != "情绪" {
		t.Errorf("Truncate = %q, want 情绪", got)
	}
	if got := baidu.Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q, want abc", got)
	}
}
