// Package gateway is the HTTP transport to the school-platform REST backend.
// Every backend response is a result envelope; failures surface as *apperr.RemoteError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lshigami/Gradebook/config"
	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/rs/zerolog/log"
)

const maxErrorBody = 64 << 10

// Envelope is the backend's result wrapper.
type Envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gateway: BACKEND_BASE_URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("gateway: invalid BACKEND_BASE_URL: %w", err)
	}
	// Transport defaults apply; only an overall ceiling is configured.
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Backend.Timeout},
	}, nil
}

// NewClientWithHTTPClient is intended for tests.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do performs one request and decodes the envelope's data into out (when out is non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := AuthToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Gateway: request failed")
		return apperr.Remote(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return apperr.Remote(resp.StatusCode, "", fmt.Errorf("read response body: %w", err))
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(started)).
		Msg("Gateway: backend call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.Remote(resp.StatusCode, errorMessage(raw, resp.Status), nil)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if out == nil {
			return nil
		}
		return apperr.Remote(resp.StatusCode, "malformed response envelope", err)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return apperr.Remote(resp.StatusCode, msg, nil)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperr.Remote(resp.StatusCode, "malformed response data", err)
	}
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" && len(s) < 512 {
		return s
	}
	return fallback
}
