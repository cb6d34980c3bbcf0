// Package backend talks to the triage backend service that turns an
// analysis payload into a root-cause answer.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stacklens/internal/logging"
	"stacklens/internal/model"
)

// Client posts analysis payloads to the backend endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *logging.Logger
}

// NewClient builds a client for the given endpoint URL. A zero timeout
// means no client-side timeout.
func NewClient(url string, timeout time.Duration, logger *logging.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Analyze sends the payload and decodes the backend's answer.
func (c *Client) Analyze(ctx context.Context, payload *model.AnalysisPayload) (*model.BackendResponse, error) {
	if payload == nil {
		return nil, fmt.Errorf("backend analyze: payload is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post to backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.logger != nil {
		c.logger.Debug("Backend request completed", map[string]interface{}{
			"status":     resp.StatusCode,
			"durationMs": time.Since(start).Milliseconds(),
		})
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(snippet))
	}

	var out model.BackendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return &out, nil
}
