// Package sim is the HTTP client for the simulation controller.
package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/avasek/sim-interact-cli/internal/ports"
)

const maxEventResponseBytes = 64 << 20

// Client drives a simulator over its HTTP step API. Calls block until
// the simulator responds; no retries and no timeout beyond the
// caller's context, a stuck simulator stalls the session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ ports.Controller = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("controller base url is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: httpClient}, nil
}

// Step applies one command and returns the resulting event.
func (c *Client) Step(ctx context.Context, cmd domain.Command) (domain.Event, error) {
	body, err := json.Marshal(toStepRequest(cmd))
	if err != nil {
		return domain.Event{}, fmt.Errorf("encode step request: %w", err)
	}
	return c.post(ctx, "/step", bytes.NewReader(body))
}

// Reset reinitializes the scene and returns its initial event.
func (c *Client) Reset(ctx context.Context) (domain.Event, error) {
	return c.post(ctx, "/reset", strings.NewReader("{}"))
}

func (c *Client) post(ctx context.Context, path string, body io.Reader) (domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return domain.Event{}, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Event{}, fmt.Errorf("controller %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.Event{}, fmt.Errorf("controller %s: unexpected status %s", path, resp.Status)
	}

	var payload eventResponse
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxEventResponseBytes))
	if err := decoder.Decode(&payload); err != nil {
		return domain.Event{}, fmt.Errorf("decode %s response: %w", path, err)
	}

	event, err := payload.toDomain()
	if err != nil {
		return domain.Event{}, fmt.Errorf("map %s response: %w", path, err)
	}
	return event, nil
}
