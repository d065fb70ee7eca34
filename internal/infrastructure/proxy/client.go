package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/exposure-verify-api/internal/domain"
)

// Client forwards an entire issuance to an upstream issue-proxy service.
// The upstream's status code and body are passed through verbatim; this
// client never interprets them beyond handing both back to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Forward POSTs body as JSON to baseURL+path and returns the upstream
// status and raw response body. A transport-level failure (upstream
// unreachable, context cancelled) is returned as an error; an upstream
// error status is not — the caller relays it as-is.
func (c *Client) Forward(ctx context.Context, path string, body interface{}) (int, json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal proxy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("issue proxy unreachable: %v: %w", err, domain.ErrDelivery)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read proxy response: %v: %w", err, domain.ErrDelivery)
	}
	return resp.StatusCode, raw, nil
}
