package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/healthdash/pkg/metrics"
)

const defaultBaseURL = "http://localhost:8080/api"

// CredentialSource yields the bearer credential, or "" when signed out.
type CredentialSource interface {
	CurrentCredential() string
}

// Client is the single chokepoint for outbound backend calls.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource
	stats       *metrics.CallStats
	logger      *slog.Logger
}

// NewClient builds a gateway client. The http.Client carries no timeout; callers bound
// calls through their context.
func NewClient(baseURL string, credentials CredentialSource, stats *metrics.CallStats, logger *slog.Logger) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     strings.TrimRight(url, "/"),
		httpClient:  &http.Client{},
		credentials: credentials,
		stats:       stats,
		logger:      logger.With("component", "gateway.client"),
	}
}

// Call issues exactly one exchange. body is JSON encoded when non-nil and the success
// payload is decoded into out when out is non-nil.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	if method == "" {
		method = http.MethodGet
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.credentials != nil {
		if token := c.credentials.CurrentCredential(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	statKey := method + " " + pathOnly(endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.stats.Record(statKey, true)
		c.logger.Warn("backend unreachable", "method", method, "endpoint", endpoint, "error", err)
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.stats.Record(statKey, true)
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.stats.Record(statKey, true)
		reqErr := &RequestError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.logger.Warn("backend request failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "message", reqErr.Message)
		return reqErr
	}
	c.stats.Record(statKey, false)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Error) == 0 {
		return defaultErrorMessage
	}
	var message string
	if err := json.Unmarshal(payload.Error, &message); err != nil || message == "" {
		return defaultErrorMessage
	}
	return message
}

func pathOnly(endpoint string) string {
	if idx := strings.IndexByte(endpoint, '?'); idx >= 0 {
		return endpoint[:idx]
	}
	return endpoint
}
