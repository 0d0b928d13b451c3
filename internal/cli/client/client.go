package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the current access token when one is available.
// The session store satisfies this; the client never blocks a call for
// lacking a token, authorization is enforced server-side.
type TokenSource interface {
	Token() (string, bool)
}

// Envelope is the response wrapper every API endpoint uses. Business-level
// failures arrive as success=false on a 2xx response; callers must branch on
// Success, not merely on a non-error return.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Err returns nil when the envelope reports success, otherwise an error
// carrying the server message (or the given fallback when absent)
func (e *Envelope) Err(fallback string) error {
	if e.Success {
		return nil
	}
	if e.Message != "" {
		return errors.New(e.Message)
	}
	return errors.New(fallback)
}

// Decode unmarshals the envelope's data payload into T
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("response carries no data")
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}

// Client represents an HTTP client for the ClubDeck API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client for the given base URL
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// do sends a request and normalizes error handling. On a non-2xx status the
// error body's message field is surfaced when parseable, otherwise the
// per-operation fallback string. On a 2xx status the envelope is returned
// as-is, including business-level failures.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, fallback string) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env Envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, errors.New(fallback)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &env, nil
}

// doJSON sends a request with a JSON-encoded body
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, fallback string) (*Envelope, error) {
	var reader io.Reader
	contentType := ""

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, reader, contentType, fallback)
}

// doMultipart sends a multipart request using the dual-encoding convention:
// all structured fields as one JSON blob under the "data" field, plus raw
// file parts. See multipart.go.
func (c *Client) doMultipart(ctx context.Context, method, path string, data interface{}, files []FilePart, fallback string) (*Envelope, error) {
	body, contentType, err := encodeMultipart(data, files)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, method, path, body, contentType, fallback)
}
