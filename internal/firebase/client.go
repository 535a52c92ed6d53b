// Package firebase is a minimal Realtime Database REST client authenticated
// with a database secret.
package firebase

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
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// ServerTimestamp asks the database to stamp the write time server-side.
var ServerTimestamp = map[string]string{".sv": "timestamp"}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds database URL, secret and HTTP client.
type Config struct {
	DatabaseURL string
	Secret      string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// Client talks to one database over REST.
type Client struct {
	baseURL    string
	secret     string
	httpClient httpDoer
}

// Error is a non-2xx answer from the database.
type Error struct {
	Op         string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("firebase %s %s: status %d: %s", e.Op, e.Path, e.StatusCode, e.Body)
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.DatabaseURL), "/")
	if base == "" {
		return nil, errors.New("firebase: database url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("firebase: invalid database url: %w", err)
	}
	if cfg.Secret == "" {
		return nil, errors.New("firebase: secret required")
	}
	return &Client{
		baseURL:    base,
		secret:     cfg.Secret,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get decodes the value at path into dest. It reports false when the node is empty.
func (c *Client) Get(ctx context.Context, path string, dest any) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return false, fmt.Errorf("firebase get %s: decode: %w", path, err)
	}
	return true, nil
}

// Put overwrites the node at path.
func (c *Client) Put(ctx context.Context, path string, value any) error {
	_, err := c.do(ctx, http.MethodPut, path, value)
	return err
}

// Patch updates the listed children of path in one atomic write. Keys may be
// slash-separated child paths.
func (c *Client) Patch(ctx context.Context, path string, values map[string]any) error {
	_, err := c.do(ctx, http.MethodPatch, path, values)
	return err
}

// Push appends value under a generated child key and returns that key.
func (c *Client) Push(ctx context.Context, path string, value any) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, value)
	if err != nil {
		return "", err
	}
	var out struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("firebase push %s: decode: %w", path, err)
	}
	return out.Name, nil
}

// Ping reads the shallow root to verify connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "", nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	q.Set("shallow", "true")
	req.URL.RawQuery = q.Encode()
	_, err = c.send(req, "", http.MethodGet)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, value any) ([]byte, error) {
	var body io.Reader
	if value != nil {
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("firebase %s %s: encode: %w", strings.ToLower(method), path, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.send(req, path, method)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c == nil {
		return nil, errors.New("firebase client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) send(req *http.Request, path, method string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firebase %s %s: %w", strings.ToLower(method), path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("firebase %s %s: read body: %w", strings.ToLower(method), path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := data
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &Error{Op: strings.ToLower(method), Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return data, nil
}

// endpoint builds {base}/{path}.json?auth={secret}.
func (c *Client) endpoint(path string) string {
	path = strings.Trim(path, "/")
	u := c.baseURL + "/" + path + ".json"
	return u + "?auth=" + url.QueryEscape(c.secret)
}
