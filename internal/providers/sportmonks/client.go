// Package sportmonks resolves free-text fixture questions against the SportMonks football API.
package sportmonks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

const (
	ProviderName       = "sportmonks"
	defaultBaseURL     = "https://api.sportmonks.com/v3/football"
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512
)

// ErrUnknownQuery is returned when a question maps to no lookup.
var ErrUnknownQuery = errors.New("sportmonks: query must mention today, tomorrow or next")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// Result is the upstream payload plus the request URL with the token removed.
type Result struct {
	SourceURL string          `json:"source_url"`
	Data      json.RawMessage `json:"data"`
}

func NewClient(cfg Config) *Client {
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		doer = &http.Client{Timeout: defaultHTTPTimeout}
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		apiKey:     cfg.APIKey,
		httpClient: doer,
		now:        time.Now,
	}
}

// Lookup maps a question onto livescores ("today") or fixtures by date
// ("tomorrow", or "next"/"jibi" for the day after).
func (c *Client) Lookup(ctx context.Context, query string) (Result, error) {
	path, ok := c.resolve(query)
	if !ok {
		return Result{}, ErrUnknownQuery
	}
	return c.get(ctx, path)
}

func (c *Client) resolve(query string) (string, bool) {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "today"):
		return "/livescores", true
	case strings.Contains(q, "tomorrow"):
		return "/fixtures/date/" + timeutil.FormatDate(timeutil.AddDays(c.now(), 1)), true
	case strings.Contains(q, "jibi"), strings.Contains(q, "next"):
		return "/fixtures/date/" + timeutil.FormatDate(timeutil.AddDays(c.now(), 2)), true
	default:
		return "", false
	}
}

func (c *Client) get(ctx context.Context, path string) (Result, error) {
	source := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return Result{}, err
	}
	q := url.Values{}
	q.Set("api_token", c.apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Result{}, &providers.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("%s: decode: %w", ProviderName, err)
	}
	return Result{SourceURL: source, Data: payload}, nil
}
