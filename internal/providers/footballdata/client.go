package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

// ErrMissingAPIKey is returned when the client is built without a token.
var ErrMissingAPIKey = errors.New("footballdata: api key required")

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Statuses filters window fetches; empty requests every lifecycle state.
	Statuses []fixtures.Status
}

// Client talks to the football-data.org v4 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	statuses   string
}

// NewClient constructs a client; the API key is mandatory.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	statuses := cfg.Statuses
	if len(statuses) == 0 {
		statuses = fixtures.AllStatuses
	}
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		statuses:   strings.Join(parts, ","),
	}, nil
}

// FetchFixtures lists matches between window.From and window.To inclusive.
// A non-empty competition narrows the request to that competition code.
func (c *Client) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	path := "/matches"
	if competition != "" {
		path = "/competitions/" + url.PathEscape(competition) + "/matches"
	}
	q := url.Values{}
	q.Set("dateFrom", window.FromDate())
	q.Set("dateTo", window.ToDate())
	q.Set("status", c.statuses)

	var payload matchesResponse
	if err := c.getJSON(ctx, path, q, &payload); err != nil {
		return nil, err
	}
	if payload.Matches == nil {
		return []fixtures.Fixture{}, nil
	}
	return payload.Matches, nil
}

// FetchMatch returns the live view of one match.
func (c *Client) FetchMatch(ctx context.Context, id int64) (fixtures.MatchStatus, error) {
	var env matchEnvelope
	if err := c.getJSON(ctx, "/matches/"+strconv.FormatInt(id, 10), nil, &env); err != nil {
		return fixtures.MatchStatus{}, err
	}
	payload := env.matchPayload
	if env.Match != nil {
		payload = *env.Match
	}
	if payload.ID == 0 {
		payload.ID = id
	}
	return mapMatchStatus(payload), nil
}

// FetchTeam returns a team profile plus its matches, with kickoff times
// rendered in timezone when it is set.
func (c *Client) FetchTeam(ctx context.Context, id int64, timezone string) (providers.TeamDetails, error) {
	base := "/teams/" + strconv.FormatInt(id, 10)

	var team json.RawMessage
	if err := c.getJSON(ctx, base, nil, &team); err != nil {
		return providers.TeamDetails{}, err
	}

	q := url.Values{}
	q.Set("status", teamMatchStatuses)
	if timezone != "" {
		q.Set("timeZone", timezone)
	}
	var matches struct {
		Matches json.RawMessage `json:"matches"`
	}
	if err := c.getJSON(ctx, base+"/matches", q, &matches); err != nil {
		return providers.TeamDetails{}, err
	}
	if len(matches.Matches) == 0 {
		matches.Matches = json.RawMessage("[]")
	}
	return providers.TeamDetails{Team: team, Matches: matches.Matches}, nil
}

// FetchPerson returns a player's profile.
func (c *Client) FetchPerson(ctx context.Context, id int64) (json.RawMessage, error) {
	var person json.RawMessage
	if err := c.getJSON(ctx, "/persons/"+strconv.FormatInt(id, 10), nil, &person); err != nil {
		return nil, err
	}
	return person, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set(headerAuthToken, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header),
			Remaining:  resp.Header.Get(headerAvailable),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.UpstreamError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode %s: %w", ProviderName, path, err)
	}
	return nil
}
