package providers

import (
	"context"
	"encoding/json"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// FixtureProvider fetches every match in window from upstream. An empty
// competition requests all competitions the upstream plan covers.
type FixtureProvider interface {
	FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error)
}

// MatchProvider looks up the current state of a single match.
type MatchProvider interface {
	FetchMatch(ctx context.Context, id int64) (fixtures.MatchStatus, error)
}

// Fetcher retrieves the fixtures for one refresh window.
type Fetcher interface {
	Fetch(ctx context.Context, window fixtures.Window) ([]fixtures.Fixture, error)
}

// TeamDetails bundles a team profile with its recent and upcoming matches.
type TeamDetails struct {
	Team    json.RawMessage `json:"team"`
	Matches json.RawMessage `json:"matches"`
}

// TeamProvider serves team and player profiles.
type TeamProvider interface {
	FetchTeam(ctx context.Context, id int64, timezone string) (TeamDetails, error)
	FetchPerson(ctx context.Context, id int64) (json.RawMessage, error)
}
