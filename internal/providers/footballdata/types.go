package footballdata

import (
	"encoding/json"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

type matchesResponse struct {
	Matches []fixtures.Fixture `json:"matches"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchPayload struct {
	ID          int64           `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      fixtures.Status `json:"status"`
	Minute      json.RawMessage `json:"minute"`
	Score       json.RawMessage `json:"score"`
	HomeTeam    json.RawMessage `json:"homeTeam"`
	AwayTeam    json.RawMessage `json:"awayTeam"`
	Competition json.RawMessage `json:"competition"`
	LastUpdated string          `json:"lastUpdated"`
}

// matchEnvelope accepts both the bare match object and the older {match: {...}} wrapper.
type matchEnvelope struct {
	Match *matchPayload `json:"match"`
	matchPayload
}
