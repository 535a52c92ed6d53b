package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// SampleFixture builds a fixture whose raw payload looks like an upstream match.
func SampleFixture(id int64, kickoff time.Time, status fixtures.Status) fixtures.Fixture {
	raw := fmt.Sprintf(`{"id":%d,"utcDate":%q,"status":%q,"homeTeam":{"name":"Home %d"},"awayTeam":{"name":"Away %d"}}`,
		id, kickoff.UTC().Format(time.RFC3339), status, id, id)
	var f fixtures.Fixture
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		panic(err)
	}
	return f
}

// SampleSnapshot returns a two-bucket snapshot updated at the given time.
func SampleSnapshot(updated time.Time) fixtures.Snapshot {
	buckets := fixtures.NewBuckets("today", "tomorrow")
	buckets.Add("today", SampleFixture(1, updated, fixtures.StatusTimed))
	buckets.Add("tomorrow", SampleFixture(2, updated.Add(24*time.Hour), fixtures.StatusScheduled))
	return fixtures.Snapshot{Fixtures: buckets, LastUpdated: updated.UnixMilli()}
}

// SampleMatchStatus returns a live match lookup result.
func SampleMatchStatus(id int64) fixtures.MatchStatus {
	return fixtures.MatchStatus{
		ID:           id,
		Status:       fixtures.StatusInPlay,
		UTCDate:      "2024-03-10T16:30:00Z",
		HomeTeamName: "Arsenal",
		AwayTeamName: "Chelsea",
		Score:        json.RawMessage(`{"fullTime":{"home":1,"away":0}}`),
	}
}
