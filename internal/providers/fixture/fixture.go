package fixture

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

const ProviderName = "fixture"

type pairing struct {
	competition string
	home, away  string
	kickoffHour int
}

// pairings repeat every day; ids are derived from the day and slot so they stay stable.
var pairings = []pairing{
	{"PL", "Arsenal FC", "Chelsea FC", 12},
	{"PL", "Liverpool FC", "Manchester City FC", 16},
	{"PD", "Real Madrid CF", "FC Barcelona", 20},
	{"SA", "AC Milan", "Juventus FC", 19},
	{"CL", "FC Bayern München", "Paris Saint-Germain FC", 20},
}

// Provider returns a deterministic set of fixtures for local runs.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchFixtures returns every pairing for each day of window, optionally
// filtered to one competition.
func (p *Provider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	today := timeutil.CalendarDay(p.now())
	out := make([]fixtures.Fixture, 0)
	for day := timeutil.CalendarDay(window.From); !day.After(window.To); day = day.AddDate(0, 0, 1) {
		for slot, pair := range pairings {
			if competition != "" && pair.competition != competition {
				continue
			}
			f, err := p.build(day, today, slot, pair)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// FetchMatch resolves ids produced by FetchFixtures.
func (p *Provider) FetchMatch(ctx context.Context, id int64) (fixtures.MatchStatus, error) {
	if err := ctx.Err(); err != nil {
		return fixtures.MatchStatus{}, err
	}
	slot := int(id % 100)
	if id <= 0 || slot >= len(pairings) {
		return fixtures.MatchStatus{}, &providers.UpstreamError{Provider: ProviderName, StatusCode: http.StatusNotFound, Body: "match not found"}
	}
	day := time.Unix((id/100)*86400, 0).UTC()
	pair := pairings[slot]
	status := statusFor(day, timeutil.CalendarDay(p.now()))
	home, _ := json.Marshal(map[string]string{"name": pair.home})
	away, _ := json.Marshal(map[string]string{"name": pair.away})
	comp, _ := json.Marshal(map[string]string{"code": pair.competition})
	return fixtures.MatchStatus{
		ID:           id,
		Status:       status,
		UTCDate:      day.Add(time.Duration(pair.kickoffHour) * time.Hour).Format(time.RFC3339),
		HomeTeamName: pair.home,
		AwayTeamName: pair.away,
		HomeTeam:     home,
		AwayTeam:     away,
		Competition:  comp,
	}, nil
}

func (p *Provider) build(day, today time.Time, slot int, pair pairing) (fixtures.Fixture, error) {
	id := day.Unix()/86400*100 + int64(slot)
	kickoff := day.Add(time.Duration(pair.kickoffHour) * time.Hour)
	status := statusFor(day, today)

	raw, err := json.Marshal(map[string]any{
		"id":          id,
		"utcDate":     kickoff.Format(time.RFC3339),
		"status":      status,
		"competition": map[string]string{"code": pair.competition},
		"homeTeam":    map[string]string{"name": pair.home},
		"awayTeam":    map[string]string{"name": pair.away},
	})
	if err != nil {
		return fixtures.Fixture{}, err
	}
	return fixtures.Fixture{ID: id, UTCDate: kickoff, Status: status, Raw: raw}, nil
}

func statusFor(day, today time.Time) fixtures.Status {
	switch {
	case day.Before(today):
		return fixtures.StatusFinished
	case day.Equal(today):
		return fixtures.StatusTimed
	default:
		return fixtures.StatusScheduled
	}
}
