package testutil

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

// GoodProvider returns the provided fixtures with no error.
type GoodProvider struct {
	Fixtures []fixtures.Fixture
}

func (p GoodProvider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	return p.Fixtures, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	return nil, providers.ErrProviderUnavailable
}

// StubTeamProvider answers team and person lookups with canned payloads.
type StubTeamProvider struct {
	Details  providers.TeamDetails
	Person   json.RawMessage
	Err      error
	LastTZ   string
	TeamHits atomic.Int32
}

func (p *StubTeamProvider) FetchTeam(ctx context.Context, id int64, timezone string) (providers.TeamDetails, error) {
	p.TeamHits.Add(1)
	p.LastTZ = timezone
	if p.Err != nil {
		return providers.TeamDetails{}, p.Err
	}
	return p.Details, nil
}

func (p *StubTeamProvider) FetchPerson(ctx context.Context, id int64) (json.RawMessage, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Person, nil
}
