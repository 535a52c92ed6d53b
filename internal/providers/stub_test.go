package providers

import (
	"context"
	"sync"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

type stubCall struct {
	competition string
	at          time.Time
}

type stubFixtureProvider struct {
	mu      sync.Mutex
	calls   []stubCall
	results map[string][]fixtures.Fixture
	errs    map[string]error
}

func (s *stubFixtureProvider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	s.mu.Lock()
	s.calls = append(s.calls, stubCall{competition: competition, at: time.Now()})
	s.mu.Unlock()
	if err := s.errs[competition]; err != nil {
		return nil, err
	}
	return s.results[competition], nil
}

func (s *stubFixtureProvider) Calls() []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubCall(nil), s.calls...)
}

func fixtureAt(id int64, hour int) fixtures.Fixture {
	return fixtures.New(id, time.Date(2024, 3, 10, hour, 0, 0, 0, time.UTC), fixtures.StatusTimed)
}
