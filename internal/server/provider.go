package server

import (
	"fmt"

	"github.com/tauraronwasa/fixture-service/internal/config"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/providers/fixture"
	"github.com/tauraronwasa/fixture-service/internal/providers/footballdata"
)

// upstreams groups the provider roles one upstream can fill. teams is nil
// when the provider serves no team profiles.
type upstreams struct {
	name     string
	fixtures providers.FixtureProvider
	matches  providers.MatchProvider
	teams    providers.TeamProvider
}

func selectProvider(cfg config.Config) (upstreams, error) {
	switch cfg.Provider {
	case config.ProviderFixture:
		p := fixture.New()
		return upstreams{name: fixture.ProviderName, fixtures: p, matches: p}, nil
	case config.ProviderFootballData, "":
		client, err := footballdata.NewClient(footballdata.Config{
			BaseURL: cfg.FootballData.BaseURL,
			APIKey:  cfg.FootballData.APIKey,
		})
		if err != nil {
			return upstreams{}, err
		}
		return upstreams{name: footballdata.ProviderName, fixtures: client, matches: client, teams: client}, nil
	default:
		return upstreams{}, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
