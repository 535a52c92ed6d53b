package footballdata

import "time"

const (
	ProviderName       = "football-data"
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512

	headerAuthToken    = "X-Auth-Token"
	headerCounterReset = "X-RequestCounter-Reset"
	headerAvailable    = "X-Requests-Available-Minute"

	// teamMatchStatuses is the filter used for a team's recent and upcoming matches.
	teamMatchStatuses = "FINISHED,SCHEDULED,LIVE"
)
