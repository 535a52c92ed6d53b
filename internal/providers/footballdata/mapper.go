package footballdata

import (
	"encoding/json"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

func mapMatchStatus(p matchPayload) fixtures.MatchStatus {
	return fixtures.MatchStatus{
		ID:           p.ID,
		Status:       p.Status,
		UTCDate:      p.UTCDate,
		Minute:       nonNull(p.Minute),
		Score:        nonNull(p.Score),
		HomeTeamName: teamName(p.HomeTeam),
		AwayTeamName: teamName(p.AwayTeam),
		HomeTeam:     nonNull(p.HomeTeam),
		AwayTeam:     nonNull(p.AwayTeam),
		Competition:  nonNull(p.Competition),
		LastUpdated:  p.LastUpdated,
	}
}

func teamName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var ref teamRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return ""
	}
	return ref.Name
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
