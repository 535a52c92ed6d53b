package fixtures

import (
	"encoding/json"
	"time"
)

// Status mirrors the upstream match lifecycle state.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusSuspended Status = "SUSPENDED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
	StatusAwarded   Status = "AWARDED"
)

// AllStatuses is the status filter sent upstream so every lifecycle state is returned.
var AllStatuses = []Status{
	StatusFinished,
	StatusScheduled,
	StatusInPlay,
	StatusPaused,
	StatusSuspended,
	StatusPostponed,
	StatusTimed,
	StatusCancelled,
}

// Inactive reports whether the match will not be played as scheduled.
func (s Status) Inactive() bool {
	switch s {
	case StatusPostponed, StatusCancelled, StatusSuspended:
		return true
	default:
		return false
	}
}

// Fixture is a single scheduled or played match. Only the fields the service
// reasons about are decoded; the upstream object is preserved in Raw and
// re-encoded untouched.
type Fixture struct {
	ID      int64
	UTCDate time.Time
	Status  Status
	Raw     json.RawMessage
}

type fixtureHead struct {
	ID      int64  `json:"id"`
	UTCDate string `json:"utcDate,omitempty"`
	Status  Status `json:"status,omitempty"`
}

// New builds a fixture without upstream payload; it encodes as {id, utcDate, status}.
func New(id int64, kickoff time.Time, status Status) Fixture {
	return Fixture{ID: id, UTCDate: kickoff.UTC(), Status: status}
}

// UnmarshalJSON keeps the raw object and extracts id, utcDate and status.
// An unparseable utcDate leaves UTCDate zero so categorisation skips it.
func (f *Fixture) UnmarshalJSON(data []byte) error {
	var head fixtureHead
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	f.ID = head.ID
	f.Status = head.Status
	f.UTCDate = time.Time{}
	if head.UTCDate != "" {
		if parsed, err := time.Parse(time.RFC3339, head.UTCDate); err == nil {
			f.UTCDate = parsed.UTC()
		}
	}
	f.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (f Fixture) MarshalJSON() ([]byte, error) {
	if len(f.Raw) > 0 {
		return f.Raw, nil
	}
	head := fixtureHead{ID: f.ID, Status: f.Status}
	if !f.UTCDate.IsZero() {
		head.UTCDate = f.UTCDate.UTC().Format(time.RFC3339)
	}
	return json.Marshal(head)
}

// Window is the inclusive range of UTC calendar days requested upstream.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) FromDate() string { return w.From.UTC().Format("2006-01-02") }
func (w Window) ToDate() string   { return w.To.UTC().Format("2006-01-02") }

// String renders the window the way refresh summaries report it.
func (w Window) String() string {
	return w.FromDate() + " → " + w.ToDate()
}

// MatchStatus is the lightweight view returned by the status lookup.
type MatchStatus struct {
	ID           int64           `json:"id"`
	Status       Status          `json:"status"`
	UTCDate      string          `json:"utcDate,omitempty"`
	Minute       json.RawMessage `json:"minute,omitempty"`
	Score        json.RawMessage `json:"score,omitempty"`
	HomeTeamName string          `json:"homeTeamName,omitempty"`
	AwayTeamName string          `json:"awayTeamName,omitempty"`
	HomeTeam     json.RawMessage `json:"homeTeam,omitempty"`
	AwayTeam     json.RawMessage `json:"awayTeam,omitempty"`
	Competition  json.RawMessage `json:"competition,omitempty"`
	LastUpdated  string          `json:"lastUpdated,omitempty"`
}
