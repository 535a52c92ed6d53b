package refresh

import (
	"fmt"
	"strings"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

// KeyStyle selects how bucket keys are named.
type KeyStyle string

const (
	// KeyOffset names buckets day_<k>.
	KeyOffset KeyStyle = "offset"
	// KeyNamed names buckets yesterday/today/tomorrow, then next<n> and past<n>.
	KeyNamed KeyStyle = "named"
	// KeyDate names buckets by their YYYY-MM-DD calendar day.
	KeyDate KeyStyle = "date"
)

// ParseKeyStyle accepts a config value, case-insensitive.
func ParseKeyStyle(value string) (KeyStyle, error) {
	switch style := KeyStyle(strings.ToLower(strings.TrimSpace(value))); style {
	case KeyOffset, KeyNamed, KeyDate:
		return style, nil
	default:
		return "", fmt.Errorf("unknown bucket key style %q", value)
	}
}

// Scheme is the bucketing configuration: an inclusive day-offset range around today.
type Scheme struct {
	MinOffset       int
	MaxOffset       int
	KeyStyle        KeyStyle
	ExcludeInactive bool
}

// DefaultScheme covers two days back through a week ahead.
func DefaultScheme() Scheme {
	return Scheme{MinOffset: -2, MaxOffset: 7, KeyStyle: KeyNamed}
}

func (s Scheme) Validate() error {
	if s.MinOffset > s.MaxOffset {
		return fmt.Errorf("bucket offsets: min %d exceeds max %d", s.MinOffset, s.MaxOffset)
	}
	if _, err := ParseKeyStyle(string(s.KeyStyle)); err != nil {
		return err
	}
	return nil
}

// Offsets lists every day offset the scheme covers, ascending.
func (s Scheme) Offsets() []int {
	if s.MinOffset > s.MaxOffset {
		return nil
	}
	out := make([]int, 0, s.MaxOffset-s.MinOffset+1)
	for k := s.MinOffset; k <= s.MaxOffset; k++ {
		out = append(out, k)
	}
	return out
}

// Window is the calendar-day range fetched upstream for a cycle started at now.
func (s Scheme) Window(now time.Time) fixtures.Window {
	return fixtures.Window{
		From: timeutil.AddDays(now, s.MinOffset),
		To:   timeutil.AddDays(now, s.MaxOffset),
	}
}

// Key names the bucket holding fixtures k days from now's calendar day.
func (s Scheme) Key(now time.Time, k int) string {
	switch s.KeyStyle {
	case KeyDate:
		return timeutil.FormatDate(timeutil.AddDays(now, k))
	case KeyNamed:
		switch {
		case k == -1:
			return "yesterday"
		case k == 0:
			return "today"
		case k == 1:
			return "tomorrow"
		case k >= 2:
			return fmt.Sprintf("next%d", k-1)
		default:
			return fmt.Sprintf("past%d", -k)
		}
	default:
		return fmt.Sprintf("day_%d", k)
	}
}

// Keys lists every bucket key for a cycle started at now, ascending by day.
func (s Scheme) Keys(now time.Time) []string {
	offsets := s.Offsets()
	keys := make([]string, 0, len(offsets))
	for _, k := range offsets {
		keys = append(keys, s.Key(now, k))
	}
	return keys
}
