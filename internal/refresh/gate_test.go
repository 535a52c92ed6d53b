package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkip(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-10 * time.Second)
	stale := now.Add(-31 * time.Minute)
	boundary := now.Add(-30 * time.Minute)

	cases := []struct {
		name     string
		last     *time.Time
		interval time.Duration
		want     bool
	}{
		{"no prior snapshot", nil, 30 * time.Minute, false},
		{"recent snapshot", &recent, 30 * time.Minute, true},
		{"stale snapshot", &stale, 30 * time.Minute, false},
		{"exactly at interval", &boundary, 30 * time.Minute, false},
		{"zero interval always refreshes", &recent, 0, false},
		{"negative interval always refreshes", &recent, -time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldSkip(tc.last, now, tc.interval))
		})
	}
}

func TestShouldSkipIsIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Minute)
	first := ShouldSkip(&last, now, time.Hour)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ShouldSkip(&last, now, time.Hour))
	}
}
