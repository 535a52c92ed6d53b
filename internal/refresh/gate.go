package refresh

import "time"

// ShouldSkip reports whether the stored snapshot is recent enough to serve as-is.
// A missing timestamp or a non-positive interval always refreshes.
func ShouldSkip(lastUpdated *time.Time, now time.Time, interval time.Duration) bool {
	if lastUpdated == nil || interval <= 0 {
		return false
	}
	return now.Sub(*lastUpdated) < interval
}
