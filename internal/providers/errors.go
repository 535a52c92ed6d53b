package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when no upstream is wired.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// UpstreamError is a non-2xx answer from a third-party API. Body is truncated.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// Detail renders upstream failures into a client-facing detail payload.
// Errors that carry no upstream response yield nil.
func Detail(err error) any {
	if rl, ok := AsRateLimitError(err); ok {
		detail := map[string]any{"provider": rl.Provider, "status": rl.StatusCode}
		if rl.RetryAfter > 0 {
			detail["retryAfterSeconds"] = int(rl.RetryAfter / time.Second)
		}
		return detail
	}
	if up, ok := AsUpstreamError(err); ok {
		return map[string]any{"provider": up.Provider, "status": up.StatusCode, "body": up.Body}
	}
	return nil
}
