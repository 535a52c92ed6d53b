package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
)

type stubRefresher struct {
	mu      sync.Mutex
	err     error
	calls   []refresh.Options
	notify  chan struct{}
	summary fixtures.Summary
}

func (s *stubRefresher) Refresh(ctx context.Context, opts refresh.Options) (fixtures.Summary, error) {
	s.mu.Lock()
	s.calls = append(s.calls, opts)
	err := s.err
	s.mu.Unlock()
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	if err != nil {
		return fixtures.Summary{}, err
	}
	return s.summary, nil
}

func (s *stubRefresher) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubRefresher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPollerRefreshesOnBootAndTick(t *testing.T) {
	refresher := &stubRefresher{
		notify:  make(chan struct{}, 1),
		summary: fixtures.Summary{Status: "success", State: fixtures.StateRefreshed, Total: 3},
	}
	p := New(refresher, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}
	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for scheduled refresh")
	}

	cancel()
	_ = p.Stop(context.Background())

	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	for _, opts := range refresher.calls {
		if opts.Trigger != refresh.TriggerSchedule {
			t.Fatalf("expected schedule trigger, got %q", opts.Trigger)
		}
		if opts.Force {
			t.Fatalf("scheduled refresh must honour the freshness gate")
		}
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	refresher := &stubRefresher{notify: make(chan struct{}, 1)}
	p := New(refresher, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)
	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := refresher.callCount()
	time.Sleep(20 * time.Millisecond)
	if refresher.callCount() != callsAfterStop {
		t.Fatalf("expected no refreshes after stop; before=%d after=%d", callsAfterStop, refresher.callCount())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubRefresher{}, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	refresher := &stubRefresher{notify: make(chan struct{}, 1)}
	p := New(refresher, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx)

	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if got := refresher.callCount(); got != 1 {
		t.Fatalf("expected a single boot refresh, got %d", got)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&stubRefresher{}, nil, 0)
	if p.Interval() != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.Interval())
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	refresher := &stubRefresher{
		err:     errors.New("boom"),
		summary: fixtures.Summary{Status: "success", State: fixtures.StateFresh},
	}
	p := New(refresher, discardLogger(), time.Minute)

	p.runOnce(context.Background())
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError != "boom" {
		t.Fatalf("expected last error recorded, got %q", status.LastError)
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	refresher.setErr(nil)
	p.runOnce(context.Background())
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if status.LastState != fixtures.StateFresh {
		t.Fatalf("expected last state fresh, got %q", status.LastState)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestStatusIsReadyAfterRepeatedFailures(t *testing.T) {
	status := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if status.IsReady() {
		t.Fatalf("expected not ready after three consecutive failures")
	}
	status.ConsecutiveFailures = 2
	if !status.IsReady() {
		t.Fatalf("expected ready with fewer than three failures")
	}
}
