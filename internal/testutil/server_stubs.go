package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/tauraronwasa/fixture-service/internal/poller"
)

// FakePoller records Start/Stop calls and reports a fixed status.
type FakePoller struct {
	StopErr  error
	Snapshot poller.Status

	starts atomic.Int32
	stops  atomic.Int32
}

func (p *FakePoller) Start(context.Context) { p.starts.Add(1) }

func (p *FakePoller) Stop(context.Context) error {
	p.stops.Add(1)
	return p.StopErr
}

func (p *FakePoller) Status() poller.Status { return p.Snapshot }

// Starts reports how many times Start ran.
func (p *FakePoller) Starts() int { return int(p.starts.Load()) }

// Stops reports how many times Stop ran.
func (p *FakePoller) Stops() int { return int(p.stops.Load()) }

// FakeHTTPServer stands in for the listening server in wiring tests.
// ListenAndServe returns ListenErr at once. When Hold is non-nil, Shutdown
// waits until Hold closes or ctx ends.
type FakeHTTPServer struct {
	Address     string
	Mux         http.Handler
	ListenErr   error
	ShutdownErr error
	Hold        chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *FakeHTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *FakeHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Hold == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Hold:
		return s.ShutdownErr
	}
}

func (s *FakeHTTPServer) Addr() string {
	if s.Address == "" {
		return ":0"
	}
	return s.Address
}

func (s *FakeHTTPServer) Handler() http.Handler {
	if s.Mux == nil {
		return http.NotFoundHandler()
	}
	return s.Mux
}

// Listens reports how many times ListenAndServe ran.
func (s *FakeHTTPServer) Listens() int { return int(s.listens.Load()) }

// Shutdowns reports how many times Shutdown ran.
func (s *FakeHTTPServer) Shutdowns() int { return int(s.shutdowns.Load()) }
