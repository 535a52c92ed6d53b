package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/poller"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/snapshots"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if !MustParseRFC3339(now.Format(time.RFC3339)).Equal(now) {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestServeAndDecode(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"method":"` + r.Method + `"}`))
	})
	rr := Serve(h, http.MethodPost, "/x", nil)
	AssertStatus(t, rr, http.StatusOK)
	var body map[string]string
	DecodeJSON(t, rr, &body)
	if body["method"] != http.MethodPost {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestJSONRequestSetsHeaders(t *testing.T) {
	req := JSONRequest(t, http.MethodPost, "/api/ai", map[string]string{"query": "hi"}, "secret")
	if req.Header.Get("x-api-key") != "secret" {
		t.Fatalf("expected api key header")
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type")
	}
	var payload map[string]string
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload["query"] != "hi" {
		t.Fatalf("unexpected body %v (%v)", payload, err)
	}

	bare := JSONRequest(t, http.MethodGet, "/health", nil, "")
	if bare.Header.Get("x-api-key") != "" {
		t.Fatalf("expected no api key header")
	}
}

func TestAssertErrorDecodesBody(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusBadRequest)
	_, _ = rr.WriteString(`{"error":true,"message":"bad","requestId":"abc","detail":{"missing":["id"]}}`)
	body := AssertError(t, rr, http.StatusBadRequest)
	if body.RequestID != "abc" || body.DetailMap()["missing"] == nil {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Fatalf("expected short string untouched")
	}
	if got := truncate(strings.Repeat("a", 20), 5); got != "aaaaa..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestSampleFixtureKeepsRawPayload(t *testing.T) {
	kickoff := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	f := SampleFixture(7, kickoff, fixtures.StatusTimed)
	if f.ID != 7 || !f.UTCDate.Equal(kickoff) || f.Status != fixtures.StatusTimed {
		t.Fatalf("unexpected fixture %+v", f)
	}
	if !strings.Contains(string(f.Raw), `"homeTeam"`) {
		t.Fatalf("expected raw upstream payload, got %s", f.Raw)
	}
}

func TestSampleSnapshotAndSeed(t *testing.T) {
	updated := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	snap := SampleSnapshot(updated)
	if snap.Fixtures.Total() != 2 || !snap.UpdatedAt().Equal(updated) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	writer, store := NewMemoryWriter()
	if _, err := writer.Load(context.Background()); !errors.Is(err, snapshots.ErrNoSnapshot) {
		t.Fatalf("expected empty store, got %v", err)
	}
	SeedSnapshot(t, store, updated)
	loaded, err := writer.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.LastUpdated != updated.UnixMilli() {
		t.Fatalf("expected seeded snapshot, got %d", loaded.LastUpdated)
	}
}

func TestSampleMatchStatus(t *testing.T) {
	status := SampleMatchStatus(42)
	if status.ID != 42 || status.Status != fixtures.StatusInPlay {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestProviderStubs(t *testing.T) {
	ctx := context.Background()
	window := fixtures.Window{}
	list, err := GoodProvider{Fixtures: []fixtures.Fixture{fixtures.New(1, time.Now(), fixtures.StatusTimed)}}.FetchFixtures(ctx, window, "")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one fixture, got %d (%v)", len(list), err)
	}
	if _, err := (ErrProvider{Err: errors.New("boom")}).FetchFixtures(ctx, window, "PL"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := (UnavailableProvider{}).FetchFixtures(ctx, window, ""); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}

	teams := &StubTeamProvider{
		Details: providers.TeamDetails{Team: json.RawMessage(`{"id":57}`)},
		Person:  json.RawMessage(`{"id":44}`),
	}
	details, err := teams.FetchTeam(ctx, 57, "Africa/Lagos")
	if err != nil || string(details.Team) != `{"id":57}` || teams.LastTZ != "Africa/Lagos" || teams.TeamHits.Load() != 1 {
		t.Fatalf("unexpected team result %+v (%v)", details, err)
	}
	if person, err := teams.FetchPerson(ctx, 44); err != nil || string(person) != `{"id":44}` {
		t.Fatalf("unexpected person %s (%v)", person, err)
	}
	teams.Err = errors.New("down")
	if _, err := teams.FetchPerson(ctx, 44); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFakePollerCounts(t *testing.T) {
	p := &FakePoller{StopErr: errors.New("stop"), Snapshot: poller.Status{ConsecutiveFailures: 2}}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); err == nil {
		t.Fatalf("expected stop error")
	}
	if p.Starts() != 1 || p.Stops() != 1 || p.Status().ConsecutiveFailures != 2 {
		t.Fatalf("unexpected poller state starts=%d stops=%d", p.Starts(), p.Stops())
	}
}

func TestFakeHTTPServerDefaults(t *testing.T) {
	s := &FakeHTTPServer{}
	if s.Addr() != ":0" || s.Handler() == nil {
		t.Fatalf("expected default addr and handler")
	}
	if err := s.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error, got %v", err)
	}
	_ = s.Shutdown(context.Background())
	if s.Listens() != 1 || s.Shutdowns() != 1 {
		t.Fatalf("unexpected counts listens=%d shutdowns=%d", s.Listens(), s.Shutdowns())
	}

	failing := &FakeHTTPServer{ListenErr: http.ErrServerClosed}
	if err := failing.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected configured listen error, got %v", err)
	}
}

func TestFakeHTTPServerHold(t *testing.T) {
	s := &FakeHTTPServer{Hold: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected held shutdown to end with ctx, got %v", err)
	}

	close(s.Hold)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected released shutdown, got %v", err)
	}
}

func TestRecorderWithShutdown(t *testing.T) {
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown, got %v", err)
	}
}

func TestNewBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected log output")
	}
}
