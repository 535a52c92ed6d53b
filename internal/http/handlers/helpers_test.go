package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/tauraronwasa/fixture-service/internal/analysis"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/providers/sportmonks"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
	"github.com/tauraronwasa/fixture-service/internal/upload"
)

type stubRefresher struct {
	summary fixtures.Summary
	err     error
	opts    []refresh.Options
}

func (s *stubRefresher) Refresh(ctx context.Context, opts refresh.Options) (fixtures.Summary, error) {
	s.opts = append(s.opts, opts)
	return s.summary, s.err
}

type stubAnalyzer struct {
	report  analysis.Report
	answer  analysis.Answer
	err     error
	request analysis.Request
	query   string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req analysis.Request) (analysis.Report, error) {
	s.request = req
	if err := req.Validate(); err != nil {
		return analysis.Report{}, err
	}
	return s.report, s.err
}

func (s *stubAnalyzer) Ask(ctx context.Context, query string) (analysis.Answer, error) {
	s.query = query
	return s.answer, s.err
}

type stubHost struct {
	link  string
	err   error
	files []upload.File
}

func (s *stubHost) Upload(ctx context.Context, f upload.File) (string, error) {
	s.files = append(s.files, f)
	return s.link, s.err
}

type stubLiveScores struct {
	result sportmonks.Result
	err    error
	query  string
}

func (s *stubLiveScores) Lookup(ctx context.Context, query string) (sportmonks.Result, error) {
	s.query = query
	return s.result, s.err
}

type stubRecords struct {
	mu     sync.Mutex
	err    error
	path   string
	stored json.RawMessage
}

func (s *stubRecords) Put(ctx context.Context, path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.path = path
	s.stored = raw
	return nil
}

// withURLParam attaches a chi route param so handlers can be called directly.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
