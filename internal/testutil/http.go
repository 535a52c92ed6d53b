package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Serve executes a request against the provided handler and returns the recorder.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ServeRequest executes the given request against the handler.
func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// JSONRequest builds a request with payload encoded as its JSON body and,
// when apiKey is set, the x-api-key header.
func JSONRequest(t *testing.T, method, path string, payload any, apiKey string) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	return req
}

// AssertStatus verifies the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d (body=%s)", want, rr.Code, truncate(rr.Body.String(), 512))
	}
}

// DecodeJSON decodes the recorder body into dest, failing the test on error.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// ErrorBody is the JSON failure shape shared by every route.
type ErrorBody struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	Detail    any    `json:"detail"`
	RequestID string `json:"requestId"`
}

// DetailMap returns the detail as an object, or nil when it is a scalar.
func (b ErrorBody) DetailMap() map[string]any {
	m, _ := b.Detail.(map[string]any)
	return m
}

// AssertError checks the status and that the body is the JSON error shape.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, want int) ErrorBody {
	t.Helper()
	AssertStatus(t, rr, want)
	var body ErrorBody
	DecodeJSON(t, rr, &body)
	if !body.Error || body.Message == "" {
		t.Fatalf("expected error body, got %+v", body)
	}
	return body
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
