package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/testutil"
)

func TestTeamsTeamDetails(t *testing.T) {
	teams := &testutil.StubTeamProvider{Details: providers.TeamDetails{
		Team:    json.RawMessage(`{"id":57,"name":"Arsenal FC"}`),
		Matches: json.RawMessage(`{"matches":[]}`),
	}}
	h := NewHandler(Deps{Teams: teams})

	req := testutil.JSONRequest(t, http.MethodPost, "/api/teams",
		map[string]any{"action": "get_team_details", "teamId": 57, "timeZone": "UTC"}, "")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Teams), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got struct {
		Status string `json:"status"`
		Data   struct {
			Team    map[string]any `json:"team"`
			Matches map[string]any `json:"matches"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rr, &got)
	if got.Status != "success" || got.Data.Team["name"] != "Arsenal FC" {
		t.Fatalf("unexpected body %+v", got)
	}
	if teams.LastTZ != "UTC" {
		t.Fatalf("expected timezone forwarded, got %q", teams.LastTZ)
	}
}

func TestTeamsPlayerDetails(t *testing.T) {
	teams := &testutil.StubTeamProvider{Person: json.RawMessage(`{"id":44,"name":"Bukayo Saka"}`)}
	h := NewHandler(Deps{Teams: teams})

	req := testutil.JSONRequest(t, http.MethodPost, "/api/teams",
		map[string]any{"action": "get_player_details", "playerId": "44"}, "")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Teams), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got struct {
		Data struct {
			Person map[string]any `json:"person"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rr, &got)
	if got.Data.Person["name"] != "Bukayo Saka" {
		t.Fatalf("unexpected person %+v", got.Data.Person)
	}
}

func TestTeamsValidation(t *testing.T) {
	teams := &testutil.StubTeamProvider{}
	h := NewHandler(Deps{Teams: teams})

	cases := []map[string]any{
		{"action": "get_team_details"},
		{"action": "get_team_details", "teamId": 57, "timeZone": "Mars/Olympus"},
		{"action": "get_player_details", "playerId": "x"},
		{"action": "delete_team", "teamId": 57},
	}
	for _, payload := range cases {
		req := testutil.JSONRequest(t, http.MethodPost, "/api/teams", payload, "")
		testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.Teams), req), http.StatusBadRequest)
	}
	if teams.TeamHits.Load() != 0 {
		t.Fatalf("expected no upstream calls on invalid input")
	}
}

func TestTeamsUpstreamErrors(t *testing.T) {
	teams := &testutil.StubTeamProvider{Err: &providers.UpstreamError{Provider: "football-data", StatusCode: http.StatusNotFound}}
	h := NewHandler(Deps{Teams: teams})
	req := testutil.JSONRequest(t, http.MethodPost, "/api/teams", map[string]any{"action": "get_team_details", "teamId": 999}, "")
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.Teams), req), http.StatusNotFound)

	teams.Err = &providers.UpstreamError{Provider: "football-data", StatusCode: http.StatusTooManyRequests}
	req = testutil.JSONRequest(t, http.MethodPost, "/api/teams", map[string]any{"action": "get_player_details", "playerId": 1}, "")
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.Teams), req), http.StatusInternalServerError)

	h = NewHandler(Deps{})
	req = testutil.JSONRequest(t, http.MethodPost, "/api/teams", map[string]any{"action": "get_team_details", "teamId": 1}, "")
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.Teams), req), http.StatusServiceUnavailable)
}
