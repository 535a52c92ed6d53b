package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/teststubs"
)

func sampleMatch() fixtures.MatchStatus {
	return fixtures.MatchStatus{
		ID:           497410,
		Status:       fixtures.StatusInPlay,
		UTCDate:      "2024-03-10T16:30:00Z",
		HomeTeamName: "Arsenal",
		AwayTeamName: "Chelsea",
	}
}

func TestAnalyzeCombinesBothParts(t *testing.T) {
	matches := &teststubs.StubMatchProvider{Matches: map[int64]fixtures.MatchStatus{497410: sampleMatch()}}
	ai := &teststubs.StubCompleter{Content: "intro <response>Arsenal da Chelsea sun hadu sau 200</response>"}
	svc := NewService(matches, ai, nil)

	report, err := svc.Analyze(context.Background(), Request{MatchID: 497410, HomeName: "Arsenal", AwayName: "Chelsea"})
	require.NoError(t, err)
	require.NotNil(t, report.MatchStatus)
	assert.Nil(t, report.MatchStatusError)
	assert.Equal(t, "Arsenal", report.MatchStatus.HomeTeamName)
	assert.Equal(t, "Arsenal da Chelsea sun hadu sau 200", report.GPTAnalysis.ResponseText)
	assert.Equal(t, []int{HistoryMaxTokens}, ai.MaxTokens)
	assert.Contains(t, ai.Prompts[0], "**Arsenal**")
}

func TestAnalyzeReportsPartialFailures(t *testing.T) {
	matches := &teststubs.StubMatchProvider{Err: &providers.UpstreamError{Provider: "football-data", StatusCode: 403, Body: "restricted"}}
	ai := &teststubs.StubCompleter{Err: errors.New("credits exhausted")}
	svc := NewService(matches, ai, nil)

	report, err := svc.Analyze(context.Background(), Request{MatchID: 1, HomeName: "Kano Pillars", AwayName: "Enyimba"})
	require.NoError(t, err)
	assert.Nil(t, report.MatchStatus)
	require.NotNil(t, report.MatchStatusError)
	assert.Contains(t, *report.MatchStatusError, "Football Data Error")
	assert.Contains(t, report.GPTAnalysis.ResponseText, "credits exhausted")
}

func TestAnalyzeWithoutAI(t *testing.T) {
	matches := &teststubs.StubMatchProvider{Matches: map[int64]fixtures.MatchStatus{497410: sampleMatch()}}
	svc := NewService(matches, nil, nil)

	report, err := svc.Analyze(context.Background(), Request{MatchID: 497410, HomeName: "Arsenal", AwayName: "Chelsea"})
	require.NoError(t, err)
	require.NotNil(t, report.MatchStatus)
	assert.Equal(t, "AI analysis is not configured.", report.GPTAnalysis.ResponseText)
}

func TestAnalyzeValidatesRequest(t *testing.T) {
	matches := &teststubs.StubMatchProvider{}
	svc := NewService(matches, nil, nil)

	_, err := svc.Analyze(context.Background(), Request{HomeName: "Arsenal"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
	appErr, _ := apperr.As(err)
	assert.Equal(t, map[string]any{"missing": []string{"matchId", "awayName"}}, appErr.Detail)
	assert.Zero(t, matches.Calls.Load())
}

func TestAskExtractsTags(t *testing.T) {
	ai := &teststubs.StubCompleter{Content: "<entity_name>Ahmed Musa</entity_name><response>Dan wasan Najeriya ne.</response>"}
	svc := NewService(nil, ai, nil)

	answer, err := svc.Ask(context.Background(), "  Wanene Ahmed Musa? ")
	require.NoError(t, err)
	assert.Equal(t, Answer{Message: "Dan wasan Najeriya ne.", Entity: "Ahmed Musa"}, answer)
	assert.Equal(t, []string{"Wanene Ahmed Musa?"}, ai.Prompts)
	assert.Equal(t, []int{AskMaxTokens}, ai.MaxTokens)
}

func TestAskDefaultsEntity(t *testing.T) {
	svc := NewService(nil, &teststubs.StubCompleter{Content: "plain answer"}, nil)

	answer, err := svc.Ask(context.Background(), "what is offside?")
	require.NoError(t, err)
	assert.Equal(t, "plain answer", answer.Message)
	assert.Equal(t, "general", answer.Entity)
}

func TestAskErrors(t *testing.T) {
	_, err := NewService(nil, &teststubs.StubCompleter{}, nil).Ask(context.Background(), " ")
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))

	_, err = NewService(nil, nil, nil).Ask(context.Background(), "hi")
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))

	upstream := &providers.UpstreamError{Provider: "openrouter", StatusCode: 500, Body: "boom"}
	_, err = NewService(nil, &teststubs.StubCompleter{Err: upstream}, nil).Ask(context.Background(), "hi")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.ErrorIs(t, err, upstream)
}
