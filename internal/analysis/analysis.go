// Package analysis combines live match status with AI-written match history.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/providers/openrouter"
)

const (
	HistoryMaxTokens = 350
	AskMaxTokens     = 2000
	generalEntity    = "general"
)

var entityTag = regexp.MustCompile(`(?is)<entity_name>(.*?)</entity_name>`)

const historySystemPrompt = `You are a senior football analyst and storyteller writing for a Hausa-language sports site.
Answer in fluent Hausa, using the team names Hausa commentators use.
Cover head-to-head history: meetings, wins, draws, standout players and memorable games.
Wrap the whole answer in <response>...</response>.
Keep it under %d tokens.`

const askSystemPrompt = `You are a football expert answering questions for a Hausa-language sports site.
Reply in the language of the question (Hausa or English) and only state facts you are sure of.
Wrap the answer in <response>...</response>.
If the question is about a person or club, put its English name in <entity_name>...</entity_name>; otherwise use <entity_name>general</entity_name>.`

// Completer is the chat model the service talks to.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Request identifies the match to analyse.
type Request struct {
	MatchID  int64  `json:"matchId"`
	HomeName string `json:"homeName"`
	AwayName string `json:"awayName"`
}

// Validate reports the first missing field.
func (r Request) Validate() error {
	var missing []string
	if r.MatchID <= 0 {
		missing = append(missing, "matchId")
	}
	if strings.TrimSpace(r.HomeName) == "" {
		missing = append(missing, "homeName")
	}
	if strings.TrimSpace(r.AwayName) == "" {
		missing = append(missing, "awayName")
	}
	if len(missing) > 0 {
		return apperr.Input("matchId, homeName and awayName are required").WithDetail(map[string]any{"missing": missing})
	}
	return nil
}

type History struct {
	ResponseText string `json:"response_text"`
}

// Report carries each part independently; one failing part never hides the other.
type Report struct {
	MatchStatus      *fixtures.MatchStatus `json:"matchStatus"`
	MatchStatusError *string               `json:"matchStatusError"`
	GPTAnalysis      History               `json:"gptAnalysis"`
}

// Answer is the reply to a free-form question.
type Answer struct {
	Message string `json:"message"`
	Entity  string `json:"entity"`
}

type Service struct {
	matches providers.MatchProvider
	ai      Completer
	logger  *slog.Logger
}

// NewService wires the match lookup and the optional chat model. A nil ai
// leaves match status working and reports the history part as unavailable.
func NewService(matches providers.MatchProvider, ai Completer, logger *slog.Logger) *Service {
	return &Service{matches: matches, ai: ai, logger: logger}
}

// Analyze fetches match status and history concurrently.
func (s *Service) Analyze(ctx context.Context, req Request) (Report, error) {
	if err := req.Validate(); err != nil {
		return Report{}, err
	}
	if s == nil || s.matches == nil {
		return Report{}, apperr.Unavailable("match analysis is not configured")
	}

	var (
		wg        sync.WaitGroup
		status    fixtures.MatchStatus
		statusErr error
		history   History
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		status, statusErr = s.matches.FetchMatch(ctx, req.MatchID)
	}()
	go func() {
		defer wg.Done()
		history = s.history(ctx, req.HomeName, req.AwayName)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{GPTAnalysis: history}
	if statusErr != nil {
		logging.Warn(s.logger, "match status lookup failed", "err", statusErr, logging.FieldMatchID, req.MatchID)
		msg := "Football Data Error: " + statusErr.Error()
		report.MatchStatusError = &msg
	} else {
		report.MatchStatus = &status
	}
	return report, nil
}

func (s *Service) history(ctx context.Context, home, away string) History {
	if s.ai == nil {
		return History{ResponseText: "AI analysis is not configured."}
	}
	user := fmt.Sprintf("Give a detailed head-to-head history of **%s** and **%s**: how often they have met, results, key players and the fiercest games between them. At least four paragraphs.", home, away)
	content, err := s.ai.Complete(ctx, fmt.Sprintf(historySystemPrompt, HistoryMaxTokens), user, HistoryMaxTokens)
	switch {
	case errors.Is(err, openrouter.ErrEmptyCompletion):
		return History{ResponseText: "No history was returned by the AI."}
	case err != nil:
		logging.Warn(s.logger, "ai history failed", "err", err, logging.FieldProvider, openrouter.ProviderName)
		return History{ResponseText: fmt.Sprintf("AI history unavailable (%s)", err.Error())}
	}
	return History{ResponseText: openrouter.ExtractResponse(content)}
}

// Ask answers a free-form football question.
func (s *Service) Ask(ctx context.Context, query string) (Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Answer{}, apperr.Input("query is required")
	}
	if s == nil || s.ai == nil {
		return Answer{}, apperr.Unavailable("AI is not configured")
	}
	content, err := s.ai.Complete(ctx, askSystemPrompt, query, AskMaxTokens)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Answer{}, ctxErr
		}
		return Answer{}, apperr.Wrap(apperr.KindUpstream, "AI request failed", err).WithDetail(providers.Detail(err))
	}
	return Answer{Message: openrouter.ExtractResponse(content), Entity: entityName(content)}, nil
}

func entityName(content string) string {
	if m := entityTag.FindStringSubmatch(content); len(m) == 2 {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	return generalEntity
}
