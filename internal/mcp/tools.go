package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/lifewheel/internal/engine"
)

// CompleteResult reports the outcome of complete_task.
type CompleteResult struct {
	Completed bool          `json:"completed"`
	Task      *engine.Task  `json:"task,omitempty"`
	Pending   []engine.Task `json:"pending"`
}

// ScoreResult echoes the stored value after a score write.
type ScoreResult struct {
	Domain    int      `json:"domain"`
	Subdomain *int     `json:"subdomain,omitempty"`
	Score     float64  `json:"score"`
	Momentum  *float64 `json:"momentum,omitempty"`
}

var (
	noArgsSchema = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)

	weeklyScoreSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"domain":{"type":["integer","string"],"description":"Domain index or exact name"},` +
		`"score":{"type":"number","description":"Score from 0 to 10"}},` +
		`"required":["domain","score"],"additionalProperties":false}`)

	monthlyScoreSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"domain":{"type":["integer","string"],"description":"Domain index or exact name"},` +
		`"subdomain":{"type":["integer","string"],"description":"Subdomain index or exact name"},` +
		`"score":{"type":"number","description":"Score from 0 to 10"}},` +
		`"required":["domain","subdomain","score"],"additionalProperties":false}`)

	completeSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"id":{"type":"string","description":"Id of a pending task from get_today"}},` +
		`"required":["id"],"additionalProperties":false}`)

	logSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"domain":{"type":["integer","string"],"description":"Domain index or exact name"},` +
		`"subdomain":{"type":["integer","string"],"description":"Optional subdomain index or exact name"},` +
		`"difficulty":{"type":"string","enum":["micro","standard","deep"]},` +
		`"label":{"type":"string","description":"What was done"}},` +
		`"required":["domain","label"],"additionalProperties":false}`)
)

func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_today",
		Description: "Today's dashboard: average score, domains sorted by neglect, the nudge, and pending and done tasks.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetToday,
	})
	s.registerTool(toolDef{
		Name:        "get_week",
		Description: "This week's score for every domain.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetWeek,
	})
	s.registerTool(toolDef{
		Name:        "get_month",
		Description: "This month's subdomain scores for every domain.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetMonth,
	})
	s.registerTool(toolDef{
		Name:        "get_insights",
		Description: "Week-over-week deltas and the suggested focus domain.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetInsights,
	})
	s.registerTool(toolDef{
		Name:        "set_weekly_score",
		Description: "Record this week's score for a domain.",
		InputSchema: weeklyScoreSchema,
		Handler:     s.handleSetWeeklyScore,
	})
	s.registerTool(toolDef{
		Name:        "set_monthly_score",
		Description: "Record this month's score for a subdomain.",
		InputSchema: monthlyScoreSchema,
		Handler:     s.handleSetMonthlyScore,
	})
	s.registerTool(toolDef{
		Name:        "complete_task",
		Description: "Mark one of today's pending tasks done and queue a replacement.",
		InputSchema: completeSchema,
		Handler:     s.handleCompleteTask,
	})
	s.registerTool(toolDef{
		Name:        "log_task",
		Description: "Record an activity that was not on today's list.",
		InputSchema: logSchema,
		Handler:     s.handleLogTask,
	})
	s.registerTool(toolDef{
		Name:        "regenerate_tasks",
		Description: "Rebuild today's pending tasks. Done tasks are kept.",
		InputSchema: noArgsSchema,
		Handler:     s.handleRegenerate,
	})
}

func (s *Server) handleGetToday(ctx context.Context, _ json.RawMessage) (any, error) {
	s.engine.Refresh(ctx)
	return s.engine.TodayView(), nil
}

func (s *Server) handleGetWeek(ctx context.Context, _ json.RawMessage) (any, error) {
	s.engine.Refresh(ctx)
	return s.engine.WeeklyView(), nil
}

func (s *Server) handleGetMonth(ctx context.Context, _ json.RawMessage) (any, error) {
	s.engine.Refresh(ctx)
	return s.engine.MonthlyView(), nil
}

func (s *Server) handleGetInsights(ctx context.Context, _ json.RawMessage) (any, error) {
	s.engine.Refresh(ctx)
	return s.engine.InsightsView(), nil
}

func (s *Server) handleSetWeeklyScore(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Domain json.RawMessage `json:"domain"`
		Score  *float64        `json:"score"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Score == nil {
		return nil, errors.New("score is required")
	}
	s.engine.Refresh(ctx)
	d, err := s.domainArg(params.Domain)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetWeeklyScore(ctx, d, *params.Score); err != nil {
		return nil, err
	}
	m := s.engine.Momentum()
	return ScoreResult{Domain: d, Score: s.engine.WeeklyScore(d), Momentum: &m}, nil
}

func (s *Server) handleSetMonthlyScore(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Domain    json.RawMessage `json:"domain"`
		Subdomain json.RawMessage `json:"subdomain"`
		Score     *float64        `json:"score"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Score == nil {
		return nil, errors.New("score is required")
	}
	s.engine.Refresh(ctx)
	d, err := s.domainArg(params.Domain)
	if err != nil {
		return nil, err
	}
	sub, err := s.subdomainArg(d, params.Subdomain)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetMonthlySubScore(ctx, d, sub, *params.Score); err != nil {
		return nil, err
	}
	return ScoreResult{Domain: d, Subdomain: &sub, Score: s.engine.MonthlySubScore(d, sub)}, nil
}

func (s *Server) handleCompleteTask(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.ID == "" {
		return nil, errors.New("id is required")
	}
	s.engine.Refresh(ctx)
	res := CompleteResult{}
	if done, ok := s.engine.CompleteTask(ctx, params.ID); ok {
		res.Completed = true
		res.Task = &done
	}
	res.Pending = s.engine.TodayView().Pending
	return res, nil
}

func (s *Server) handleLogTask(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Domain     json.RawMessage `json:"domain"`
		Subdomain  json.RawMessage `json:"subdomain"`
		Difficulty string          `json:"difficulty"`
		Label      string          `json:"label"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(params.Label) == "" {
		return nil, errors.New("label is required")
	}
	s.engine.Refresh(ctx)
	d, err := s.domainArg(params.Domain)
	if err != nil {
		return nil, err
	}
	var sub *int
	if len(params.Subdomain) > 0 && !isJSONNull(params.Subdomain) {
		i, err := s.subdomainArg(d, params.Subdomain)
		if err != nil {
			return nil, err
		}
		sub = &i
	}
	return s.engine.LogTask(ctx, d, sub, params.Difficulty, params.Label)
}

func (s *Server) handleRegenerate(ctx context.Context, _ json.RawMessage) (any, error) {
	s.engine.RegenerateTodayTasks(ctx)
	return s.engine.TodayView().Pending, nil
}

// domainArg resolves a JSON integer index or exact domain name.
func (s *Server) domainArg(raw json.RawMessage) (int, error) {
	idx, name, err := indexOrName(raw, "domain")
	if err != nil {
		return 0, err
	}
	if name == "" {
		if idx < 0 || idx >= len(s.engine.Domains()) {
			return 0, fmt.Errorf("domain %d: %w", idx, engine.ErrUnknownDomain)
		}
		return idx, nil
	}
	if i, ok := s.engine.DomainIndex(name); ok {
		return i, nil
	}
	return 0, fmt.Errorf("domain %q: %w", name, engine.ErrUnknownDomain)
}

func (s *Server) subdomainArg(d int, raw json.RawMessage) (int, error) {
	idx, name, err := indexOrName(raw, "subdomain")
	if err != nil {
		return 0, err
	}
	if name == "" {
		if idx < 0 || idx >= len(s.engine.Domains()[d].Subdomains) {
			return 0, fmt.Errorf("subdomain %d: %w", idx, engine.ErrUnknownSubdomain)
		}
		return idx, nil
	}
	if i, ok := s.engine.SubdomainIndex(d, name); ok {
		return i, nil
	}
	return 0, fmt.Errorf("subdomain %q: %w", name, engine.ErrUnknownSubdomain)
}

// indexOrName decodes raw as either an integer or a non-empty string. An
// empty name means the integer form was used.
func indexOrName(raw json.RawMessage, field string) (int, string, error) {
	if len(raw) == 0 || isJSONNull(raw) {
		return 0, "", fmt.Errorf("%s is required", field)
	}
	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil {
		return idx, "", nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
		return 0, "", fmt.Errorf("%s must be an index or a name", field)
	}
	return 0, name, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
