package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/guidelines"
	"styleguide/internal/recommend"
	"styleguide/internal/report"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolAnalyzeContent      = "analyze_content"
	ToolGetStyleGuidelines  = "get_style_guidelines"
	ToolSuggestImprovements = "suggest_improvements"
	ToolReviewDocument      = "review_document"
	ToolSearchStyleGuide    = "search_style_guide"
	ToolGetOfficialGuidance = "get_official_guidance"
	ToolCheckTerminology    = "check_terminology"
)

// payload is the JSON body of every tool result: the markdown rendering
// for humans and the structured result for programs.
type payload struct {
	Formatted string `json:"formatted"`
	Data      any    `json:"data"`
}

func analysisTypeNames() []string {
	out := make([]string, len(analyzer.AnalysisTypes))
	for i, t := range analyzer.AnalysisTypes {
		out[i] = string(t)
	}
	return out
}

func (s *Server) registerTools() {
	s.register(mcp.NewTool(ToolAnalyzeContent,
		mcp.WithDescription("Analyze text against the Microsoft Writing Style Guide: voice and tone, grammar, terminology and inclusive language"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze")),
		mcp.WithString("analysis_type",
			mcp.Description("Which checks to run"),
			mcp.Enum(analysisTypeNames()...),
			mcp.DefaultString(string(analyzer.AnalysisComprehensive)),
		),
	), s.handleAnalyzeContent)

	s.register(mcp.NewTool(ToolGetStyleGuidelines,
		mcp.WithDescription("Get Microsoft Writing Style Guide guidelines for a category"),
		mcp.WithString("category",
			mcp.Description("Guideline category"),
			mcp.Enum(guidelines.Categories...),
			mcp.DefaultString(guidelines.CategoryAll),
		),
	), s.handleGetStyleGuidelines)

	s.register(mcp.NewTool(ToolSuggestImprovements,
		mcp.WithDescription("Suggest concrete improvements to text based on the Microsoft Writing Style Guide"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to improve")),
		mcp.WithString("focus_area",
			mcp.Description("Issue category to focus on, or all"),
			mcp.DefaultString(recommend.FocusAll),
		),
	), s.handleSuggestImprovements)

	s.register(mcp.NewTool(ToolReviewDocument,
		mcp.WithDescription("Review a whole document: quality scores, prioritized recommendations, rewrite examples, structure and audience fit"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Document text")),
		mcp.WithString("document_type", mcp.Description("For example general, tutorial, guide, reference"), mcp.DefaultString("general")),
		mcp.WithString("target_audience", mcp.Description("For example general, beginner, developer"), mcp.DefaultString("general")),
		mcp.WithString("review_focus", mcp.Description("comprehensive, or one of voice_tone, clarity, accessibility, compliance"), mcp.DefaultString("comprehensive")),
	), s.handleReviewDocument)

	s.register(mcp.NewTool(ToolSearchStyleGuide,
		mcp.WithDescription("Search the live Microsoft Writing Style Guide"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search terms")),
	), s.handleSearchStyleGuide)

	s.register(mcp.NewTool(ToolGetOfficialGuidance,
		mcp.WithDescription("Fetch official Microsoft Writing Style Guide pages for an issue type"),
		mcp.WithString("issue_type", mcp.Required(), mcp.Description("For example voice, bias, grammar, terminology")),
		mcp.WithString("specific_term", mcp.Description("Optional term to narrow the lookup")),
	), s.handleGetOfficialGuidance)

	s.register(mcp.NewTool(ToolCheckTerminology,
		mcp.WithDescription("Check terms against the Microsoft terminology list"),
		mcp.WithArray("terms",
			mcp.Required(),
			mcp.Description("Terms to check"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleCheckTerminology)
}

// register wraps a handler with logging and metrics before adding it.
func (s *Server) register(tool mcp.Tool, handler server.ToolHandlerFunc) {
	name := tool.Name
	logger := s.logger.With("tool", name)
	s.registry.RegisterTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		logger.LogToolCall(name, req.GetArguments())

		res, err := handler(ctx, req)

		failure := err
		if failure == nil && res != nil && res.IsError {
			failure = fmt.Errorf("%s returned an error result", name)
		}
		s.metrics.ObserveTool(name, start, failure)
		logger.LogPerformance("tool call", start)
		return res, err
	})
}

// respond encodes formatted and data as the tool result. failed marks the
// result as a tool error while keeping the structured body.
func respond(formatted string, data any, failed bool) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(payload{Formatted: formatted, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	if failed {
		return mcp.NewToolResultError(string(body)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) handleAnalyzeContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.service.Analyze(ctx, req.GetString("text", ""), req.GetString("analysis_type", ""))
	if !res.Failed() {
		counts := make(map[string]int)
		for _, issue := range res.Issues {
			counts[string(issue.Category)]++
		}
		s.metrics.ObserveIssues(counts)
	}
	return respond(report.Analysis(res), res, res.Failed())
}

func (s *Server) handleGetStyleGuidelines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.service.Guidelines(req.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return respond(report.Guidelines(g), g, false)
}

func (s *Server) handleSuggestImprovements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imp := s.service.SuggestImprovements(ctx, req.GetString("text", ""), req.GetString("focus_area", ""))
	return respond(report.Improvements(imp), imp, imp.Error != "")
}

func (s *Server) handleReviewDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep := s.service.Review(ctx,
		req.GetString("text", ""),
		req.GetString("document_type", ""),
		req.GetString("target_audience", ""),
		req.GetString("review_focus", ""),
	)
	return respond(report.Review(rep), rep, rep.Error != "")
}

func (s *Server) handleSearchStyleGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sr := s.service.Search(ctx, req.GetString("query", ""))
	// An unreachable site still yields a usable search URL, so only a blank
	// query is a failure.
	return respond(report.Search(sr), sr, sr.Error == enrichment.ErrEmptyQuery.Error())
}

func (s *Server) handleGetOfficialGuidance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gr := s.service.Guidance(ctx, req.GetString("issue_type", ""), req.GetString("specific_term", ""))
	return respond(report.Guidance(gr), gr, false)
}

func (s *Server) handleCheckTerminology(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	terms := stringList(req.GetArguments()["terms"])
	if len(terms) == 0 {
		return mcp.NewToolResultError("no terms provided"), nil
	}
	checks := s.service.CheckTerms(terms)
	return respond(report.TermChecks(checks), checks, false)
}

// stringList accepts a JSON array of strings or a comma-separated string.
func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		out = append(out, t...)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		out = strings.Split(t, ",")
	}
	kept := out[:0]
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return kept
}
