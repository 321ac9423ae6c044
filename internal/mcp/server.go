package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"styleguide/internal/logging"
	"styleguide/internal/metrics"
	"styleguide/internal/styleguide"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrNoTransport is returned when serving from a registry without one.
var ErrNoTransport = errors.New("registry has no transport")

// Instructions is sent to clients during initialization.
const Instructions = "Checks prose against the Microsoft Writing Style Guide. " +
	"Use analyze_content for a quick check, suggest_improvements for concrete fixes, " +
	"review_document for a full report, and get_style_guidelines or check_terminology for reference."

// DefaultEndpoint is where the streamable HTTP transport is mounted.
const DefaultEndpoint = "/mcp"

// Server exposes the style guide operations as MCP tools.
type Server struct {
	service  *styleguide.Service
	registry ToolRegistry
	logger   *logging.AppLogger
	metrics  *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records tool calls and issue counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer registers every tool on registry.
func NewServer(svc *styleguide.Service, registry ToolRegistry, logger *logging.AppLogger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.GetDefault()
	}
	s := &Server{
		service:  svc,
		registry: registry,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	logger.Debug("MCP tools registered", "count", len(registry.Tools()))
	return s
}

// Registry returns the registry the tools live in.
func (s *Server) Registry() ToolRegistry {
	return s.registry
}

// Invoke calls a tool in process.
func (s *Server) Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return s.registry.Invoke(ctx, name, args)
}

func (s *Server) mcpServer() (*server.MCPServer, error) {
	reg, ok := s.registry.(*MCPRegistry)
	if !ok {
		return nil, ErrNoTransport
	}
	return reg.MCPServer(), nil
}

// ServeStdio speaks JSON-RPC over in and out until ctx is cancelled or in
// reaches EOF. Logs never go to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	ms, err := s.mcpServer()
	if err != nil {
		return err
	}
	s.logger.Info("Starting MCP server", "transport", "stdio")

	stdio := server.NewStdioServer(ms)
	stdio.SetErrorLogger(s.logger.StandardLog())
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// ServeStreamableHTTP serves the streamable HTTP transport at DefaultEndpoint on addr
// until ctx is cancelled.
func (s *Server) ServeStreamableHTTP(ctx context.Context, addr string) error {
	ms, err := s.mcpServer()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(DefaultEndpoint, server.NewStreamableHTTPServer(ms))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting MCP server", "transport", "http", "addr", addr, "endpoint", DefaultEndpoint)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("MCP server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Stopping MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// CheckResult is the outcome of one tool in SelfCheck.
type CheckResult struct {
	Tool   string
	OK     bool
	Detail string
}

// SelfCheck invokes every offline tool on sample input.
func (s *Server) SelfCheck(ctx context.Context) []CheckResult {
	cases := []struct {
		tool string
		args map[string]any
	}{
		{ToolAnalyzeContent, map[string]any{"text": styleguide.SampleText}},
		{ToolGetStyleGuidelines, map[string]any{"category": "all"}},
		{ToolSuggestImprovements, map[string]any{"text": styleguide.SampleText}},
		{ToolReviewDocument, map[string]any{"text": styleguide.SampleText}},
		{ToolCheckTerminology, map[string]any{"terms": []any{"email", "login"}}},
	}

	out := make([]CheckResult, 0, len(cases))
	for _, c := range cases {
		res, err := s.Invoke(ctx, c.tool, c.args)
		cr := CheckResult{Tool: c.tool, OK: err == nil && res != nil && !res.IsError}
		switch {
		case err != nil:
			cr.Detail = err.Error()
		case res != nil && res.IsError:
			cr.Detail = ResultText(res)
		default:
			cr.Detail = fmt.Sprintf("%d bytes", len(ResultText(res)))
		}
		out = append(out, cr)
	}
	return out
}
