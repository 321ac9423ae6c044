package mcp

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrUnknownTool is returned by Invoke for a name that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolRegistry is where tools are registered and how they are invoked.
// MCPRegistry serves them over a real transport; MockRegistry keeps them in
// process for tests and the CLI self-check.
type ToolRegistry interface {
	RegisterTool(tool mcp.Tool, handler server.ToolHandlerFunc)
	Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	Tools() []mcp.Tool
}

// handlerSet is the bookkeeping shared by both registries.
type handlerSet struct {
	mu       sync.RWMutex
	tools    map[string]mcp.Tool
	handlers map[string]server.ToolHandlerFunc
}

func (h *handlerSet) add(tool mcp.Tool, handler server.ToolHandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tools == nil {
		h.tools = make(map[string]mcp.Tool)
		h.handlers = make(map[string]server.ToolHandlerFunc)
	}
	h.tools[tool.Name] = tool
	h.handlers[tool.Name] = handler
}

func (h *handlerSet) invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	h.mu.RLock()
	handler, ok := h.handlers[name]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return handler(ctx, req)
}

func (h *handlerSet) list() []mcp.Tool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]mcp.Tool, 0, len(h.tools))
	for _, t := range h.tools {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b mcp.Tool) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// MCPRegistry registers tools on an mcp-go server.
type MCPRegistry struct {
	handlerSet
	server *server.MCPServer
}

// NewMCPRegistry creates the underlying mcp-go server.
func NewMCPRegistry(name, version, instructions string) *MCPRegistry {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	return &MCPRegistry{server: s}
}

// RegisterTool adds the tool to the mcp-go server.
func (r *MCPRegistry) RegisterTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	r.add(tool, handler)
	r.server.AddTool(tool, handler)
}

// Invoke calls a registered handler directly, bypassing the transport.
func (r *MCPRegistry) Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return r.invoke(ctx, name, args)
}

// Tools lists registered tools sorted by name.
func (r *MCPRegistry) Tools() []mcp.Tool {
	return r.list()
}

// MCPServer exposes the mcp-go server for transports.
func (r *MCPRegistry) MCPServer() *server.MCPServer {
	return r.server
}

// MockRegistry keeps tools in memory. It has no transport.
type MockRegistry struct {
	handlerSet

	callsMu sync.Mutex
	calls   []string
}

// NewMockRegistry returns an empty MockRegistry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{}
}

// RegisterTool records the tool.
func (r *MockRegistry) RegisterTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	r.add(tool, handler)
}

// Invoke runs a registered handler and records the call.
func (r *MockRegistry) Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	r.callsMu.Lock()
	r.calls = append(r.calls, name)
	r.callsMu.Unlock()
	return r.invoke(ctx, name, args)
}

// Tools lists registered tools sorted by name.
func (r *MockRegistry) Tools() []mcp.Tool {
	return r.list()
}

// Calls returns the names of invoked tools in call order.
func (r *MockRegistry) Calls() []string {
	r.callsMu.Lock()
	defer r.callsMu.Unlock()
	return append([]string(nil), r.calls...)
}

// ResultText concatenates the text content of a tool result.
func ResultText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			b.WriteString(tc.Text)
		case *mcp.TextContent:
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}
