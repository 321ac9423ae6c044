// Package mcp exposes the style guide operations as Model Context Protocol
// tools using mcp-go.
//
// # Tools
//
//   - analyze_content: issues, suggestions and statistics for a text
//   - get_style_guidelines: the static guideline tree for a category
//   - suggest_improvements: concrete fixes, optionally for one category
//   - review_document: scores, prioritized recommendations, rewrite
//     examples, structure and audience fit
//   - search_style_guide: live search of the online style guide
//   - get_official_guidance: official pages for an issue type
//   - check_terminology: verdicts for a list of terms
//
// Every result is a JSON object with a "formatted" markdown rendering and
// the structured "data". Failed operations set IsError and keep the same
// body, so clients can read data.error.
//
// # Registries
//
// Tools are registered through ToolRegistry. MCPRegistry backs them with an
// mcp-go server that can be served over stdio or streamable HTTP;
// MockRegistry keeps them in process. The choice is made by the caller when
// the Server is built:
//
//	reg := mcp.NewMCPRegistry("microsoft-style-guide", version, mcp.Instructions)
//	srv := mcp.NewServer(service, reg, logger, mcp.WithMetrics(m))
//	err := srv.ServeStdio(ctx, os.Stdin, os.Stdout)
//
// Over stdio, stdout carries JSON-RPC only; all logging goes to stderr or
// the debug log file.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
