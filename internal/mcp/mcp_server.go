// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prgauge/prgauge/internal/contract"
)

// NewMCPServer initializes and configures the prgauge MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"PR Gauge Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_change ---
	s.AddTool(mcp.NewTool("analyze_change",
		mcp.WithDescription("Score the structural risk of a pull request or commit range and suggest review actions."),
		mcp.WithString("change", mcp.Description("Change to analyze: a commit SHA, a base...head range, or a PR number on the github provider."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Target branch whose baseline the change is judged against. Defaults to the configured branch.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
	), h.handleAnalyzeChange)

	// --- 2. Tool: refresh_baseline ---
	s.AddTool(mcp.NewTool("refresh_baseline",
		mcp.WithDescription("Recompute the branch baseline (median score and hotspot files) from recently merged changes."),
		mcp.WithString("branch", mcp.Description("Branch to refresh. Defaults to the configured branch.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("history", mcp.Description("Number of recently merged changes to aggregate.")),
	), h.handleRefreshBaseline)

	return s
}

// StartMCPServer starts the prgauge MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
