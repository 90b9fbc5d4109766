package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prgauge/prgauge/core"
	"github.com/prgauge/prgauge/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleAnalyzeChange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ChangeID = request.GetString("change", "")
	if b := request.GetString("branch", ""); b != "" {
		cfg.Branch = b
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	client := contract.NewChangeClient(cfg)
	report, err := core.ExecuteChangeAnalysis(ctx, cfg, client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRefreshBaseline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if b := request.GetString("branch", ""); b != "" {
		cfg.Branch = b
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if n := request.GetInt("history", 0); n > 0 {
		if n > contract.MaxHistoryWindow {
			return mcp.NewToolResultError(fmt.Sprintf("history cannot exceed %d (received %d)", contract.MaxHistoryWindow, n)), nil
		}
		cfg.HistoryWindow = n
	}

	client := contract.NewChangeClient(cfg)
	baseline, err := core.RefreshBaseline(ctx, cfg, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("baseline refresh failed: %v", err)), nil
	}
	core.SaveBaseline(cfg, h.mgr, baseline)

	jsonData, _ := json.MarshalIndent(baseline, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
