// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"kombo/internal/adapters/server/common"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the combo list tools.
func NewHandler(cfg Config, combos common.ComboService) (*Handler, error) {
	if combos == nil {
		return nil, fmt.Errorf("combo service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerComboTools(mcpSrv, combos)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "kombo"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerComboTools registers the combo list/get/create/update/delete/render tools.
func registerComboTools(srv *mcpserver.MCPServer, combos common.ComboService) {
	srv.AddTool(
		mcp.NewTool(
			"kombo.list_combos",
			mcp.WithDescription("List every combo with its keyword, name, and snippet."),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			list, err := combos.ListCombos(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"combos": list})
			if err != nil {
				return nil, fmt.Errorf("encode list_combos result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"kombo.get_combo",
			mcp.WithDescription("Return one combo by its identifier."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Combo identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			combo, err := combos.GetCombo(ctx, id)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(combo)
			if err != nil {
				return nil, fmt.Errorf("encode get_combo result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"kombo.create_combo",
			mcp.WithDescription("Create one combo and persist the combo list."),
			mcp.WithString("keyword", mcp.Required(), mcp.Description("Trigger keyword, no whitespace")),
			mcp.WithString("name", mcp.Description("Display name (defaults to the keyword)")),
			mcp.WithString("snippet", mcp.Description("Snippet text, #{variables} allowed")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			keyword, err := req.RequireString("keyword")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			combo, err := combos.CreateCombo(ctx, common.CreateComboRequest{
				Keyword: keyword,
				Name:    req.GetString("name", ""),
				Snippet: req.GetString("snippet", ""),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(combo)
			if err != nil {
				return nil, fmt.Errorf("encode create_combo result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"kombo.delete_combo",
			mcp.WithDescription("Delete one combo by its identifier and persist the combo list."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Combo identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := combos.DeleteCombo(ctx, id); err != nil {
				return toolResultFromError(err), nil
			}
			return mcp.NewToolResultText("deleted"), nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"kombo.render_combo",
			mcp.WithDescription("Render the snippet of the enabled combo with the given keyword."),
			mcp.WithString("keyword", mcp.Required(), mcp.Description("Trigger keyword")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			keyword, err := req.RequireString("keyword")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rendered, err := combos.RenderCombo(ctx, keyword)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(rendered)
			if err != nil {
				return nil, fmt.Errorf("encode render_combo result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors onto MCP tool error results.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrValidation):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	default:
		return mcp.NewToolResultError("internal: " + err.Error())
	}
}
