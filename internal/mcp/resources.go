package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/c25k/internal/planner"
	"github.com/claude/c25k/internal/program"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) programResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, program.Weeks())
}

func (h *handlers) exportFormatsResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, planner.DefaultFormats())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
