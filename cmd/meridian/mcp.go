package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/meridian-diagrams/meridian/orchestrator"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve render_diagram and detect_diagram as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveMCP()
		},
	}
}

func serveMCP() error {
	s := server.NewMCPServer(
		"meridian",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	renderTool := mcp.NewTool(
		"render_diagram",
		mcp.WithDescription("Render Mermaid-subset diagram source (flowchart, classDiagram, sequenceDiagram, stateDiagram-v2, or gitGraph) into box-drawing text art."),
		mcp.WithString("source", mcp.Required(), mcp.Description("diagram source text")),
	)
	s.AddTool(renderTool, func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := correlationID()
		source := mcp.ParseString(req, "source", "")
		if source == "" {
			return mcp.NewToolResultError("source is required"), nil
		}
		out, err := orchestrator.Render(source)
		if err != nil {
			return mcp.NewToolResultErrorf("[%s] render failed: %v", id, err), nil
		}
		return mcp.NewToolResultText(out), nil
	})

	detectTool := mcp.NewTool(
		"detect_diagram",
		mcp.WithDescription("Report which diagram kind Mermaid-subset source would be rendered as, and at what confidence."),
		mcp.WithString("source", mcp.Required(), mcp.Description("diagram source text")),
	)
	s.AddTool(detectTool, func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := correlationID()
		source := mcp.ParseString(req, "source", "")
		if source == "" {
			return mcp.NewToolResultError("source is required"), nil
		}
		name, score, err := orchestrator.Default().Detect(source)
		if err != nil {
			return mcp.NewToolResultErrorf("[%s] detect failed: %v", id, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (confidence %.2f)", name, score)), nil
	})

	return server.ServeStdio(s)
}
