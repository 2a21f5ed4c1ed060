// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corvidsec/reposcan/internal/config"
	"github.com/corvidsec/reposcan/internal/output"
	"github.com/corvidsec/reposcan/internal/scanner"
)

// ScanInput is the input schema for the reposcan scan MCP tool.
type ScanInput struct {
	Path     string `json:"path" jsonschema:"Repository path to scan (defaults to current directory)"`
	Branches string `json:"branches,omitempty" jsonschema:"Shell glob selecting which branches to walk (default: *)"`
	Since    string `json:"since,omitempty" jsonschema:"Only report commits at or after this time (RFC 3339 timestamp or Go duration, e.g. 720h)"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json, sarif, or text (default: json)"`
}

// CheckPatternInput is the input schema for the reposcan check_pattern MCP tool.
type CheckPatternInput struct {
	Pattern string `json:"pattern" jsonschema:"Content-rule pattern to validate; must compile and have exactly one capturing group"`
	Content string `json:"content" jsonschema:"Sample content to test the pattern against"`
}

func boolPtr(b bool) *bool { return &b }

// registerTools adds all reposcan tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "Scan a local Git repository's commit history for leaked secrets using the rules configured in .reposcan.yaml/.reposcan.toml. Returns structured matches.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_pattern",
		Description: "Validate a content-rule pattern and show every substring it captures from sample content, without running a scan.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCheckPattern)
}

func handleScan(ctx context.Context, _ *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, any, error) {
	absPath, err := ResolvePath(input.Path)
	if err != nil {
		return nil, nil, err
	}

	format := input.Format
	if format == "" {
		format = "json"
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}

	fileCfg, err := config.Load(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return nil, nil, err
	}

	branches := input.Branches
	if branches == "" {
		branches = fileCfg.Branches
	}
	since := input.Since
	if since == "" {
		since = fileCfg.Since
	}
	fromUnix, err := config.ParseSince(since)
	if err != nil {
		return nil, nil, err
	}

	s := scanner.New(fileCfg.Workers)
	if err := fileCfg.Apply(s.RulesEngine); err != nil {
		return nil, nil, err
	}

	results, err := s.Scan(ctx, absPath, branches, fromUnix)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(results, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

func handleCheckPattern(_ context.Context, _ *mcp.CallToolRequest, input CheckPatternInput) (*mcp.CallToolResult, any, error) {
	s := scanner.New(1)
	captures, err := s.CheckPattern(input.Content, input.Pattern)
	if err != nil {
		return nil, nil, err
	}

	text := "no matches"
	if len(captures) > 0 {
		var buf bytes.Buffer
		for _, c := range captures {
			fmt.Fprintln(&buf, c) //nolint:errcheck // bytes.Buffer never errors
		}
		text = buf.String()
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}
