// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/corvidsec/reposcan/internal/mcpserver"
	"github.com/corvidsec/reposcan/internal/metrics"
)

var serveMetricsAddr string

// serveCmd runs reposcan as a long-lived MCP server over stdio, optionally
// alongside a Prometheus metrics endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run reposcan as an MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing reposcan's tools:
  - scan:          Scan a repository's commit history for leaked secrets
  - check_pattern: Validate a content-rule pattern against sample content

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to call reposcan directly. Use
--metrics-addr to additionally expose a Prometheus /metrics endpoint for
scan-count and duration observability while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "address to serve Prometheus /metrics on (disabled if empty)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveMetricsAddr != "" {
		go metrics.Serve(cmd.Context(), serveMetricsAddr, slog.Default())
	}
	return mcpserver.Run(cmd.Context(), Version, &mcp.StdioTransport{})
}
