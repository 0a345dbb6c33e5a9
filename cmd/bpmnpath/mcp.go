package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/aretw0/bpmnpath/internal/cli"
	"github.com/aretw0/bpmnpath/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the path engine as an MCP Server.
This allows AI agents to call find_path and get_graph as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := cli.LoadConfig(flags)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		// Stdout carries JSON-RPC; logs must stay on stderr.
		rt, err := cli.NewRuntime(cmd.Context(), cfg, os.Stderr)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		defer rt.Close()

		srv := mcp.NewServer(rt.Engine, rt.Logger)

		switch transport {
		case "stdio":
			rt.Logger.Info("Starting bpmnpath MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				rt.Logger.Error("MCP Server execution failed", "err", err)
				rt.Close()
				os.Exit(1)
			}
		case "sse":
			if err := srv.ServeSSE(cmd.Context(), port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.Logger.Error("MCP Server execution failed", "err", err)
				rt.Close()
				os.Exit(1)
			}
			rt.Logger.Info("MCP Server stopped gracefully")
		default:
			cmd.PrintErrf("Unknown transport: %s. Supported: stdio, sse\n", transport)
			rt.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
