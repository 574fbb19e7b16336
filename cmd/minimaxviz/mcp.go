package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/minimaxviz/pkg/runner"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes traversal sessions as MCP tools (start_session, step, snapshot,
restart, list_graphs), so agents can walk minimax one step at a time.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP on --addr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		signals := runner.NewSignalManager(cmd.Context())
		defer signals.Stop()
		return app.ServeMCP(signals.Context(), transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", "", "Address to listen on (only for SSE)")
}
