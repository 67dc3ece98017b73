package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run
divergence queries against a database.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  otuscan mcp serve --db ~/.otuscan/db

  # HTTP mode (for MCP Inspector, remote access)
  otuscan mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "otuscan": {
        "command": "/path/to/otuscan",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("db", "", "database directory or OTU table (default from settings)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	dbFlag, err := cmd.Flags().GetString("db")
	if err != nil {
		return fmt.Errorf("getting db flag: %w", err)
	}

	database, closeFn, err := openDatabase(cmd.Context(), resolveDatabasePath(dbFlag), OpenExisting)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck // best-effort close on shutdown

	server, err := mcp.NewServer(&mcp.Ports{
		Query:    queryService,
		Database: database,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
