package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tse155/ytblog/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run minimal MCP server for ytblog",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytblog functionality as tools.

The MCP server provides two tools:
- generate_article: Turn a YouTube video into a written article
- get_transcript: Fetch the transcript of a YouTube video

This allows AI assistants to use ytblog capabilities through the MCP protocol.

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  ytblog mcp

  # Run MCP server with HTTP transport on port 8080
  ytblog mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so keep stderr quiet
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		log := internal.NewLogger(false, false)
		defer func() { _ = log.Sync() }()

		app, err := internal.NewApp(cmd.Context(), config, log)
		if err != nil {
			return err
		}
		defer app.Close()

		mcpServer := internal.NewMCPServer(app)

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport")
	rootCmd.AddCommand(mcpCmd)
}
