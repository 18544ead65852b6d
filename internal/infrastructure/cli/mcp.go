package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	inframcp "github.com/mkessler/quickcap/internal/infrastructure/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the quickcap MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}

		server := inframcp.NewServer(inframcp.Deps{
			Analyze:    services.Analyze,
			Captures:   services.Captures,
			Categories: services.Categories,
			Settings:   services.Settings,
			Tracker:    services.Tracker,
		})

		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			return server.ServeStdio(cmd.Context())
		case "http":
			return server.ServeHTTP(cmd.Context(), mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8714", "Address for the http transport")
	RootCmd.AddCommand(mcpCmd)
}
