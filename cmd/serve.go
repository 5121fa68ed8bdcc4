package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/keggview/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing heatmap colours, the pathway list and KEGG link building to AI agents.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol, so no progress bar.
		sess, err := loadSession(context.Background(), cfg, true)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "keggview MCP server started on stdio (pathways=%d, scores=%d)\n",
			sess.Catalog().Len(), sess.Index().Len())

		return mcpserver.NewServer(sess).Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
