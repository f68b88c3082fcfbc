package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for marquee. The server run is one\nsession: one catalog load, one status profile, one metadata cache.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			server, err := mcp.NewServer(ctx, profileFlag, version)
			if err != nil {
				return err
			}

			return server.Run(ctx)
		},
	}

	return cmd
}
