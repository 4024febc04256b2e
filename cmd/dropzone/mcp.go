package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/dropzone"
	"github.com/aretw0/dropzone/pkg/adapters/mcp"
	"github.com/aretw0/dropzone/pkg/observability"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes builder sessions and the component catalog as MCP tools, so agents
can drag components, move the drop indicator and commit drops.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")

		mgr, closeStore, err := newManager(cfg, observability.LoggingHooks(logger))
		if err != nil {
			return err
		}
		defer closeStore()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(mgr, cat, dropzone.Version, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("Starting Dropzone MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = "http://localhost" + cfg.Listen
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, cfg.Listen, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("listen", "", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL advertised to SSE clients")
}
