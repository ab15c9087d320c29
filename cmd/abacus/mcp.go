package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/internal/cli"
	"github.com/Anmol09876/abacus/internal/config"
	mcpadapter "github.com/Anmol09876/abacus/pkg/adapters/mcp"
	"github.com/Anmol09876/abacus/pkg/session"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the calculator as an MCP server so AI agents can evaluate
expressions and drive sessions as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		if logLevel == "" {
			logLevel = "info"
		}
		logger := cli.CreateLogger(logLevel)

		calc := abacus.New(
			abacus.WithLogger(logger),
			abacus.WithTrigMode(cfg.TrigMode()),
			abacus.WithPrecision(cfg.Precision),
			abacus.WithHistoryLimit(cfg.HistoryLimit),
			abacus.WithStrictRecall(cfg.StrictRecall),
		)

		store, closeStore, err := cli.NewStore(cfg)
		if err != nil {
			log.Fatalf("Error initializing store: %v", err)
		}
		defer func() { _ = closeStore() }()

		sessions := session.NewManager(store,
			session.WithLogger(logger),
			session.WithDefaultMode(cfg.TrigMode()),
		)
		srv := mcpadapter.NewServer(calc, sessions, mcpadapter.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting Abacus MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting Abacus MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					logger.Error("MCP Server execution failed", "err", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
