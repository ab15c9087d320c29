package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anmol09876/abacus/internal/cli"
	"github.com/Anmol09876/abacus/internal/config"
	httpadapter "github.com/Anmol09876/abacus/pkg/adapters/http"
	"github.com/Anmol09876/abacus/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the calculator in server mode, exposing sessions over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		port, _ := cmd.Flags().GetString("port")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger := cli.CreateLogger(cfg.LogLevel)

		store, closeStore, err := cli.NewStore(cfg)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = closeStore() }()

		sessions := session.NewManager(store,
			session.WithLogger(logger),
			session.WithDefaultMode(cfg.TrigMode()),
		)
		server := httpadapter.NewServer(sessions, httpadapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Abacus Server on %s\n", srv.Addr)
			fmt.Printf("Session backend: %s\n", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Abacus Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
