package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abacus",
	Short: "Abacus is a scientific calculator with persistent sessions",
	Long: `Abacus evaluates scientific expressions with DEG/RAD/GRAD angle modes,
letter-named memory slots and a calculation history, either interactively,
one-shot, or served over HTTP and MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default .abacus/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}
