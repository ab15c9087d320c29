package main

import (
	"fmt"
	"os"

	"github.com/Anmol09876/abacus/internal/cli"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive calculator",
	Long: `Starts the interactive read-eval-print loop. With --session the
calculator state (mode, memory, history) survives restarts.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		mode, _ := cmd.Flags().GetString("mode")
		backend, _ := cmd.Flags().GetString("store")
		storePath, _ := cmd.Flags().GetString("store-path")

		err := cli.RunREPL(cli.REPLOptions{
			ConfigPath: configPath,
			SessionID:  sessionID,
			Fresh:      fresh,
			Mode:       mode,
			LogLevel:   logLevel,
			Backend:    backend,
			StorePath:  storePath,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringP("session", "s", "", "Session ID to resume or create")
	replCmd.Flags().Bool("fresh", false, "Discard any stored state for the session first")
	replCmd.Flags().StringP("mode", "m", "", "Startup angle mode: DEG, RAD or GRAD")
	replCmd.Flags().String("store", "", "Session backend: memory, file or redis")
	replCmd.Flags().String("store-path", "", "Base path for the file backend")
}
