package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Anmol09876/abacus/internal/cli"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and exit",
	Long: `Evaluates one expression and prints the result, e.g.:

  abacus eval "2+3*4"
  abacus eval --mode RAD "sin(pi/2)"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode, _ := cmd.Flags().GetString("mode")
		precision, _ := cmd.Flags().GetInt("precision")

		err := cli.RunEval(cli.EvalOptions{
			Expression: strings.Join(args, " "),
			Mode:       mode,
			Precision:  precision,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringP("mode", "m", "", "Angle mode: DEG, RAD or GRAD (default DEG)")
	evalCmd.Flags().IntP("precision", "p", 0, "Display precision in significant digits")
}
