package cli

import (
	"fmt"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/pkg/domain"
)

// EvalOptions configures the one-shot eval command.
type EvalOptions struct {
	Expression string
	Mode       string
	Precision  int
}

// RunEval evaluates a single expression and prints the result.
func RunEval(opts EvalOptions) error {
	mode := domain.ModeDeg
	if opts.Mode != "" {
		var err error
		mode, err = domain.ParseTrigMode(opts.Mode)
		if err != nil {
			return err
		}
	}

	calcOpts := []abacus.Option{abacus.WithTrigMode(mode)}
	if opts.Precision > 0 {
		calcOpts = append(calcOpts, abacus.WithPrecision(opts.Precision))
	}
	calc := abacus.New(calcOpts...)

	result, err := calc.Evaluate(opts.Expression, mode)
	if err != nil {
		return fmt.Errorf("invalid expression: %s", opts.Expression)
	}

	fmt.Println(result)
	return nil
}
