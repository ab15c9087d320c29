/*
Package abacus is a headless scientific-calculator session engine: the
keystroke accumulator, expression evaluator, display formatter, history
ledger and memory bank of a desk calculator, packaged as a library with
CLI, HTTP and MCP surfaces on top.

It separates the session data (State) from the operations applied to it
(Calculator) and from persistence (StateStore adapters). This hexagonal
split lets the same core drive a REPL, a stateless JSON API, or an MCP
tool server.

# Key Features

  - Closed expression grammar: a dedicated lexer and precedence-climbing
    parser over numbers, + - * / % ^, factorial, parentheses, whitelisted
    functions and the constants pi, e, tau. No free-text rewriting, no
    generic evaluator.
  - Trig modes: DEG, RAD and GRAD, applied to parsed arguments at
    evaluation time.
  - Calculator semantics: continue-from-result input accumulation, a
    100-entry most-recent-first history, and M+/M−/MR memory slots with
    exact decimal accumulation.
  - Durable sessions: memory, file and redis StateStore adapters behind
    one contract.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/Anmol09876/abacus"
		"github.com/Anmol09876/abacus/pkg/domain"
	)

	func main() {
		calc := abacus.New(abacus.WithTrigMode(domain.ModeDeg))
		state := calc.NewSession("desk-1")

		calc.Press(state, "sin(30)")
		if err := calc.Calculate(state); err != nil {
			log.Fatal(err)
		}
		fmt.Println(state.Display) // 0.5
	}
*/
package abacus
