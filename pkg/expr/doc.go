// Package expr implements the calculator's expression grammar: a hand-rolled
// lexer and precedence-climbing parser over a closed set of operators,
// whitelisted functions and constants, followed by AST evaluation under a
// trig mode. There is no free-text rewriting step and no generic code
// evaluator behind it; anything outside the grammar is a parse error.
package expr
