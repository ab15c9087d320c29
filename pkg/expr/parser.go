package expr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Anmol09876/abacus/pkg/domain"
)

// ErrSyntax is the sentinel wrapped by every lexing or parsing failure.
var ErrSyntax = errors.New("syntax error")

// Expr is a parsed expression, ready for evaluation under any trig mode.
type Expr struct {
	root node
	src  string
}

// Source returns the original input string.
func (e *Expr) Source() string { return e.src }

// Eval evaluates the expression. Trig-mode scaling happens here, on the
// already-parsed argument of each trig call, never by text substitution.
// Non-finite results (1/0, log(-1), ...) are returned as-is; callers that
// require finiteness check for them.
func (e *Expr) Eval(mode domain.TrigMode) (float64, error) {
	return e.root.eval(mode)
}

// Parse compiles input against the closed calculator grammar: decimal
// numbers, + - * / % ^, unary minus, postfix factorial, parentheses, the
// whitelisted functions, and the constants pi, e and tau.
func Parse(input string) (*Expr, error) {
	p := &parser{lex: lexer{input: input}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	root, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.tok.text, p.tok.pos)
	}
	return &Expr{root: root, src: input}, nil
}

// Evaluate is the one-shot convenience: parse then eval.
func Evaluate(input string, mode domain.TrigMode) (float64, error) {
	e, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return e.Eval(mode)
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.tok.kind != kind {
		return fmt.Errorf("%w: expected %s at position %d, got %q", ErrSyntax, what, p.tok.pos, p.tok.text)
	}
	return p.advance()
}

// Binary operator precedence. '^' is right-associative and binds tighter
// than unary minus, so -2^2 evaluates to -4 as on a handheld calculator.
const unaryPrec = 3

func binaryPrec(k tokenKind) int {
	switch k {
	case tokPlus, tokMinus:
		return 1
	case tokStar, tokSlash, tokPercent:
		return 2
	case tokCaret:
		return 4
	}
	return 0
}

// parseBinary implements precedence climbing.
func (p *parser) parseBinary(minPrec int) (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.tok.kind
		prec := binaryPrec(op)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		nextMin := prec + 1
		if op == tokCaret { // right-associative
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseBinary(unaryPrec)
		if err != nil {
			return nil, err
		}
		return &negNode{operand: operand}, nil
	case tokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseBinary(unaryPrec)
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokBang {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n = &factorialNode{operand: n}
	}
	return n, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q at position %d", ErrSyntax, p.tok.text, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberNode(v), nil

	case tokIdent:
		name, pos := p.tok.text, p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			return p.parseCall(name, pos)
		}
		if _, ok := constants[name]; !ok {
			return nil, fmt.Errorf("%w: unknown constant %q at position %d", ErrSyntax, name, pos)
		}
		return &constantNode{name: name}, nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.tok.text, p.tok.pos)
}

func (p *parser) parseCall(name string, pos int) (node, error) {
	fn, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown function %q at position %d", ErrSyntax, name, pos)
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	var args []node
	if p.tok.kind != tokRParen {
		for {
			arg, err := p.parseBinary(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	if len(args) != fn.arity {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, name, fn.arity, len(args))
	}
	return &callNode{name: name, args: args}, nil
}
