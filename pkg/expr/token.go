package expr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokBang
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer walks the input rune by rune. Calculator keypads emit a few unicode
// glyphs (π, τ, ×, ÷, −, √) that are folded onto their ASCII equivalents
// here so the parser only ever sees one spelling.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: start}, nil
	}

	r := l.peek()
	switch {
	case r >= '0' && r <= '9' || r == '.':
		return l.scanNumber()
	case unicode.IsLetter(r) && r < utf8.RuneSelf:
		return l.scanIdent()
	}

	l.advance()
	switch r {
	case '+':
		return token{tokPlus, "+", start}, nil
	case '-', '−':
		return token{tokMinus, "-", start}, nil
	case '*', '×':
		return token{tokStar, "*", start}, nil
	case '/', '÷':
		return token{tokSlash, "/", start}, nil
	case '%':
		return token{tokPercent, "%", start}, nil
	case '^':
		return token{tokCaret, "^", start}, nil
	case '!':
		return token{tokBang, "!", start}, nil
	case '(':
		return token{tokLParen, "(", start}, nil
	case ')':
		return token{tokRParen, ")", start}, nil
	case ',':
		return token{tokComma, ",", start}, nil
	case 'π':
		return token{tokIdent, "pi", start}, nil
	case 'τ':
		return token{tokIdent, "tau", start}, nil
	case '√':
		return token{tokIdent, "sqrt", start}, nil
	}
	return token{}, fmt.Errorf("%w: unexpected character %q at position %d", ErrSyntax, r, start)
}

// scanNumber accepts digits with an optional fraction and exponent.
// A trailing 'e' is only treated as an exponent marker when it is actually
// followed by digits; "2e" therefore fails as a malformed number rather
// than silently swallowing the Euler constant.
func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	seenDot := false
	for {
		r := l.peek()
		if r >= '0' && r <= '9' {
			l.advance()
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			l.advance()
			continue
		}
		break
	}
	if l.input[start:l.pos] == "." {
		return token{}, fmt.Errorf("%w: bare '.' at position %d", ErrSyntax, start)
	}

	// Optional exponent.
	if r := l.peek(); r == 'e' || r == 'E' {
		save := l.pos
		l.advance()
		if r := l.peek(); r == '+' || r == '-' {
			l.advance()
		}
		if r := l.peek(); r >= '0' && r <= '9' {
			for r := l.peek(); r >= '0' && r <= '9'; r = l.peek() {
				l.advance()
			}
		} else {
			// Not an exponent after all; back off so "3e" lexes as
			// number then identifier and fails in the parser.
			l.pos = save
		}
	}

	return token{tokNumber, l.input[start:l.pos], start}, nil
}

func (l *lexer) scanIdent() (token, error) {
	start := l.pos
	for {
		r := l.peek()
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			l.advance()
			continue
		}
		break
	}
	return token{tokIdent, l.input[start:l.pos], start}, nil
}
