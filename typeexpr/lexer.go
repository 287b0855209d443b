package typeexpr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokLSquare
	tokRSquare
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokIdent:
		return "name"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokFloat:
		return "float"
	case tokLSquare:
		return `"["`
	case tokRSquare:
		return `"]"`
	case tokComma:
		return `","`
	}
	return "token"
}

type token struct {
	kind    tokenKind
	text    string // raw text
	literal any    // parsed value for string and number tokens
	offset  int    // byte offset of the token start
}

// SyntaxError locates a problem in a type expression.
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("type expression %q: offset %d: %s", e.Expr, e.Offset, e.Msg)
}

type lexer struct {
	src string
	cur int
}

// scan tokenizes the whole expression.
func scan(src string) ([]token, error) {
	l := &lexer{src: src}
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) err(at int, format string, args ...any) error {
	return &SyntaxError{Expr: l.src, Offset: at, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) next() (token, error) {
	for l.cur < len(l.src) && isSpace(l.src[l.cur]) {
		l.cur++
	}
	start := l.cur
	if l.cur >= len(l.src) {
		return token{kind: tokEOF, offset: start}, nil
	}
	ch := l.src[l.cur]
	switch {
	case ch == '[':
		l.cur++
		return token{kind: tokLSquare, text: "[", offset: start}, nil
	case ch == ']':
		l.cur++
		return token{kind: tokRSquare, text: "]", offset: start}, nil
	case ch == ',':
		l.cur++
		return token{kind: tokComma, text: ",", offset: start}, nil
	case ch == '"' || ch == '\'':
		return l.scanString()
	case isDigit(ch) || ch == '-' || ch == '+':
		return l.scanNumber()
	case isAlpha(ch):
		for l.cur < len(l.src) && (isAlphaNum(l.src[l.cur]) || l.src[l.cur] == '.') {
			l.cur++
		}
		return token{kind: tokIdent, text: l.src[start:l.cur], offset: start}, nil
	}
	return token{}, l.err(start, "unexpected character %q", ch)
}

// scanString reads a single- or double-quoted string with backslash escapes.
func (l *lexer) scanString() (token, error) {
	start := l.cur
	del := l.src[l.cur]
	l.cur++
	var b strings.Builder
	for l.cur < len(l.src) {
		ch := l.src[l.cur]
		l.cur++
		switch ch {
		case del:
			return token{kind: tokString, text: l.src[start:l.cur], literal: b.String(), offset: start}, nil
		case '\\':
			if l.cur >= len(l.src) {
				return token{}, l.err(start, "unfinished escape sequence")
			}
			esc := l.src[l.cur]
			l.cur++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				return token{}, l.err(l.cur-2, "unknown escape \\%c", esc)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return token{}, l.err(start, "unterminated string")
}

// scanNumber reads an optionally signed integer or float (1, -2, 1.5, 1e3).
func (l *lexer) scanNumber() (token, error) {
	start := l.cur
	if c := l.src[l.cur]; c == '-' || c == '+' {
		l.cur++
	}
	digits := l.cur
	for l.cur < len(l.src) && isDigit(l.src[l.cur]) {
		l.cur++
	}
	if l.cur == digits {
		return token{}, l.err(start, "malformed number")
	}
	isFloat := false
	if l.cur < len(l.src) && l.src[l.cur] == '.' {
		isFloat = true
		l.cur++
		for l.cur < len(l.src) && isDigit(l.src[l.cur]) {
			l.cur++
		}
	}
	if l.cur < len(l.src) && (l.src[l.cur] == 'e' || l.src[l.cur] == 'E') {
		isFloat = true
		l.cur++
		if l.cur < len(l.src) && (l.src[l.cur] == '+' || l.src[l.cur] == '-') {
			l.cur++
		}
		exp := l.cur
		for l.cur < len(l.src) && isDigit(l.src[l.cur]) {
			l.cur++
		}
		if l.cur == exp {
			return token{}, l.err(start, "malformed exponent")
		}
	}
	text := l.src[start:l.cur]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, l.err(start, "invalid float literal %s", text)
		}
		return token{kind: tokFloat, text: text, literal: f, offset: start}, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return token{}, l.err(start, "invalid integer literal %s", text)
	}
	return token{kind: tokInt, text: text, literal: n, offset: start}, nil
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
