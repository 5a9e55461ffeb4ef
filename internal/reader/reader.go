// Package reader implements the text-to-value parser, built on top of
// internal/scanner.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"mclisp/internal/scanner"
	"mclisp/internal/token"
	"mclisp/internal/value"
)

// Reader parses a stream of scanner tokens into value.Value trees.
type Reader struct {
	scan *scanner.Scanner
}

// New wraps a scanner in a Reader.
func New(scan *scanner.Scanner) *Reader {
	return &Reader{scan: scan}
}

// NewFromString creates a Reader over a string.
func NewFromString(s string) *Reader {
	return New(scanner.NewFromString(s))
}

// SyntaxError reports an unbalanced-parenthesis or premature-EOF failure
// while reading.
type SyntaxError struct {
	Msg  string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// Read parses and returns a single value from the stream. At end of input it
// returns a SyntaxError, so callers reading several forms check Done before
// each Read.
func (r *Reader) Read() (value.Value, error) {
	item, err := r.scan.Next()
	if err != nil {
		return nil, err
	}
	return r.readFrom(item)
}

// Done reports whether the underlying stream is exhausted (no more forms).
func (r *Reader) Done() (bool, error) {
	item, err := r.scan.Peek()
	if err != nil {
		return false, err
	}
	return item.Token == token.EOF, nil
}

func (r *Reader) readFrom(item *scanner.Item) (value.Value, error) {
	switch item.Token {
	case token.EOF:
		return nil, &SyntaxError{Msg: "unexpected end of input", Line: item.Line}

	case token.RPAREN:
		return nil, &SyntaxError{Msg: "unexpected ')'", Line: item.Line}

	case token.QUOTE:
		inner, err := r.Read()
		if err != nil {
			return nil, err
		}
		return value.NewPair(value.NewAtom("quote"), value.NewPair(inner, value.Empty())), nil

	case token.LPAREN:
		return r.readList(item.Line)

	case token.ATOM:
		return atomValue(item.Value), nil
	}
	return nil, &SyntaxError{Msg: "unrecognized token", Line: item.Line}
}

// readList reads elements until a matching RPAREN, building a proper-list
// chain of Pairs. An immediately closed () is the canonical empty list.
func (r *Reader) readList(openLine int) (value.Value, error) {
	peek, err := r.scan.Peek()
	if err != nil {
		return nil, err
	}
	if peek.Token == token.RPAREN {
		r.scan.Next()
		return value.Empty(), nil
	}
	if peek.Token == token.EOF {
		return nil, &SyntaxError{Msg: "unexpected end of input inside list", Line: openLine}
	}

	head, err := r.Read()
	if err != nil {
		return nil, err
	}
	tail, err := r.readList(openLine)
	if err != nil {
		return nil, err
	}
	return value.NewPair(head, tail), nil
}

// atomValue classifies an atom's text as Integer, Float, or a plain Atom.
func atomValue(text string) value.Value {
	if i, err := strconv.ParseInt(text, 10, 32); err == nil {
		return value.NewInteger(int32(i))
	}
	if strings.ContainsAny(text, ".eE") && text != "." {
		if f, err := strconv.ParseFloat(text, 32); err == nil {
			return value.NewFloat(float32(f))
		}
	}
	return value.NewAtom(text)
}

// Balance reports whether s has balanced, non-negative parenthesis nesting.
// A negative (extra close-paren) balance is reported distinctly so callers
// can surface it as a SyntaxError rather than waiting for more input.
func Balance(s string) (depth int, extraClose bool) {
	for _, r := range s {
		switch r {
		case token.RuneLParen:
			depth++
		case token.RuneRParen:
			depth--
			if depth < 0 {
				return depth, true
			}
		}
	}
	return depth, false
}

// ReadString reads a single top-level form from s, validating parenthesis
// balance first.
func ReadString(s string) (value.Value, error) {
	if depth, extra := Balance(s); extra {
		return nil, &SyntaxError{Msg: "unexpected ')'"}
	} else if depth != 0 {
		return nil, &SyntaxError{Msg: "unbalanced parentheses"}
	}
	return New(scanner.NewFromString(s)).Read()
}
