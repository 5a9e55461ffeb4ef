// Package scanner provides a streaming tokenizer for the Lisp reader's
// grammar.
package scanner

import (
	"bufio"
	"io"
	"strings"

	"mclisp/internal/token"
)

// Scanner tokenizes Lisp input rune-by-rune, skipping whitespace between
// tokens.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	peeked *Item
	line   int // current line number, 1-based
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string // the atom's text for ATOM, empty otherwise
	Line  int    // line number where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r), line: 1}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int { return s.line }

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	if err := s.skipWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := s.reader.ReadRune()
	if err == io.EOF {
		return &Item{Token: token.EOF, Line: s.line}, nil
	}
	if err != nil {
		return nil, err
	}

	startLine := s.line
	switch r {
	case token.RuneLParen:
		return &Item{Token: token.LPAREN, Line: startLine}, nil
	case token.RuneRParen:
		return &Item{Token: token.RPAREN, Line: startLine}, nil
	case token.RuneQuote:
		return &Item{Token: token.QUOTE, Line: startLine}, nil
	}

	// Accumulate an atom: a run of non-delimiter runes.
	s.buf.Reset()
	s.buf.WriteRune(r)
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if token.IsDelimiter(r) {
			s.reader.UnreadRune()
			break
		}
		s.buf.WriteRune(r)
	}
	return &Item{Token: token.ATOM, Value: s.buf.String(), Line: startLine}, nil
}

func (s *Scanner) skipWhitespace() error {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' {
			s.line++
		}
		switch r {
		case ' ', '\t', '\n':
			continue
		}
		s.reader.UnreadRune()
		return nil
	}
}
