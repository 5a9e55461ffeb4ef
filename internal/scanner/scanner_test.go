package scanner

import (
	"testing"

	"mclisp/internal/token"
)

func tokens(t *testing.T, input string) []token.Token {
	t.Helper()
	s := NewFromString(input)
	var got []token.Token
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, item.Token)
		if item.Token == token.EOF {
			return got
		}
	}
}

func TestBasicTokens(t *testing.T) {
	got := tokens(t, "(car '(a b c))")
	want := []token.Token{
		token.LPAREN, token.ATOM, token.QUOTE, token.LPAREN,
		token.ATOM, token.ATOM, token.ATOM, token.RPAREN, token.RPAREN, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d; want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestAtomValue(t *testing.T) {
	s := NewFromString("hello")
	item, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if item.Token != token.ATOM || item.Value != "hello" {
		t.Fatalf("got %+v; want ATOM hello", item)
	}
}

func TestWhitespaceSkipped(t *testing.T) {
	s := NewFromString("  a \n\t b  ")
	first, _ := s.Next()
	second, _ := s.Next()
	third, _ := s.Next()
	if first.Value != "a" || second.Value != "b" {
		t.Fatalf("got %q, %q; want a, b", first.Value, second.Value)
	}
	if third.Token != token.EOF {
		t.Fatalf("expected EOF, got %v", third.Token)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := NewFromString("a b")
	peeked, _ := s.Peek()
	next, _ := s.Next()
	if peeked.Value != next.Value {
		t.Fatalf("Peek/Next mismatch: %q vs %q", peeked.Value, next.Value)
	}
	second, _ := s.Next()
	if second.Value != "b" {
		t.Fatalf("expected b after consuming peeked item, got %q", second.Value)
	}
}

func TestEmptyListIsTwoTokens(t *testing.T) {
	s := NewFromString("()")
	first, _ := s.Next()
	second, _ := s.Next()
	if first.Token != token.LPAREN || second.Token != token.RPAREN {
		t.Fatalf("got %v, %v; want LPAREN, RPAREN", first.Token, second.Token)
	}
}

func TestLineTracking(t *testing.T) {
	s := NewFromString("a\nb\nc")
	first, _ := s.Next()
	second, _ := s.Next()
	third, _ := s.Next()
	if first.Line != 1 || second.Line != 2 || third.Line != 3 {
		t.Fatalf("lines = %d,%d,%d; want 1,2,3", first.Line, second.Line, third.Line)
	}
}
