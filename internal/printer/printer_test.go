package printer

import (
	"testing"

	"mclisp/internal/reader"
	"mclisp/internal/value"
)

func TestPrintAtom(t *testing.T) {
	if got := Print(value.NewAtom("foo")); got != "foo" {
		t.Fatalf("got %q; want foo", got)
	}
}

func TestPrintInteger(t *testing.T) {
	if got := Print(value.NewInteger(-7)); got != "-7" {
		t.Fatalf("got %q; want -7", got)
	}
}

func TestPrintFloatAlwaysHasDecimalPoint(t *testing.T) {
	if got := Print(value.NewFloat(3)); got != "3.0" {
		t.Fatalf("got %q; want 3.0", got)
	}
	if got := Print(value.NewFloat(3.5)); got != "3.5" {
		t.Fatalf("got %q; want 3.5", got)
	}
}

func TestPrintEmptyList(t *testing.T) {
	if got := Print(value.Empty()); got != "()" {
		t.Fatalf("got %q; want ()", got)
	}
}

func TestPrintList(t *testing.T) {
	l := value.FromSlice([]value.Value{value.NewAtom("a"), value.NewAtom("b"), value.NewAtom("c")})
	if got := Print(l); got != "(a b c)" {
		t.Fatalf("got %q; want (a b c)", got)
	}
}

func TestPrintImproperList(t *testing.T) {
	p := value.NewPair(value.NewAtom("a"), value.NewAtom("b"))
	if got := Print(p); got != "(a . b)" {
		t.Fatalf("got %q; want (a . b)", got)
	}
}

func TestPrintClosure(t *testing.T) {
	c := &value.Closure{Params: []string{"x", "y"}, Body: value.NewAtom("x")}
	got := Print(c)
	if got != "(lambda (x y) x)" {
		t.Fatalf("got %q; want (lambda (x y) x)", got)
	}
}

// TestRoundTrip checks read(print(v)) == v for every value not containing a
// Primitive or Closure.
func TestRoundTrip(t *testing.T) {
	cases := []string{
		"foo",
		"42",
		"-3",
		"()",
		"(a b c)",
		"(a (b c) d)",
		"(quote a)",
	}
	for _, in := range cases {
		v, err := reader.ReadString(in)
		if err != nil {
			t.Fatalf("ReadString(%q): %v", in, err)
		}
		printed := Print(v)
		v2, err := reader.ReadString(printed)
		if err != nil {
			t.Fatalf("ReadString(print(%q)=%q): %v", in, printed, err)
		}
		if !value.DeepEqual(v, v2) {
			t.Fatalf("round trip mismatch for %q: printed %q, re-read %v, want %v", in, printed, v2, v)
		}
	}
}

// TestQuoteFixpoint checks read(print(read("'a"))) reproduces the same tree.
func TestQuoteFixpoint(t *testing.T) {
	v, err := reader.ReadString("'a")
	if err != nil {
		t.Fatal(err)
	}
	printed := Print(v)
	if printed != "(quote a)" {
		t.Fatalf("got %q; want (quote a)", printed)
	}
	v2, err := reader.ReadString(printed)
	if err != nil {
		t.Fatal(err)
	}
	if !value.DeepEqual(v, v2) {
		t.Fatalf("quote fixpoint mismatch: %v vs %v", v, v2)
	}
}
