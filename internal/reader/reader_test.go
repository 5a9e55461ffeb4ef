package reader

import (
	"testing"

	"mclisp/internal/value"
)

func read(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := ReadString(s)
	if err != nil {
		t.Fatalf("ReadString(%q): %v", s, err)
	}
	return v
}

func TestReadAtom(t *testing.T) {
	v := read(t, "hello")
	a, ok := v.(*value.Atom)
	if !ok || a.Name != "hello" {
		t.Fatalf("got %v; want atom hello", v)
	}
}

func TestReadInteger(t *testing.T) {
	v := read(t, "42")
	i, ok := v.(*value.Integer)
	if !ok || i.Val != 42 {
		t.Fatalf("got %v; want integer 42", v)
	}
}

func TestReadFloat(t *testing.T) {
	v := read(t, "3.5")
	f, ok := v.(*value.Float)
	if !ok || f.Val != 3.5 {
		t.Fatalf("got %v; want float 3.5", v)
	}
}

func TestReadEmptyList(t *testing.T) {
	v := read(t, "()")
	if !value.IsEmptyList(v) {
		t.Fatalf("got %v; want empty list", v)
	}
}

func TestReadList(t *testing.T) {
	v := read(t, "(a b c)")
	n, err := value.Length(v)
	if err != nil || n != 3 {
		t.Fatalf("Length = %d, %v; want 3, nil", n, err)
	}
	first, _ := value.Nth(v, 0)
	if !value.DeepEqual(first, value.NewAtom("a")) {
		t.Fatalf("first = %v; want a", first)
	}
}

func TestReadNestedList(t *testing.T) {
	v := read(t, "(car (cons 'a '(b c)))")
	n, err := value.Length(v)
	if err != nil || n != 2 {
		t.Fatalf("Length = %d, %v; want 2, nil", n, err)
	}
}

func TestQuoteSugar(t *testing.T) {
	v := read(t, "'a")
	n, err := value.Length(v)
	if err != nil || n != 2 {
		t.Fatalf("Length = %d, %v; want 2, nil", n, err)
	}
	head, _ := value.Nth(v, 0)
	if !value.DeepEqual(head, value.NewAtom("quote")) {
		t.Fatalf("head = %v; want quote", head)
	}
	second, _ := value.Nth(v, 1)
	if !value.DeepEqual(second, value.NewAtom("a")) {
		t.Fatalf("second = %v; want a", second)
	}
}

func TestNestedQuoteSugar(t *testing.T) {
	// ''a reads as (quote (quote a)): the second element of the outer form
	// is itself a two-element quote form.
	v := read(t, "''a")
	outer, _ := value.Nth(v, 1)
	n, err := value.Length(outer)
	if err != nil || n != 2 {
		t.Fatalf("inner quote form malformed: %v, %v", outer, err)
	}
}

func TestUnmatchedCloseParen(t *testing.T) {
	if _, err := ReadString(")"); err == nil {
		t.Fatal("expected SyntaxError for unexpected ')'")
	}
}

func TestUnbalancedOpenParen(t *testing.T) {
	if _, err := ReadString("(a b"); err == nil {
		t.Fatal("expected SyntaxError for unbalanced input")
	}
}

func TestBalance(t *testing.T) {
	if depth, extra := Balance("(a (b c)"); extra || depth != 1 {
		t.Fatalf("Balance = %d, %v; want 1, false", depth, extra)
	}
	if depth, extra := Balance("(a b))"); !extra {
		t.Fatalf("Balance = %d, %v; want extraClose=true", depth, extra)
	}
	if depth, extra := Balance("(a (b c))"); extra || depth != 0 {
		t.Fatalf("Balance = %d, %v; want 0, false", depth, extra)
	}
}

func TestReadMultipleForms(t *testing.T) {
	r := NewFromString("a b c")
	var got []string
	for {
		done, err := r.Done()
		if err != nil {
			t.Fatal(err)
		}
		if done {
			break
		}
		v, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v.(*value.Atom).Name)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v; want [a b c]", got)
	}
}
