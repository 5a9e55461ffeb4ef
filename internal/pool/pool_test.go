package pool

import (
	"testing"

	"mclisp/internal/value"
)

func TestAddAndLen(t *testing.T) {
	p := New()
	a := value.NewAtom("a")
	b := value.NewAtom("b")
	p.Add(a)
	p.Add(b)
	if p.Len() != 2 {
		t.Fatalf("Len = %d; want 2", p.Len())
	}
}

func TestAddRecursiveRegistersChildren(t *testing.T) {
	p := New()
	head := value.NewAtom("a")
	tail := value.Empty()
	pair := value.NewPair(head, tail)
	p.AddRecursive(pair)
	if !p.Reachable(pair) || !p.Reachable(head) || !p.Reachable(tail) {
		t.Fatal("expected pair, head, and tail all registered")
	}
}

func TestCollectDropsUnreachable(t *testing.T) {
	p := New()
	kept := value.NewAtom("kept")
	garbage := value.NewAtom("garbage")
	p.Add(kept)
	p.Add(garbage)

	p.Collect(kept)

	if !p.Reachable(kept) {
		t.Fatal("kept value should survive collection")
	}
	if p.Reachable(garbage) {
		t.Fatal("garbage value should not survive collection")
	}
}

func TestCollectKeepsTransitiveChildren(t *testing.T) {
	p := New()
	inner := value.NewAtom("inner")
	pair := value.NewPair(inner, value.Empty())
	unrelated := value.NewAtom("unrelated")
	p.AddRecursive(pair)
	p.Add(unrelated)

	p.Collect(pair)

	if !p.Reachable(pair) || !p.Reachable(inner) {
		t.Fatal("pair and its head should survive when pair is a root")
	}
	if p.Reachable(unrelated) {
		t.Fatal("unrelated value should not survive collection")
	}
}

func TestCollectWithNoRootsEmptiesPool(t *testing.T) {
	p := New()
	p.Add(value.NewAtom("x"))
	p.Collect()
	if p.Len() != 0 {
		t.Fatalf("Len = %d; want 0", p.Len())
	}
}
