// Package value defines the tagged value representation shared by the
// reader, printer, environment, and evaluator.
package value

import "fmt"

// Value is the interface every variant implements. Implementations are
// pointer types so that pointer identity can serve as the pool's
// reachability key and so that deep copies are observably distinct nodes.
type Value interface {
	isValue()
}

// Atom is an interned-style symbol carrying a name. The names "t" and "()"
// are reserved.
type Atom struct {
	Name string
}

func (*Atom) isValue() {}

// NewAtom constructs an Atom.
func NewAtom(name string) *Atom { return &Atom{Name: name} }

// T is the canonical truth atom.
func T() *Atom { return &Atom{Name: "t"} }

// Integer is a 32-bit signed integer value.
type Integer struct {
	Val int32
}

func (*Integer) isValue() {}

// NewInteger constructs an Integer.
func NewInteger(v int32) *Integer { return &Integer{Val: v} }

// Float is a single-precision IEEE float value.
type Float struct {
	Val float32
}

func (*Float) isValue() {}

// NewFloat constructs a Float.
func NewFloat(v float32) *Float { return &Float{Val: v} }

// Pair is the building block of lists: two owned children, Head and Tail.
// The canonical empty list is the unique Pair with both children nil.
type Pair struct {
	Head Value
	Tail Value
}

func (*Pair) isValue() {}

// NewPair constructs a Pair.
func NewPair(head, tail Value) *Pair { return &Pair{Head: head, Tail: tail} }

// Empty returns a new empty-list Pair.
func Empty() *Pair { return &Pair{} }

// IsEmptyList reports whether v is the empty list: either a childless Pair,
// or the atom "()".
func IsEmptyList(v Value) bool {
	if p, ok := v.(*Pair); ok {
		return p.Head == nil && p.Tail == nil
	}
	if a, ok := v.(*Atom); ok {
		return a.Name == "()"
	}
	return false
}

// Environment is the minimal surface the evaluator's environment exposes to
// a primitive; kept here (rather than importing internal/environment) to
// avoid an import cycle between value and environment.
type Environment interface {
	Lookup(name string) (Value, bool)
	Bind(name string, v Value)
}

// EvalFunc lets a special primitive (cond, set, ...) recursively evaluate
// one of its own unevaluated arguments against an environment.
type EvalFunc func(v Value, env Environment) (Value, error)

// PrimitiveFn is the Go function backing a Primitive value. The evaluator
// always supplies eval; primitives that never evaluate a sub-expression
// themselves ignore it.
type PrimitiveFn func(args Value, env Environment, eval EvalFunc) (Value, error)

// Primitive is a reference to a built-in operator with a fixed calling
// convention.
type Primitive struct {
	Name    string
	Special bool // special primitives receive unevaluated arguments
	MinArgs int
	MaxArgs int // -1 means unbounded
	Fn      PrimitiveFn
}

func (*Primitive) isValue() {}

// Closure is an aggregate of (parameter list, body expression, captured
// bindings, arity), optionally tagged as a macro.
type Closure struct {
	Params   []string // parameter names, in order
	Body     Value
	Captured []Binding // (name, value) pairs captured at construction
	IsMacro  bool
}

func (*Closure) isValue() {}

// Arity returns the number of parameters still unconsumed.
func (c *Closure) Arity() int { return len(c.Params) }

// Binding is a single (name, value) association, used both by Closure's
// captured list and by environment.Environment's assoc list.
type Binding struct {
	Name  string
	Value Value
}

// DeepCopy returns a structurally identical but pointer-distinct copy of v.
// Deep copy never fails except on allocation exhaustion, which in Go
// manifests as an out-of-memory panic, not an error return.
func DeepCopy(v Value) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case *Atom:
		return &Atom{Name: t.Name}
	case *Integer:
		return &Integer{Val: t.Val}
	case *Float:
		return &Float{Val: t.Val}
	case *Pair:
		return &Pair{Head: DeepCopy(t.Head), Tail: DeepCopy(t.Tail)}
	case *Primitive:
		// Primitives are immutable, shared singletons; copying is a no-op.
		return t
	case *Closure:
		params := append([]string(nil), t.Params...)
		captured := make([]Binding, len(t.Captured))
		for i, b := range t.Captured {
			captured[i] = Binding{Name: b.Name, Value: DeepCopy(b.Value)}
		}
		return &Closure{Params: params, Body: DeepCopy(t.Body), Captured: captured, IsMacro: t.IsMacro}
	default:
		panic(fmt.Sprintf("value: DeepCopy: unknown variant %T", v))
	}
}

// DeepEqual reports whether a and b are equal by variant-specific equality:
// same variant and, for Pair, Head and Tail recursively equal; for numbers,
// exact bit equality within the same numeric variant.
func DeepEqual(a, b Value) bool {
	if IsEmptyList(a) && IsEmptyList(b) {
		return true
	}
	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Name == y.Name
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Val == y.Val
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Val == y.Val
	case *Pair:
		y, ok := b.(*Pair)
		if !ok {
			return false
		}
		return DeepEqual(x.Head, y.Head) && DeepEqual(x.Tail, y.Tail)
	case *Primitive:
		y, ok := b.(*Primitive)
		return ok && x == y
	case *Closure:
		y, ok := b.(*Closure)
		return ok && x == y
	}
	return false
}

// Truthy reports a value's boolean interpretation: the empty list is false,
// every other value is true.
func Truthy(v Value) bool {
	return !IsEmptyList(v)
}
