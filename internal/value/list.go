package value

import "errors"

// ErrNotList is returned by list operations given a non-list argument.
// Callers that need to surface this as the evaluator's ShapeError
// (eval.EvalError) wrap it accordingly.
var ErrNotList = errors.New("value: not a proper list")

// IsList reports whether v is a proper list: the empty list, or a chain of
// Pairs whose final Tail is the empty list.
func IsList(v Value) bool {
	for {
		if IsEmptyList(v) {
			return true
		}
		p, ok := v.(*Pair)
		if !ok {
			return false
		}
		v = p.Tail
	}
}

// Length returns the number of elements in a proper list.
func Length(v Value) (int, error) {
	if !IsList(v) {
		return 0, ErrNotList
	}
	n := 0
	for !IsEmptyList(v) {
		n++
		v = v.(*Pair).Tail
	}
	return n, nil
}

// Nth returns the i'th element (0-based) of a proper list, or (nil, false)
// if i is out of range.
func Nth(v Value, i int) (Value, bool) {
	if !IsList(v) || i < 0 {
		return nil, false
	}
	for !IsEmptyList(v) {
		p := v.(*Pair)
		if i == 0 {
			return p.Head, true
		}
		i--
		v = p.Tail
	}
	return nil, false
}

// Sublist returns the list starting at the i'th element (0-based). An i
// beyond the list's length yields the empty list.
func Sublist(v Value, i int) (Value, error) {
	if !IsList(v) {
		return nil, ErrNotList
	}
	for i > 0 && !IsEmptyList(v) {
		v = v.(*Pair).Tail
		i--
	}
	if IsEmptyList(v) {
		return Empty(), nil
	}
	return v, nil
}

// Concat concatenates two proper lists, returning a new list whose elements
// are deep copies of a's and b's elements.
func Concat(a, b Value) (Value, error) {
	if !IsList(a) || !IsList(b) {
		return nil, ErrNotList
	}
	if IsEmptyList(a) {
		return DeepCopy(b), nil
	}
	p := a.(*Pair)
	tail, err := Concat(p.Tail, b)
	if err != nil {
		return nil, err
	}
	return NewPair(DeepCopy(p.Head), tail), nil
}

// Contains reports whether needle appears (by DeepEqual) as an element of
// the proper list haystack.
func Contains(haystack, needle Value) bool {
	for !IsEmptyList(haystack) {
		p, ok := haystack.(*Pair)
		if !ok {
			return false
		}
		if DeepEqual(p.Head, needle) {
			return true
		}
		haystack = p.Tail
	}
	return false
}

// Elements flattens a proper list into a Go slice of its elements, in
// order. It panics if v is not a proper list; callers should check IsList
// first when the shape is not already guaranteed.
func Elements(v Value) []Value {
	var out []Value
	for !IsEmptyList(v) {
		p := v.(*Pair)
		out = append(out, p.Head)
		v = p.Tail
	}
	return out
}

// FromSlice builds a proper list from a Go slice, newest-tail first (i.e.
// elems[0] becomes the head of the resulting list).
func FromSlice(elems []Value) Value {
	result := Value(Empty())
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewPair(elems[i], result)
	}
	return result
}
