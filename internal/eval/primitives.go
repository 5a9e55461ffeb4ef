package eval

import (
	"mclisp/internal/environment"
	"mclisp/internal/value"
)

// Primitives returns the built-in operator table, in a deterministic order
// suitable for seeding a fresh environment.
func Primitives() []*value.Primitive {
	return []*value.Primitive{
		{Name: "quote", Special: true, MinArgs: 1, MaxArgs: 1, Fn: primQuote},
		{Name: "atom", Special: false, MinArgs: 1, MaxArgs: 1, Fn: primAtom},
		{Name: "eq", Special: false, MinArgs: 2, MaxArgs: 2, Fn: primEq},
		{Name: "car", Special: false, MinArgs: 1, MaxArgs: 1, Fn: primCar},
		{Name: "cdr", Special: false, MinArgs: 1, MaxArgs: 1, Fn: primCdr},
		{Name: "cons", Special: false, MinArgs: 2, MaxArgs: 2, Fn: primCons},
		{Name: "cond", Special: true, MinArgs: 0, MaxArgs: -1, Fn: primCond},
		{Name: "set", Special: true, MinArgs: 2, MaxArgs: 2, Fn: primSet},
		{Name: "env", Special: true, MinArgs: 0, MaxArgs: 0, Fn: primEnv},
		{Name: "lambda", Special: true, MinArgs: 2, MaxArgs: 2, Fn: primLambda},
		{Name: "defmacro", Special: true, MinArgs: 3, MaxArgs: 3, Fn: primDefmacro},
		{Name: "+", Special: false, MinArgs: 2, MaxArgs: -1, Fn: arithFn("+")},
		{Name: "-", Special: false, MinArgs: 1, MaxArgs: -1, Fn: arithFn("-")},
		{Name: "*", Special: false, MinArgs: 2, MaxArgs: -1, Fn: arithFn("*")},
		{Name: "/", Special: false, MinArgs: 2, MaxArgs: -1, Fn: arithFn("/")},
		{Name: "%", Special: false, MinArgs: 2, MaxArgs: -1, Fn: arithFn("%")},
		{Name: "=", Special: false, MinArgs: 2, MaxArgs: 2, Fn: primNumEq},
	}
}

func primQuote(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	return value.Elements(args)[0], nil
}

func isAtomic(v value.Value) bool {
	switch v.(type) {
	case *value.Atom, *value.Integer, *value.Float:
		return true
	case *value.Pair:
		return value.IsEmptyList(v)
	}
	return false
}

func primAtom(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	v := value.Elements(args)[0]
	if isAtomic(v) {
		return value.T(), nil
	}
	return value.Empty(), nil
}

func eqValues(a, b value.Value) bool {
	if value.IsEmptyList(a) && value.IsEmptyList(b) {
		return true
	}
	switch x := a.(type) {
	case *value.Atom:
		y, ok := b.(*value.Atom)
		return ok && x.Name == y.Name
	case *value.Integer:
		y, ok := b.(*value.Integer)
		return ok && x.Val == y.Val
	case *value.Float:
		y, ok := b.(*value.Float)
		return ok && x.Val == y.Val
	case *value.Primitive:
		y, ok := b.(*value.Primitive)
		return ok && x == y
	case *value.Closure:
		y, ok := b.(*value.Closure)
		return ok && x == y
	case *value.Pair:
		// Non-empty lists are never eq.
		return false
	}
	return false
}

func boolVal(b bool) value.Value {
	if b {
		return value.T()
	}
	return value.Empty()
}

func primEq(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	elems := value.Elements(args)
	return boolVal(eqValues(elems[0], elems[1])), nil
}

func primCar(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	p, ok := value.Elements(args)[0].(*value.Pair)
	if !ok {
		return nil, newErr(TypeError, "car", "argument is not a pair")
	}
	if p.Head == nil {
		return nil, newErr(ShapeError, "car", "cannot take car of the empty list")
	}
	return p.Head, nil
}

func primCdr(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	p, ok := value.Elements(args)[0].(*value.Pair)
	if !ok {
		return nil, newErr(TypeError, "cdr", "argument is not a pair")
	}
	if p.Tail == nil {
		return nil, newErr(ShapeError, "cdr", "cannot take cdr of the empty list")
	}
	return p.Tail, nil
}

func primCons(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	elems := value.Elements(args)
	head, tail := elems[0], elems[1]
	if !value.IsList(tail) {
		return nil, newErr(TypeError, "cons", "second argument must be a list")
	}
	return value.NewPair(head, tail), nil
}

func primCond(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	for _, clause := range value.Elements(args) {
		n, err := value.Length(clause)
		if err != nil || n != 2 {
			return nil, newErr(ArityError, "cond", "each clause must be a two-element list")
		}
		pred, _ := value.Nth(clause, 0)
		consequent, _ := value.Nth(clause, 1)
		predVal, err := ev(pred, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(predVal) {
			return ev(consequent, env)
		}
	}
	return value.Empty(), nil
}

func primSet(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	elems := value.Elements(args)
	nameVal, err := ev(elems[0], env)
	if err != nil {
		return nil, err
	}
	name, ok := nameVal.(*value.Atom)
	if !ok || isReservedName(name.Name) {
		return nil, newErr(TypeError, "set", "first argument must evaluate to a non-reserved atom")
	}
	stored, err := ev(elems[1], env)
	if err != nil {
		return nil, err
	}
	env.Bind(name.Name, stored)
	return stored, nil
}

func primEnv(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	concrete, ok := env.(*environment.Environment)
	if !ok {
		return nil, newErr(ResourceError, "env", "environment has unexpected implementation")
	}
	bindings := concrete.Snapshot()
	elems := make([]value.Value, len(bindings))
	for i := range bindings {
		// Newest first: Snapshot returns oldest-first.
		b := bindings[len(bindings)-1-i]
		elems[i] = value.NewPair(value.NewAtom(b.Name), b.Value)
	}
	return value.FromSlice(elems), nil
}

func primLambda(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	concrete, ok := env.(*environment.Environment)
	if !ok {
		return nil, newErr(ResourceError, "lambda", "environment has unexpected implementation")
	}
	elems := value.Elements(args)
	return newClosure(elems[0], elems[1], false, concrete)
}

func primDefmacro(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	concrete, ok := env.(*environment.Environment)
	if !ok {
		return nil, newErr(ResourceError, "defmacro", "environment has unexpected implementation")
	}
	elems := value.Elements(args)
	nameAtom, ok := elems[0].(*value.Atom)
	if !ok || isReservedName(nameAtom.Name) {
		return nil, newErr(TypeError, "defmacro", "macro name must be a non-reserved atom")
	}
	closure, err := newClosure(elems[1], elems[2], true, concrete)
	if err != nil {
		return nil, err
	}
	concrete.Bind(nameAtom.Name, closure)
	return closure, nil
}

func numOf(v value.Value) (f float64, isFloat bool, ok bool) {
	switch t := v.(type) {
	case *value.Integer:
		return float64(t.Val), false, true
	case *value.Float:
		return float64(t.Val), true, true
	}
	return 0, false, false
}

func arithFn(op string) value.PrimitiveFn {
	return func(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
		elems := value.Elements(args)
		nums := make([]float64, len(elems))
		anyFloat := false
		for i, e := range elems {
			f, isFloat, ok := numOf(e)
			if !ok {
				return nil, newErr(TypeError, op, "argument is not a number")
			}
			nums[i] = f
			anyFloat = anyFloat || isFloat
		}

		var result float64
		switch op {
		case "+":
			for _, n := range nums {
				result += n
			}
		case "-":
			if len(nums) == 1 {
				result = -nums[0]
			} else {
				result = nums[0]
				for _, n := range nums[1:] {
					result -= n
				}
			}
		case "*":
			result = 1
			for _, n := range nums {
				result *= n
			}
		case "/":
			result = nums[0]
			for _, n := range nums[1:] {
				if n == 0 {
					return nil, newErr(DomainError, op, "division by zero")
				}
				result /= n
			}
		case "%":
			if anyFloat {
				return nil, newErr(DomainError, op, "modulus is defined for integer operands only")
			}
			ires := int32(nums[0])
			for _, n := range nums[1:] {
				d := int32(n)
				if d == 0 {
					return nil, newErr(DomainError, op, "modulus by zero")
				}
				ires %= d
			}
			return value.NewInteger(ires), nil
		}

		if anyFloat {
			return value.NewFloat(float32(result)), nil
		}
		return value.NewInteger(int32(result)), nil
	}
}

func primNumEq(args value.Value, env value.Environment, ev value.EvalFunc) (value.Value, error) {
	elems := value.Elements(args)
	af, _, aok := numOf(elems[0])
	bf, _, bok := numOf(elems[1])
	if !aok || !bok {
		return nil, newErr(TypeError, "=", "arguments must be numbers")
	}
	return boolVal(af == bf), nil
}
