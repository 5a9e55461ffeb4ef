package eval

import (
	"mclisp/internal/environment"
	"mclisp/internal/value"
)

// evalInEnv is the shape closure application uses to recursively evaluate a
// body or a re-evaluated macro result against a concrete environment.
type evalInEnv func(v value.Value, env *environment.Environment) (value.Value, error)

func isReservedName(name string) bool {
	return name == "t" || name == "()"
}

// newClosure builds a Closure from a raw (params body) pair: validates the
// parameter list, deep-copies params and body into closure-owned storage,
// then captures every free variable of body found in env.
func newClosure(paramsExpr, bodyExpr value.Value, isMacro bool, env *environment.Environment) (*value.Closure, error) {
	if !value.IsList(paramsExpr) {
		return nil, newErr(TypeError, "lambda", "parameter list must be a proper list")
	}
	elems := value.Elements(paramsExpr)
	params := make([]string, len(elems))
	for i, e := range elems {
		a, ok := e.(*value.Atom)
		if !ok {
			return nil, newErr(TypeError, "lambda", "parameter must be an atom")
		}
		if isReservedName(a.Name) {
			return nil, newErr(TypeError, "lambda", "parameter cannot be a reserved name")
		}
		params[i] = a.Name
	}

	body := value.DeepCopy(bodyExpr)
	captured := captureFreeVars(body, params, env)

	return &value.Closure{
		Params:   params,
		Body:     body,
		Captured: captured,
		IsMacro:  isMacro,
	}, nil
}

// captureFreeVars walks body depth-first and, for every atom that is not a
// parameter, not reserved, and not already captured, looks it up in env and
// deep-copies its binding into the closure's captured list.
func captureFreeVars(body value.Value, params []string, env *environment.Environment) []value.Binding {
	isParam := make(map[string]bool, len(params))
	for _, p := range params {
		isParam[p] = true
	}
	seen := make(map[string]bool)
	var captured []value.Binding

	var walk func(v value.Value)
	walk = func(v value.Value) {
		switch t := v.(type) {
		case *value.Atom:
			if value.IsEmptyList(t) || isReservedName(t.Name) || isParam[t.Name] || seen[t.Name] {
				return
			}
			seen[t.Name] = true
			if bound, ok := env.Lookup(t.Name); ok {
				captured = append(captured, value.Binding{Name: t.Name, Value: value.DeepCopy(bound)})
			}
		case *value.Pair:
			if value.IsEmptyList(t) {
				return
			}
			walk(t.Head)
			walk(t.Tail)
		}
	}
	walk(body)
	return captured
}

// applyClosure implements the apply rules for a closure. args have already
// been evaluated or not, per the caller's macro-vs-function decision; this
// function only decides partial vs. full application and, for macros,
// re-evaluates the body's result in callerEnv. A full application evaluates
// the body in a child of callerEnv holding the captured bindings and then the
// parameters, so a name the closure did not capture (such as its own name, in
// a recursive call) is looked up in callerEnv.
func applyClosure(c *value.Closure, args []value.Value, callerEnv *environment.Environment, eval evalInEnv) (value.Value, error) {
	n := len(args)
	k := len(c.Params)

	switch {
	case n < k:
		newParams := append([]string(nil), c.Params[n:]...)
		newCaptured := append([]value.Binding(nil), c.Captured...)
		for i := 0; i < n; i++ {
			newCaptured = append(newCaptured, value.Binding{
				Name:  c.Params[i],
				Value: value.DeepCopy(args[i]),
			})
		}
		return &value.Closure{
			Params:   newParams,
			Body:     value.DeepCopy(c.Body),
			Captured: newCaptured,
			IsMacro:  c.IsMacro,
		}, nil

	case n == k:
		callEnv := callerEnv.Child()
		for _, b := range c.Captured {
			callEnv.Bind(b.Name, b.Value)
		}
		for i, p := range c.Params {
			callEnv.Bind(p, args[i])
		}
		result, err := eval(c.Body, callEnv)
		if err != nil {
			return nil, err
		}
		if c.IsMacro {
			return eval(result, callerEnv)
		}
		return result, nil

	default:
		return nil, arityError("closure", n, k, k)
	}
}
