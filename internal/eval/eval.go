package eval

import (
	"mclisp/internal/environment"
	"mclisp/internal/pool"
	"mclisp/internal/reader"
	"mclisp/internal/value"
)

// Evaluator owns one environment and one short-lived pool. It is not safe to
// share an Evaluator across goroutines; run one per interpreter instance.
type Evaluator struct {
	env            *environment.Environment
	pool           *pool.Pool
	skipPrimitives bool
}

// Option configures a new Evaluator.
type Option func(*Evaluator)

// WithEnvironment seeds the Evaluator with a pre-populated environment
// instead of a fresh one.
func WithEnvironment(env *environment.Environment) Option {
	return func(e *Evaluator) { e.env = env }
}

// WithoutPrimitives skips seeding the built-in operator table, useful for
// tests that want a bare environment.
func WithoutPrimitives() Option {
	return func(e *Evaluator) { e.skipPrimitives = true }
}

// New creates an Evaluator, by default seeded with the full primitive
// library bound into a fresh environment.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{pool: pool.New()}
	for _, opt := range opts {
		opt(e)
	}
	if e.env == nil {
		e.env = environment.New()
	}
	if !e.skipPrimitives {
		for _, p := range Primitives() {
			e.env.Bind(p.Name, p)
		}
	}
	return e
}

// Environment exposes the evaluator's top-level environment, e.g. for a
// driver that wants to inspect bindings between forms.
func (e *Evaluator) Environment() *environment.Environment { return e.env }

// Eval dispatches on v's shape against env. Every value it produces is
// registered with the evaluator's pool; callers that want the per-form
// collection discipline should use EvalTopLevel instead.
func (e *Evaluator) Eval(v value.Value, env *environment.Environment) (value.Value, error) {
	switch t := v.(type) {
	case *value.Integer, *value.Float, *value.Primitive, *value.Closure:
		return v, nil

	case *value.Atom:
		if value.IsEmptyList(t) || t.Name == "t" {
			return v, nil
		}
		bound, ok := env.Lookup(t.Name)
		if !ok {
			return nil, newErr(UnboundError, t.Name, "atom is not bound")
		}
		return bound, nil

	case *value.Pair:
		return e.evalPair(t, env)
	}
	return nil, newErr(ResourceError, "", "unrecognized value variant")
}

func (e *Evaluator) evalPair(p *value.Pair, env *environment.Environment) (value.Value, error) {
	if value.IsEmptyList(p) {
		return p, nil
	}

	head, err := e.Eval(p.Head, env)
	if err != nil {
		return nil, err
	}

	switch h := head.(type) {
	case *value.Primitive:
		return e.applyPrimitive(h, p.Tail, env)

	case *value.Closure:
		if h.IsMacro {
			args := value.Elements(p.Tail)
			e.pool.Add(p.Tail)
			result, err := applyClosure(h, args, env, e.Eval)
			if err != nil {
				return nil, err
			}
			e.pool.Add(result)
			return result, nil
		}
		args, err := e.evalArgs(p.Tail, env)
		if err != nil {
			return nil, err
		}
		result, err := applyClosure(h, args, env, e.Eval)
		if err != nil {
			return nil, err
		}
		e.pool.Add(result)
		return result, nil

	default:
		return nil, newErr(TypeError, "", "head of a call must be a primitive or closure")
	}
}

// evalArgs evaluates a raw argument-list Pair chain left to right into a
// fresh Go slice, tracking each evaluated value with the pool as it goes.
func (e *Evaluator) evalArgs(tail value.Value, env *environment.Environment) ([]value.Value, error) {
	if !value.IsList(tail) {
		return nil, newErr(ShapeError, "", "argument list must be a proper list")
	}
	var args []value.Value
	for _, raw := range value.Elements(tail) {
		v, err := e.Eval(raw, env)
		if err != nil {
			return nil, err
		}
		e.pool.Add(v)
		args = append(args, v)
	}
	return args, nil
}

func (e *Evaluator) applyPrimitive(p *value.Primitive, tail value.Value, env *environment.Environment) (value.Value, error) {
	var argsList value.Value
	if p.Special {
		argsList = tail
	} else {
		args, err := e.evalArgs(tail, env)
		if err != nil {
			return nil, err
		}
		argsList = value.FromSlice(args)
	}

	n, err := value.Length(argsList)
	if err != nil {
		return nil, newErr(ShapeError, p.Name, "argument list must be a proper list")
	}
	if err := checkArity(p.Name, n, p.MinArgs, p.MaxArgs); err != nil {
		return nil, err
	}

	result, err := p.Fn(argsList, env, e.evalAdapter)
	if err != nil {
		return nil, err
	}
	e.pool.Add(result)
	return result, nil
}

// evalAdapter adapts Eval to value.EvalFunc's interface-typed environment
// parameter, so primitives (which only see value.Environment) can still
// recursively evaluate sub-expressions via the evaluator's concrete dispatch.
func (e *Evaluator) evalAdapter(v value.Value, env value.Environment) (value.Value, error) {
	concrete, ok := env.(*environment.Environment)
	if !ok {
		return nil, newErr(ResourceError, "", "environment has unexpected implementation")
	}
	return e.Eval(v, concrete)
}

// EvalTopLevel evaluates v as one top-level form, then collects the pool,
// retaining only what the environment now holds plus the result. Collection
// runs before EvalTopLevel returns, not after the caller has printed the
// result; the result is one of the collection roots, so nothing reachable
// from it is dropped.
func (e *Evaluator) EvalTopLevel(v value.Value) (value.Value, error) {
	result, err := e.Eval(v, e.env)
	if err != nil {
		e.collect(nil)
		return nil, err
	}
	e.collect(result)
	return result, nil
}

func (e *Evaluator) collect(result value.Value) {
	roots := e.env.Snapshot()
	keep := make([]value.Value, 0, len(roots)+1)
	for _, b := range roots {
		keep = append(keep, b.Value)
	}
	if result != nil {
		keep = append(keep, result)
	}
	e.pool.Collect(keep...)
}

// EvalString reads one top-level form from s and evaluates it.
func (e *Evaluator) EvalString(s string) (value.Value, error) {
	v, err := reader.ReadString(s)
	if err != nil {
		return nil, wrapErr(SyntaxError, "", err)
	}
	return e.EvalTopLevel(v)
}

// Pool exposes the evaluator's short-lived pool, mainly for tests asserting
// that dead intermediates don't accumulate across repeated forms.
func (e *Evaluator) Pool() *pool.Pool { return e.pool }
