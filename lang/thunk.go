package lang

// Thunk is a deferred computation: an expression paired with the
// environment it must be evaluated in, plus a memoization cell. Forcing is
// idempotent: the first force evaluates the expression and caches the
// result; every later force returns the identical cached value without
// re-evaluation. Memoization is per Thunk instance, never keyed by
// expression identity — structurally identical thunks built at different
// call sites force independently.
type Thunk struct {
	expr Expr
	env  *Env
	val  Value
	done bool
}

// Defer suspends expr over env without evaluating it.
func Defer(expr Expr, env *Env) *Thunk {
	return &Thunk{expr: expr, env: env}
}

// Forced wraps an already-computed value as a pre-forced thunk.
func Forced(v Value) *Thunk {
	return &Thunk{val: v, done: true}
}

// Force returns the thunk's value, evaluating its suspended expression on
// first use. Evaluation errors are not cached: a failed force leaves the
// thunk unforced.
func (t *Thunk) Force(in *Interp) (Value, error) {
	if t.done {
		return t.val, nil
	}

	v, err := in.eval(t.expr, t.env)
	if err != nil {
		return nil, err
	}

	t.val = v
	t.done = true

	// The suspended pair is dead once the value is cached.
	t.expr = nil
	t.env = nil

	return v, nil
}

// Forced reports whether the thunk has been evaluated.
func (t *Thunk) Forced() bool { return t.done }
