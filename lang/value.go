package lang

// ValueKind identifies the runtime type of a [Value].
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueNumber
	ValueString
	ValueList
	ValueFunction
)

// String returns the name of the kind as it appears in type errors.
func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueList:
		return "list"
	case ValueFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the closed set of runtime values: Number, String, List, None,
// and the two function flavors *Closure and *Builtin. Values are immutable.
type Value interface {
	Kind() ValueKind
}

// Number is a double-precision floating point value.
type Number float64

// Kind implements [Value].
func (Number) Kind() ValueKind { return ValueNumber }

// String is an immutable unicode string value.
type String string

// Kind implements [Value].
func (String) Kind() ValueKind { return ValueString }

// List is an ordered sequence of values. Elements are plain Values: list
// construction evaluates its element expressions eagerly.
type List []Value

// Kind implements [Value].
func (List) Kind() ValueKind { return ValueList }

// None is the unit value, written () in source.
type None struct{}

// Kind implements [Value].
func (None) Kind() ValueKind { return ValueNone }

// Closure is a user function value: a lambda's parameter and body paired
// with the environment captured where the lambda was evaluated. Closures
// are shared; the same closure may be bound to several names or embedded in
// several call sites.
type Closure struct {
	Param string
	Body  Expr
	Env   *Env
}

// Kind implements [Value].
func (*Closure) Kind() ValueKind { return ValueFunction }

// Builtin is a native function value of fixed arity, curried the same way
// user closures are: each application peels one argument. Once len(Args)
// reaches Arity the native implementation runs with the collected thunks.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(in *Interp, args []*Thunk) (Value, error)
	Args  []*Thunk
}

// Kind implements [Value].
func (*Builtin) Kind() ValueKind { return ValueFunction }

// apply returns a new Builtin with one more collected argument, or invokes
// the native implementation when the final argument arrives. The receiver
// is never mutated so partial applications are freely shareable.
func (b *Builtin) apply(in *Interp, arg *Thunk) (Value, error) {
	args := make([]*Thunk, 0, len(b.Args)+1)
	args = append(args, b.Args...)
	args = append(args, arg)

	if len(args) < b.Arity {
		return &Builtin{Name: b.Name, Arity: b.Arity, Fn: b.Fn, Args: args}, nil
	}

	return b.Fn(in, args)
}
