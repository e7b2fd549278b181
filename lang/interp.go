package lang

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/limelang/lime/log"
)

// DefaultMaxDepth is the default limit on nested eval invocations. It
// bounds runaway recursion (for example a non-terminating self-application)
// well before the host stack is exhausted.
const DefaultMaxDepth = 10000

// Option applies a configuration option to an [Interp].
type Option func(*Interp)

// WithLogger sets the structured logger used for evaluation tracing.
// The zero logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(in *Interp) { in.logger = logger }
}

// WithStdout sets the output collaborator that auto-printed statement
// results and the print builtin write to.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) { in.stdout = w }
}

// WithStdin sets the input collaborator that the get builtin reads from.
func WithStdin(r io.Reader) Option {
	return func(in *Interp) { in.stdin = bufio.NewReader(r) }
}

// WithMaxDepth sets the limit on nested eval invocations.
func WithMaxDepth(n int) Option {
	return func(in *Interp) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

// WithKeepGoing controls whether a failed statement aborts the run (the
// default) or merely skips to the next line.
func WithKeepGoing(keep bool) Option {
	return func(in *Interp) { in.keepGoing = keep }
}

// Interp is one interpreter instance: the persistent top-level environment
// plus its I/O collaborators. Instances are independent; nothing is shared
// through package state. A single instance must not be used concurrently.
type Interp struct {
	top       *Env
	stdout    io.Writer
	stdin     *bufio.Reader
	logger    log.Logger
	maxDepth  int
	depth     int
	keepGoing bool
}

// New creates an interpreter with the builtin library pre-bound in its
// top-level frame. By default it reads from os.Stdin and writes to
// os.Stdout.
func New(opts ...Option) *Interp {
	in := &Interp{
		top:      NewEnv(nil),
		stdout:   os.Stdout,
		stdin:    bufio.NewReader(os.Stdin),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(in)
	}

	bindBuiltins(in.top)

	return in
}

// Names returns the sorted identifiers bound in the top-level environment,
// builtins included. Used for REPL completion.
func (in *Interp) Names() []string {
	return in.top.Names()
}

// Binding describes one top-level binding for interactive listing. Val is
// nil until the binding's thunk has been forced.
type Binding struct {
	Name   string
	Val    Value
	Forced bool
}

// Bindings returns the top-level bindings in sorted name order without
// forcing any of them.
func (in *Interp) Bindings() []Binding {
	names := in.top.Names()
	bindings := make([]Binding, 0, len(names))

	for _, name := range names {
		t, ok := in.top.Lookup(name)
		if !ok {
			continue
		}

		b := Binding{Name: name, Forced: t.Forced()}
		if b.Forced {
			b.Val, _ = t.Force(in)
		}

		bindings = append(bindings, b)
	}

	return bindings
}

// EvalStmt evaluates one parsed statement against the top-level
// environment. For a binding it stores an unforced thunk under the bound
// name and reports printed=false; errors inside the bound expression
// surface only when the binding is first forced. For a bare expression it
// returns the resulting value with printed=true.
func (in *Interp) EvalStmt(stmt Stmt) (val Value, printed bool, err error) {
	switch s := stmt.(type) {
	case nil:
		return nil, false, nil

	case *Bind:
		in.top.Bind(s.Name, Defer(s.Expr, in.top))

		in.logger.Debug(
			"bound",
			slog.String("name", s.Name),
		)

		return nil, false, nil

	default:
		v, err := in.eval(stmt.(Expr), in.top)
		if err != nil {
			return nil, false, err
		}

		return v, true, nil
	}
}

// EvalLine lexes, parses, and evaluates one physical source line. Blank
// and comment-only lines yield (nil, false, nil).
func (in *Interp) EvalLine(line string, lineNum int) (Value, bool, error) {
	stmt, err := ParseLine(line, lineNum)
	if err != nil || stmt == nil {
		return nil, false, err
	}

	return in.EvalStmt(stmt)
}

// Run interprets the source from r line by line against the persistent
// top-level environment, printing each expression statement's value on its
// own line. The first failing statement aborts the run unless the
// interpreter was built with [WithKeepGoing].
func (in *Interp) Run(ctx context.Context, r io.Reader) error {
	scan := bufio.NewScanner(r)
	lineNum := 0

	for scan.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lineNum++

		line := scan.Text()

		val, printed, err := in.EvalLine(line, lineNum)
		if err != nil {
			err = positioned(err, lineNum)

			in.logger.ErrorContext(ctx, "statement failed",
				slog.Int("line", lineNum),
				slog.Any("error", err),
			)

			if in.keepGoing {
				continue
			}

			return err
		}

		if printed {
			fmt.Fprintln(in.stdout, Display(val))
		}
	}

	if err := scan.Err(); err != nil {
		return ErrReadInput.Wrap(err)
	}

	return nil
}

// positioned ensures err carries a line number, attaching lineNum when the
// error has none of its own (for example an error raised while forcing a
// thunk built on an earlier line).
func positioned(err error, lineNum int) error {
	e := WrapError(err)
	if e.Line() > 0 {
		return e
	}

	return e.at(lineNum, 0)
}

// eval evaluates an expression tree in the given environment.
func (in *Interp) eval(expr Expr, env *Env) (Value, error) {
	in.depth++
	defer func() { in.depth-- }()

	if in.depth > in.maxDepth {
		pos := expr.Pos()

		return nil, ErrRecursionLimit.
			at(pos.Line, pos.Col).
			With(slog.Int("max_depth", in.maxDepth))
	}

	switch e := expr.(type) {
	case *Lit:
		return e.Val, nil

	case *ListLit:
		// List construction is eager: elements become plain values.
		elems := make(List, len(e.Elems))

		for i, el := range e.Elems {
			v, err := in.eval(el, env)
			if err != nil {
				return nil, err
			}

			elems[i] = v
		}

		return elems, nil

	case *Ident:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, ErrUnboundIdentifier.
				at(e.pos.Line, e.pos.Col).
				detail("`" + e.Name + "` is not defined")
		}

		return t.Force(in)

	case *Lambda:
		return &Closure{Param: e.Param, Body: e.Body, Env: env}, nil

	case *Apply:
		return in.apply(e, env)

	default:
		// Bind reaches here only through a malformed caller; top-level
		// bindings are handled by EvalStmt.
		pos := expr.Pos()

		return nil, ErrUnexpectedToken.at(pos.Line, pos.Col)
	}
}

// apply implements call-by-need application: the argument expression is
// suspended over the caller's environment, never evaluated here.
func (in *Interp) apply(e *Apply, env *Env) (Value, error) {
	fn, err := in.eval(e.Fn, env)
	if err != nil {
		return nil, err
	}

	arg := Defer(e.Arg, env)

	switch f := fn.(type) {
	case *Closure:
		frame := NewEnv(f.Env)

		// A parameterless lambda discards its argument thunk.
		if f.Param != "" {
			frame.Bind(f.Param, arg)
		}

		return in.eval(f.Body, frame)

	case *Builtin:
		return f.apply(in, arg)

	default:
		pos := e.Fn.Pos()

		return nil, ErrNotCallable.
			at(pos.Line, pos.Col).
			detail("unable to call a type of " + fn.Kind().String())
	}
}
