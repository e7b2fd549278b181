package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// testInterp builds an interpreter writing to an in-memory buffer.
func testInterp(opts ...Option) (*Interp, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := New(append([]Option{WithStdout(out)}, opts...)...)

	return in, out
}

// evalLines feeds each line to the interpreter in order and returns the last
// statement's result.
func evalLines(in *Interp, lines ...string) (Value, error) {
	var last Value

	for i, line := range lines {
		val, printed, err := in.EvalLine(line, i+1)
		if err != nil {
			return nil, err
		}

		if printed {
			last = val
		}
	}

	return last, nil
}

func TestEval_Expressions(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string // Display form of the last result
	}{
		{
			name:  "literal number",
			lines: []string{"42"},
			want:  "42",
		},
		{
			name:  "constant combinator",
			lines: []string{`(\a.\b.a) 5 4`},
			want:  "5",
		},
		{
			name:  "identity",
			lines: []string{`(\x.x) "self"`},
			want:  "self",
		},
		{
			name: "partial application is a value",
			lines: []string{
				`inc := + 1`,
				"inc 41",
			},
			want: "42",
		},
		{
			name: "curried user function",
			lines: []string{
				`const := \a.\b.a`,
				`first := const "kept"`,
				`first "dropped"`,
			},
			want: "kept",
		},
		{
			name:  "unused argument never evaluated",
			lines: []string{`(\a.\b.a) 5 (/ 1 0)`},
			want:  "5",
		},
		{
			name:  "parameterless lambda discards argument",
			lines: []string{`(\.9) (/ 1 0)`},
			want:  "9",
		},
		{
			name: "closure captures definition environment",
			lines: []string{
				`make := \n.\.n`,
				"five := make 5",
				"five ()",
			},
			want: "5",
		},
		{
			name: "parameter shadows top-level binding",
			lines: []string{
				"x := 1",
				`(\x.x) 2`,
			},
			want: "2",
		},
		{
			name: "rebinding replaces top-level entry",
			lines: []string{
				"x := 1",
				"x := 2",
				"x",
			},
			want: "2",
		},
		{
			name: "factorial via self application",
			lines: []string{
				`fact := \f.\n.= n 0 1 (* n (f f (- n 1)))`,
				"fact fact 5",
			},
			want: "120",
		},
		{
			name: "fibonacci via self application",
			lines: []string{
				`fib := \f.\n.< n 2 n (+ (f f (- n 1)) (f f (- n 2)))`,
				"fib fib 10",
			},
			want: "55",
		},
		{
			name:  "list construction",
			lines: []string{`[+ 1 2, "x", []]`},
			want:  `[3, "x", []]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := testInterp()

			val, err := evalLines(in, tt.lines...)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got := Display(val); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEval_LazyConditionalForcesOneBranch(t *testing.T) {
	in, out := testInterp()

	val, err := evalLines(in, `= 0 2 (print "true") (print "false")`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if out.String() != "false\n" {
		t.Errorf("expected only the else branch to print, got %q", out.String())
	}

	if _, ok := val.(None); !ok {
		t.Errorf("expected none result, got %v", val)
	}
}

func TestEval_UntakenBranchErrorSuppressed(t *testing.T) {
	in, _ := testInterp()

	val, err := evalLines(in, `= 0 0 "zero" (/ 1 0)`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if Display(val) != "zero" {
		t.Errorf("expected zero, got %q", Display(val))
	}
}

func TestEval_MemoizationForcesOnce(t *testing.T) {
	in, out := testInterp()

	val, err := evalLines(in,
		`x := do (print "effect") 7`,
		"+ x x",
	)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if Display(val) != "14" {
		t.Errorf("expected 14, got %q", Display(val))
	}

	if out.String() != "effect\n" {
		t.Errorf("expected a single effect, got %q", out.String())
	}
}

func TestEval_SeparateCallSitesForceIndependently(t *testing.T) {
	in, out := testInterp()

	// Each application builds a fresh thunk for its argument, so the effect
	// runs once per call even though the expressions are identical.
	_, err := evalLines(in,
		`ping := \x.do x 0`,
		`ping (print "a")`,
		`ping (print "a")`,
	)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if out.String() != "a\na\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestEval_BindingIsLazy(t *testing.T) {
	in, _ := testInterp()

	// Binding an erroneous expression succeeds; the error surfaces only
	// when the binding is first forced.
	if _, err := evalLines(in, "boom := missing"); err != nil {
		t.Fatalf("binding should not evaluate: %v", err)
	}

	_, err := evalLines(in, "boom")
	if !errors.Is(err, ErrUnboundIdentifier) {
		t.Errorf("expected unbound identifier, got %v", err)
	}

	// A failed force is not cached as a value.
	_, err = evalLines(in, "boom")
	if !errors.Is(err, ErrUnboundIdentifier) {
		t.Errorf("expected unbound identifier on re-force, got %v", err)
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{
			name:  "unbound identifier",
			lines: []string{"nonesuch"},
			want:  ErrUnboundIdentifier,
		},
		{
			name:  "number is not callable",
			lines: []string{"5 6"},
			want:  ErrNotCallable,
		},
		{
			name:  "string is not callable",
			lines: []string{`"f" 6`},
			want:  ErrNotCallable,
		},
		{
			name: "infinite self application hits depth limit",
			lines: []string{
				`loop := \f.f f`,
				"loop loop",
			},
			want: ErrRecursionLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := testInterp(WithMaxDepth(500))

			_, err := evalLines(in, tt.lines...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEval_DepthResetsBetweenStatements(t *testing.T) {
	in, _ := testInterp(WithMaxDepth(200))

	_, err := evalLines(in,
		`loop := \f.f f`,
		"loop loop",
	)
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}

	// The evaluator remains usable after unwinding.
	val, err := evalLines(in, "+ 1 2")
	if err != nil {
		t.Fatalf("eval error after limit: %v", err)
	}

	if Display(val) != "3" {
		t.Errorf("expected 3, got %q", Display(val))
	}
}

func TestRun_AutoPrintsExpressions(t *testing.T) {
	in, out := testInterp()

	src := strings.Join([]string{
		"; bindings are silent",
		`id := \x.x`,
		"+ 1 2",
		`id "hello"`,
	}, "\n")

	if err := in.Run(context.Background(), strings.NewReader(src)); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if out.String() != "3\nhello\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_AbortsOnFirstError(t *testing.T) {
	in, out := testInterp()

	src := "+ 1 1\nmissing\n+ 2 2\n"

	err := in.Run(context.Background(), strings.NewReader(src))
	if !errors.Is(err, ErrUnboundIdentifier) {
		t.Fatalf("expected unbound identifier, got %v", err)
	}

	if out.String() != "2\n" {
		t.Errorf("expected output before the error only, got %q", out.String())
	}
}

func TestRun_KeepGoingSkipsFailedStatements(t *testing.T) {
	in, out := testInterp(WithKeepGoing(true))

	src := "+ 1 1\nmissing\n+ 2 2\n"

	if err := in.Run(context.Background(), strings.NewReader(src)); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if out.String() != "2\n4\n" {
		t.Errorf("expected both successful statements, got %q", out.String())
	}
}

func TestRun_ErrorCarriesLineNumber(t *testing.T) {
	in, _ := testInterp()

	src := "1\n2\nmissing\n"

	err := in.Run(context.Background(), strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	e := &Error{}
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	if e.Line() != 3 {
		t.Errorf("expected line 3, got %d", e.Line())
	}
}

func TestRun_PositionlessErrorOmitsColumn(t *testing.T) {
	in, _ := testInterp()

	// Builtin type errors carry no source position of their own; the run
	// loop attaches the statement's line number, and only that.
	src := "1\n+ 1 \"a\"\n"

	err := in.Run(context.Background(), strings.NewReader(src))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}

	msg := err.Error()

	if !strings.Contains(msg, "at (ln: 2)") {
		t.Errorf("expected line-only position in %q", msg)
	}

	if strings.Contains(msg, "col:") {
		t.Errorf("expected no column in %q", msg)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	in, _ := testInterp()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := in.Run(ctx, strings.NewReader("+ 1 1\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInterp_Bindings(t *testing.T) {
	in, _ := testInterp()

	if _, err := evalLines(in, "a := + 1 2", "b := 9", "b"); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	var a, b *Binding

	for _, bind := range in.Bindings() {
		switch bind.Name {
		case "a":
			v := bind
			a = &v
		case "b":
			v := bind
			b = &v
		}
	}

	if a == nil || b == nil {
		t.Fatalf("expected both bindings listed")
	}

	if a.Forced {
		t.Errorf("binding a should remain unforced")
	}

	if !b.Forced || Display(b.Val) != "9" {
		t.Errorf("binding b should be forced to 9, got %+v", b)
	}
}

func TestInterp_NamesIncludeBuiltins(t *testing.T) {
	in, _ := testInterp()

	names := in.Names()

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	for _, want := range BuiltinNames() {
		if _, ok := set[want]; !ok {
			t.Errorf("builtin %q missing from Names()", want)
		}
	}
}
