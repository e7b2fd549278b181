package lang

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// bindBuiltins installs the native library into env, each function wrapped
// as a pre-forced thunk so lookup never evaluates anything.
func bindBuiltins(env *Env) {
	for _, b := range builtinTable {
		env.Bind(b.Name, Forced(b))
	}
}

// BuiltinNames returns the names of the native library, sorted.
func BuiltinNames() []string {
	names := make([]string, len(builtinTable))
	for i, b := range builtinTable {
		names[i] = b.Name
	}

	return names
}

// builtinTable is the complete native library. Arithmetic and data
// builtins force every argument; the comparisons force only the operands
// and the branch they select.
var builtinTable = []*Builtin{
	{Name: "+", Arity: 2, Fn: builtinAdd},
	{Name: "-", Arity: 2, Fn: builtinSub},
	{Name: "*", Arity: 2, Fn: builtinMul},
	{Name: "/", Arity: 2, Fn: builtinDiv},
	{Name: "%", Arity: 2, Fn: builtinMod},
	{Name: "=", Arity: 4, Fn: builtinEq},
	{Name: "<", Arity: 4, Fn: builtinLt},
	{Name: ">", Arity: 4, Fn: builtinGt},
	{Name: "cat", Arity: 2, Fn: builtinCat},
	{Name: "at", Arity: 2, Fn: builtinAt},
	{Name: "join", Arity: 2, Fn: builtinJoin},
	{Name: "len", Arity: 1, Fn: builtinLen},
	{Name: "num", Arity: 1, Fn: builtinNum},
	{Name: "str", Arity: 1, Fn: builtinStr},
	{Name: "get", Arity: 1, Fn: builtinGet},
	{Name: "print", Arity: 1, Fn: builtinPrint},
	{Name: "do", Arity: 2, Fn: builtinDo},
}

// typeError builds the mismatch diagnostic raised when a builtin receives
// an operand of the wrong kind.
func typeError(name string, want, got ValueKind) error {
	return ErrTypeMismatch.
		detail("expected type of " + want.String() +
			"; received type of " + got.String()).
		With(slog.String("builtin", name))
}

func forceNumber(in *Interp, t *Thunk, name string) (float64, error) {
	v, err := t.Force(in)
	if err != nil {
		return 0, err
	}

	n, ok := v.(Number)
	if !ok {
		return 0, typeError(name, ValueNumber, v.Kind())
	}

	return float64(n), nil
}

func forceString(in *Interp, t *Thunk, name string) (string, error) {
	v, err := t.Force(in)
	if err != nil {
		return "", err
	}

	s, ok := v.(String)
	if !ok {
		return "", typeError(name, ValueString, v.Kind())
	}

	return string(s), nil
}

func builtinAdd(in *Interp, args []*Thunk) (Value, error) {
	return numericOp(in, args, "+", func(a, b float64) (float64, error) {
		return a + b, nil
	})
}

func builtinSub(in *Interp, args []*Thunk) (Value, error) {
	return numericOp(in, args, "-", func(a, b float64) (float64, error) {
		return a - b, nil
	})
}

func builtinMul(in *Interp, args []*Thunk) (Value, error) {
	return numericOp(in, args, "*", func(a, b float64) (float64, error) {
		return a * b, nil
	})
}

func builtinDiv(in *Interp, args []*Thunk) (Value, error) {
	return numericOp(in, args, "/", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero.With(slog.String("builtin", "/"))
		}

		return a / b, nil
	})
}

func builtinMod(in *Interp, args []*Thunk) (Value, error) {
	return numericOp(in, args, "%", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero.With(slog.String("builtin", "%"))
		}

		return math.Mod(a, b), nil
	})
}

func numericOp(
	in *Interp, args []*Thunk, name string,
	op func(a, b float64) (float64, error),
) (Value, error) {
	a, err := forceNumber(in, args[0], name)
	if err != nil {
		return nil, err
	}

	b, err := forceNumber(in, args[1], name)
	if err != nil {
		return nil, err
	}

	f, err := op(a, b)
	if err != nil {
		return nil, err
	}

	return Number(f), nil
}

// builtinEq is the lazy conditional `= a b then else`: both operands are
// forced and deep-compared, then exactly one branch thunk is forced.
func builtinEq(in *Interp, args []*Thunk) (Value, error) {
	a, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	b, err := args[1].Force(in)
	if err != nil {
		return nil, err
	}

	if valueEqual(a, b) {
		return args[2].Force(in)
	}

	return args[3].Force(in)
}

func builtinLt(in *Interp, args []*Thunk) (Value, error) {
	return orderedBranch(in, args, func(cmp int) bool { return cmp < 0 })
}

func builtinGt(in *Interp, args []*Thunk) (Value, error) {
	return orderedBranch(in, args, func(cmp int) bool { return cmp > 0 })
}

// orderedBranch implements the lazy ordered conditionals. Ordering is
// defined for number-number and string-string pairs only; any other
// pairing selects the else branch.
func orderedBranch(
	in *Interp, args []*Thunk, sel func(cmp int) bool,
) (Value, error) {
	a, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	b, err := args[1].Force(in)
	if err != nil {
		return nil, err
	}

	cmp, ordered := valueCompare(a, b)

	if ordered && sel(cmp) {
		return args[2].Force(in)
	}

	return args[3].Force(in)
}

// valueEqual deep-compares two values. Numbers, strings, and none compare
// by content, lists elementwise. Functions are never equal to anything,
// including themselves.
func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)

		return ok && av == bv

	case String:
		bv, ok := b.(String)

		return ok && av == bv

	case None:
		_, ok := b.(None)

		return ok

	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}

		return true

	default:
		return false
	}
}

// valueCompare orders two values when both are numbers or both are
// strings, reporting -1, 0, or +1. Any other pairing is unordered.
func valueCompare(a, b Value) (cmp int, ordered bool) {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return 0, false
		}

		switch {
		case float64(av) < float64(bv):
			return -1, true
		case float64(av) > float64(bv):
			return 1, true
		default:
			return 0, true
		}

	case String:
		bv, ok := b.(String)
		if !ok {
			return 0, false
		}

		return strings.Compare(string(av), string(bv)), true

	default:
		return 0, false
	}
}

func builtinCat(in *Interp, args []*Thunk) (Value, error) {
	a, err := forceString(in, args[0], "cat")
	if err != nil {
		return nil, err
	}

	b, err := forceString(in, args[1], "cat")
	if err != nil {
		return nil, err
	}

	return String(a + b), nil
}

// builtinAt indexes a string (by rune) or a list. The index is truncated
// to an integer; out-of-range indices are an error.
func builtinAt(in *Interp, args []*Thunk) (Value, error) {
	v, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	f, err := forceNumber(in, args[1], "at")
	if err != nil {
		return nil, err
	}

	i := int(f)

	switch sv := v.(type) {
	case String:
		runes := []rune(string(sv))
		if i < 0 || i >= len(runes) {
			return nil, indexError("at", i, len(runes))
		}

		return String(runes[i]), nil

	case List:
		if i < 0 || i >= len(sv) {
			return nil, indexError("at", i, len(sv))
		}

		return sv[i], nil

	default:
		return nil, typeError("at", ValueList, v.Kind())
	}
}

func indexError(name string, index, length int) error {
	return ErrIndexOutOfRange.
		detail("index " + strconv.Itoa(index) +
			" exceeds bounds of length " + strconv.Itoa(length)).
		With(slog.String("builtin", name))
}

// builtinJoin concatenates two lists or two strings into a new value.
func builtinJoin(in *Interp, args []*Thunk) (Value, error) {
	a, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	b, err := args[1].Force(in)
	if err != nil {
		return nil, err
	}

	switch av := a.(type) {
	case List:
		bv, ok := b.(List)
		if !ok {
			return nil, typeError("join", ValueList, b.Kind())
		}

		joined := make(List, 0, len(av)+len(bv))
		joined = append(joined, av...)
		joined = append(joined, bv...)

		return joined, nil

	case String:
		bv, ok := b.(String)
		if !ok {
			return nil, typeError("join", ValueString, b.Kind())
		}

		return String(string(av) + string(bv)), nil

	default:
		return nil, typeError("join", ValueList, a.Kind())
	}
}

// builtinLen measures a string in runes or a list in elements.
func builtinLen(in *Interp, args []*Thunk) (Value, error) {
	v, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	switch sv := v.(type) {
	case String:
		return Number(utf8.RuneCountInString(string(sv))), nil

	case List:
		return Number(len(sv)), nil

	default:
		return nil, typeError("len", ValueList, v.Kind())
	}
}

func builtinNum(in *Interp, args []*Thunk) (Value, error) {
	s, err := forceString(in, args[0], "num")
	if err != nil {
		return nil, err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, ErrNumberParse.
			detail("`" + s + "`").
			With(slog.String("builtin", "num"))
	}

	return Number(f), nil
}

func builtinStr(in *Interp, args []*Thunk) (Value, error) {
	f, err := forceNumber(in, args[0], "str")
	if err != nil {
		return nil, err
	}

	return String(formatNumber(f)), nil
}

// builtinGet reads one line from the interpreter's input stream, with the
// trailing newline removed. The argument must force to none.
func builtinGet(in *Interp, args []*Thunk) (Value, error) {
	v, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	if _, ok := v.(None); !ok {
		return nil, typeError("get", ValueNone, v.Kind())
	}

	line, err := in.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, ErrReadInput.Wrap(err).With(slog.String("builtin", "get"))
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return String(line), nil
}

func builtinPrint(in *Interp, args []*Thunk) (Value, error) {
	v, err := args[0].Force(in)
	if err != nil {
		return nil, err
	}

	if _, err := io.WriteString(in.stdout, Display(v)+"\n"); err != nil {
		return nil, WrapError(err)
	}

	return None{}, nil
}

// builtinDo sequences two evaluations: force the first for its effects,
// discard it, and return the second.
func builtinDo(in *Interp, args []*Thunk) (Value, error) {
	if _, err := args[0].Force(in); err != nil {
		return nil, err
	}

	return args[1].Force(in)
}
