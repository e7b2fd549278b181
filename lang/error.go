package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values). Every failure mode of the lexer,
// parser, and evaluator surfaces as one of these, optionally annotated with
// position and attribute context.
var (
	// Lexer.
	ErrMalformedToken     = NewError("token error")
	ErrUnterminatedString = NewError("unterminated string literal")
	ErrInvalidEscape      = NewError("invalid escape code")
	ErrMalformedNumber    = NewError("malformed number literal")

	// Parser.
	ErrUnexpectedToken     = NewError("unexpected token")
	ErrUnexpectedEndOfLine = NewError("unexpected end of line")

	// Evaluator.
	ErrUnboundIdentifier = NewError("unbound identifier")
	ErrNotCallable       = NewError("value is not callable")
	ErrTypeMismatch      = NewError("type mismatch")
	ErrDivisionByZero    = NewError("division by zero")
	ErrIndexOutOfRange   = NewError("index out of range")
	ErrNumberParse       = NewError("cannot parse number")
	ErrRecursionLimit    = NewError("recursion limit exceeded")

	// Driver.
	ErrReadInput = NewError("failed to read input")
)

// Error represents an interpreter error with optional structured logging
// attributes and a source position. It implements both error and
// slog.LogValuer.
type Error struct {
	msg   string
	info  string // extra human-readable detail
	err   error  // wrapped error (for errors.Unwrap)
	attrs []slog.Attr
	line  int // 1-based source line, 0 when unknown
	col   int // 1-based source column, 0 when unknown
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.info != "" {
		part = append(part, e.info)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	msg := strings.Join(part, ": ")

	if e.line > 0 {
		msg += " at (ln: " + strconv.Itoa(e.line)

		// Errors surfaced while forcing a thunk bound on an earlier line
		// carry only that line, not a column.
		if e.col > 0 {
			msg += ", col: " + strconv.Itoa(e.col)
		}

		msg += ")"
	}

	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
// Derived errors share the sentinel's message, so comparing messages keeps
// errors.Is working across at/detail/With clones.
func (e *Error) Is(target error) bool {
	t := &Error{}
	if !errors.As(target, &t) {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.info != "" {
		attrs = append(attrs, slog.String("detail", e.info))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))

		if e.col > 0 {
			attrs = append(attrs, slog.Int("col", e.col))
		}
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.err = err

	return &clone
}

// With adds attributes to the error for structured logging.
// A new Error instance is returned to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	clone := *e
	clone.attrs = make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, e.attrs...)
	clone.attrs = append(clone.attrs, attrs...)

	return &clone
}

// Line returns the 1-based source line of the error, or 0 when unknown.
func (e *Error) Line() int { return e.line }

// Col returns the 1-based source column of the error, or 0 when unknown.
func (e *Error) Col() int { return e.col }

// at returns a copy of the error annotated with a source position.
func (e *Error) at(line, col int) *Error {
	clone := *e
	clone.line = line
	clone.col = col

	return &clone
}

// detail returns a copy of the error with extra human-readable context.
func (e *Error) detail(info string) *Error {
	clone := *e
	clone.info = info

	return &clone
}

// Snippet renders the offending source line with a caret marker pointing at
// the error column, or "" when the error carries no position or the line is
// out of bounds.
func Snippet(err error, source string) string {
	e := &Error{}
	if !errors.As(err, &e) || e.line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.line > len(lines) {
		return ""
	}

	text := lines[e.line-1]

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.line))
	buf.WriteString(" | ")
	buf.WriteString(text)
	buf.WriteRune('\n')

	// 2 leading spaces + " | " surrounding the line number.
	padding := strings.Repeat(" ", len(strconv.Itoa(e.line))+5)
	if e.col > 0 {
		padding += strings.Repeat(" ", e.col-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}
