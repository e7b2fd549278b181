package lang

import (
	"strings"
)

// Position locates an AST node in its source.
type Position struct {
	Line int
	Col  int
}

// Expr is a node of the expression tree. Trees are immutable once built and
// may be evaluated any number of times; evaluation is deterministic for a
// given environment.
type Expr interface {
	Pos() Position

	// String renders the node in canonical source syntax.
	String() string

	// astMap renders the node as a generic structure for JSON/YAML output.
	astMap() any
}

// Stmt is one top-level statement: either a [*Bind] or a bare [Expr].
type Stmt interface {
	Pos() Position
	String() string
	astMap() any
}

// Lit is a literal Number, String, or None expression.
type Lit struct {
	Val Value
	pos Position
}

// Pos implements [Expr].
func (l *Lit) Pos() Position { return l.pos }

func (l *Lit) String() string {
	if s, ok := l.Val.(String); ok {
		return quoteString(string(s))
	}

	return Display(l.Val)
}

func (l *Lit) astMap() any {
	switch v := l.Val.(type) {
	case Number:
		return map[string]any{"kind": "number", "value": float64(v)}
	case String:
		return map[string]any{"kind": "string", "value": string(v)}
	default:
		return map[string]any{"kind": "none"}
	}
}

// ListLit is an ordered sequence of element expressions.
type ListLit struct {
	Elems []Expr
	pos   Position
}

// Pos implements [Expr].
func (l *ListLit) Pos() Position { return l.pos }

func (l *ListLit) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *ListLit) astMap() any {
	elems := make([]any, len(l.Elems))
	for i, e := range l.Elems {
		elems[i] = e.astMap()
	}

	return map[string]any{"kind": "list", "elements": elems}
}

// Ident is a name resolved against the environment at evaluation time.
type Ident struct {
	Name string
	pos  Position
}

// Pos implements [Expr].
func (id *Ident) Pos() Position { return id.pos }

func (id *Ident) String() string { return id.Name }

func (id *Ident) astMap() any {
	return map[string]any{"kind": "identifier", "name": id.Name}
}

// Lambda is a single-parameter abstraction. Multi-parameter lambdas are
// parsed as nested Lambdas. An empty Param binds nothing; applying such a
// lambda discards the argument.
type Lambda struct {
	Param string
	Body  Expr
	pos   Position
}

// Pos implements [Expr].
func (l *Lambda) Pos() Position { return l.pos }

func (l *Lambda) String() string {
	return "\\" + l.Param + "." + l.Body.String()
}

func (l *Lambda) astMap() any {
	return map[string]any{
		"kind":  "lambda",
		"param": l.Param,
		"body":  l.Body.astMap(),
	}
}

// Apply is the application of a function expression to one argument
// expression. Multi-argument calls are nested left-associative Applys.
type Apply struct {
	Fn  Expr
	Arg Expr
}

// Pos implements [Expr].
func (a *Apply) Pos() Position { return a.Fn.Pos() }

func (a *Apply) String() string {
	return "(" + a.Fn.String() + " " + a.Arg.String() + ")"
}

func (a *Apply) astMap() any {
	return map[string]any{
		"kind":     "apply",
		"function": a.Fn.astMap(),
		"argument": a.Arg.astMap(),
	}
}

// Bind is a top-level binding statement: name := expr.
type Bind struct {
	Name string
	Expr Expr
	pos  Position
}

// Pos implements [Stmt].
func (b *Bind) Pos() Position { return b.pos }

func (b *Bind) String() string {
	return b.Name + " := " + b.Expr.String()
}

func (b *Bind) astMap() any {
	return map[string]any{
		"kind":  "bind",
		"name":  b.Name,
		"value": b.Expr.astMap(),
	}
}

// quoteString renders a string literal in source syntax, escaping the
// characters the lexer recognizes.
func quoteString(s string) string {
	var b strings.Builder

	b.WriteRune('"')

	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteRune('"')

	return b.String()
}
