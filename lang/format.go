package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Display renders a value the way the interpreter prints it: numbers in
// shortest decimal form, strings raw, lists bracketed with string elements
// quoted, none as (), closures as lambda syntax.
func Display(v Value) string {
	switch val := v.(type) {
	case Number:
		return formatNumber(float64(val))

	case String:
		return string(val)

	case List:
		var buf strings.Builder

		buf.WriteByte('[')

		for i, elem := range val {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(displayElem(elem))
		}

		buf.WriteByte(']')

		return buf.String()

	case None:
		return "()"

	case *Closure:
		if val.Param == "" {
			return `\.` + val.Body.String()
		}

		return `\` + val.Param + "." + val.Body.String()

	case *Builtin:
		return "<builtin " + val.Name + ">"

	default:
		return "<unknown>"
	}
}

// displayElem renders a list element, quoting nested strings so that
// [1, "a"] round-trips through the reader.
func displayElem(v Value) string {
	if s, ok := v.(String); ok {
		return quoteString(string(s))
	}

	return Display(v)
}

// formatNumber renders f in the shortest decimal form that reads back
// exactly, without exponent notation. Integral values print with no
// fractional part.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Format writes the program in native syntax to the writer, one statement
// per line. The indent parameter is accepted for interface symmetry with
// the structured formats but native syntax is line-oriented and ignores it.
func (prog *Program) Format(_ context.Context, w io.Writer, _ int) error {
	for _, stmt := range prog.Stmts {
		if _, err := fmt.Fprintln(w, stmt.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program's syntax tree as JSON to the writer.
func (prog *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(
			prog.astMap(), "", strings.Repeat(" ", indent),
		)
	} else {
		jsonData, err = json.Marshal(prog.astMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's syntax tree as YAML to the writer.
func (prog *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, prog.astMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatAST writes an indented tree dump of the program's syntax to the
// writer, one node per line.
func (prog *Program) FormatAST(_ context.Context, w io.Writer, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	for _, stmt := range prog.Stmts {
		if err := dumpNode(w, stmt, indent, 0); err != nil {
			return err
		}
	}

	return nil
}

// astMap converts the program to a generic structure for the marshaling
// formats.
func (prog *Program) astMap() any {
	stmts := make([]any, len(prog.Stmts))
	for i, stmt := range prog.Stmts {
		stmts[i] = stmt.astMap()
	}

	return map[string]any{"statements": stmts}
}

func dumpNode(w io.Writer, node Stmt, indent, depth int) error {
	pad := strings.Repeat(" ", depth*indent)

	line := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, pad+format+"\n", args...)

		return err
	}

	switch n := node.(type) {
	case *Bind:
		if err := line("bind %s", n.Name); err != nil {
			return err
		}

		return dumpNode(w, n.Expr, indent, depth+1)

	case *Lit:
		return line("lit %s", Display(n.Val))

	case *ListLit:
		if err := line("list (%d)", len(n.Elems)); err != nil {
			return err
		}

		for _, elem := range n.Elems {
			if err := dumpNode(w, elem, indent, depth+1); err != nil {
				return err
			}
		}

		return nil

	case *Ident:
		return line("ident %s", n.Name)

	case *Lambda:
		param := n.Param
		if param == "" {
			param = "_"
		}

		if err := line("lambda %s", param); err != nil {
			return err
		}

		return dumpNode(w, n.Body, indent, depth+1)

	case *Apply:
		if err := line("apply"); err != nil {
			return err
		}

		if err := dumpNode(w, n.Fn, indent, depth+1); err != nil {
			return err
		}

		return dumpNode(w, n.Arg, indent, depth+1)

	default:
		return line("<unknown>")
	}
}
