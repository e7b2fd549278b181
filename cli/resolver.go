package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/limelang/lime/lang"
)

// resolve is a [kong.ConfigurationLoader] that reads config files written
// as lime source: one top-level binding per line whose right-hand side is
// a literal. Flag names with hyphens (for example "log-level") may be
// written with underscores instead, since hyphens do not survive lime
// tokenization of an identifier followed by a number.
//
// Example config file:
//
//	log_level := "debug"
//	log_format := "text"
//	max_depth := 10000
//
// Command-line flags override config file values. Bindings whose
// right-hand side is not a literal (lambdas, applications) are ignored,
// as is the whole file when it fails to parse.
func resolve(r io.Reader) (kong.Resolver, error) {
	prog, err := lang.ParseReader(r)
	if err != nil {
		return flagValues{}, nil
	}

	values := make(flagValues)

	for _, stmt := range prog.Stmts {
		bind, ok := stmt.(*lang.Bind)
		if !ok {
			continue
		}

		if v, ok := literalValue(bind.Expr); ok {
			values[bind.Name] = v
		}
	}

	return values, nil
}

// literalValue converts a literal expression to a native value kong can
// assign to a flag. Numbers become their display strings because kong
// re-parses flag values from text.
func literalValue(expr lang.Expr) (any, bool) {
	switch e := expr.(type) {
	case *lang.Lit:
		switch v := e.Val.(type) {
		case lang.String:
			return string(v), true

		case lang.Number:
			return lang.Display(v), true

		default:
			return nil, false
		}

	case *lang.ListLit:
		elems := make([]any, 0, len(e.Elems))

		for _, el := range e.Elems {
			v, ok := literalValue(el)
			if !ok {
				return nil, false
			}

			elems = append(elems, v)
		}

		return elems, true

	default:
		return nil, false
	}
}

// flagValues implements [kong.Resolver] for lime-syntax configs.
type flagValues map[string]any

// Validate implements [kong.Resolver].
func (r flagValues) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r flagValues) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Allow the underscore spelling of hyphenated flag names.
	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
