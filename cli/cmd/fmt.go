package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/limelang/lime/lang"
)

// Fmt parses input and re-emits it in the chosen representation.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical lime syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format the syntax tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the syntax tree as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree dump."`
}

// openSource opens the named script, with "-" selecting stdin.
func openSource(source string) (io.ReadCloser, error) {
	if source == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, ErrOpenSource.
			With(slog.String("source", source)).
			Wrap(err)
	}

	return file, nil
}

// parseSource parses the named script through the shared program cache.
func parseSource(source string) (*lang.Program, error) {
	file, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return lang.ParseStream(file)
}

// Native reformats input in canonical lime syntax, one statement per line
// with application grouping made explicit.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native subcommand.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(f.Source)
	if err != nil {
		return err
	}

	if err := prog.Format(ctx, os.Stdout, f.Indent); err != nil {
		return ErrFormat.
			With(slog.String("format", "native")).
			Wrap(err)
	}

	return nil
}

// JSON emits the parsed syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json subcommand.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(j.Source)
	if err != nil {
		return err
	}

	if err := prog.FormatJSON(ctx, os.Stdout, j.Indent); err != nil {
		return ErrFormat.
			With(slog.String("format", "json")).
			Wrap(err)
	}

	return nil
}

// YAML emits the parsed syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml subcommand.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(y.Source)
	if err != nil {
		return err
	}

	if err := prog.FormatYAML(ctx, os.Stdout, y.Indent); err != nil {
		return ErrFormat.
			With(slog.String("format", "yaml")).
			Wrap(err)
	}

	return nil
}

// AST emits an indented dump of the parsed syntax tree.
type AST struct {
	Indent int `default:"2" help:"Indent width per tree level" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast subcommand.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(a.Source)
	if err != nil {
		return err
	}

	if err := prog.FormatAST(ctx, os.Stdout, a.Indent); err != nil {
		return ErrFormat.
			With(slog.String("format", "ast")).
			Wrap(err)
	}

	return nil
}
