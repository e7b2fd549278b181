package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/readahead"

	"github.com/limelang/lime/lang"
	"github.com/limelang/lime/log"
)

// Run interprets one or more source files against a single persistent
// top-level environment, printing each expression statement's value.
type Run struct {
	Source []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`

	KeepGoing bool `help:"Continue to the next statement after an error" short:"k"`
	MaxDepth  int  `default:"10000" help:"Evaluation recursion limit"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := r.input(ctx)
	if err != nil {
		return err
	}

	// Pre-fetch file data concurrently with evaluation.
	ra := readahead.NewReader(input)
	defer ra.Close()

	interp := lang.New(
		lang.WithLogger(log.Default()),
		lang.WithKeepGoing(r.KeepGoing),
		lang.WithMaxDepth(r.MaxDepth),
	)

	if err := interp.Run(ctx, ra); err != nil {
		return ErrInterpret.
			With(slog.Int("sources", len(r.Source))).
			Wrap(err)
	}

	return nil
}

// input combines the command's positional sources, falling back to sources
// named with the top-level flag, then to stdin.
func (r *Run) input(ctx context.Context) (io.Reader, error) {
	if len(r.Source) > 0 {
		if srcs := buildSourceFiles(r.Source); srcs != nil {
			return srcs, nil
		}

		return nil, ErrNoSource.
			With(slog.Any("source", r.Source))
	}

	if srcs := sourceFilesFrom(ctx); srcs != nil && !srcs.IsZero() {
		return srcs, nil
	}

	return os.Stdin, nil
}
