package cmd

import (
	"context"

	"github.com/limelang/lime/cli/cmd/repl"
	"github.com/limelang/lime/log"
)

// Repl starts an interactive session with completion and history.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cacheDir := "."
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, cacheDir, log.Default())
}
