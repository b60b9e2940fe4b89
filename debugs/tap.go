package debugs

import (
	"context"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/tapes"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin over the globals of a snapshot.
type Tap func(ctx context.Context, what string, snapshot machines.Snapshot)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, snapshot machines.Snapshot) {
		logger.InfoContext(ctx, "tap: "+what,
			"status", snapshot.Status,
			"tape", tapes.Format(snapshot.Cells),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, Globals(snapshot))
	}
}
