package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/debugs"
	"github.com/reusee/turing/feeds"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/modes"
	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapeconfigs"
	"github.com/reusee/turing/tapes"
)

var (
	trace     = cmds.Switch("-trace")
	showRules = cmds.Switch("-rules")
	tapAfter  = cmds.Switch("-tap")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	// providers read config, so it must be valid before they run
	scope.Call(func(
		loader configs.Loader,
	) {
		ce(loader.Validate())
	})

	var code int
	scope.Call(func(
		logger logs.Logger,
		programs rules.Programs,
		initial tapeconfigs.InitialTape,
		opName tapeconfigs.OperationName,
		feedAddr tapeconfigs.FeedAddr,
		expectations tapeconfigs.Expectations,
		newMachine machines.NewMachine,
		newFeed feeds.NewFeed,
		serve feeds.Serve,
		tap debugs.Tap,
	) {
		op, err := rules.ParseOperation(string(opName))
		ce(err)

		if *showRules {
			table, err := programs.Table(op)
			ce(err)
			printRules(os.Stdout, op, table)
			return
		}

		cells, err := tapes.Parse(string(initial))
		ce(err)

		var observers []machines.Observer
		if *trace {
			observers = append(observers, traceTo(os.Stdout))
		}
		if feedAddr != "" {
			feed := newFeed()
			defer feed.Close()
			_, err := serve(ctx, string(feedAddr), feed)
			ce(err)
			observers = append(observers, feed)
		}

		m, err := newMachine(observers...)
		ce(err)
		ce(m.Load(cells))
		ce(m.Start(ctx, op))

		outcome, runErr := m.RunToCompletion(ctx)
		if ctx.Err() != nil {
			logger.Warn("run interrupted", "steps", m.Snapshot().Steps)
			m.Reset()
			code = 130
			return
		}

		snapshot := m.Snapshot()
		fmt.Printf("%v %s\n", op, tapes.Format(snapshot.Cells))
		fmt.Printf("outcome: %v, steps: %d\n", outcome, snapshot.Steps)
		if n, err := tapes.Decode(snapshot.Cells); err == nil {
			fmt.Printf("result: %d\n", n)
		}
		if note := outcomeNote(op, snapshot); note != "" {
			fmt.Println(note)
		}

		if *tapAfter {
			tap(ctx, "halted", snapshot)
		}

		if len(expectations) == 0 {
			if runErr != nil {
				code = 1
			}
			return
		}
		for _, expr := range expectations {
			if err := debugs.Expect(snapshot, expr); err != nil {
				fmt.Fprintln(os.Stderr, err)
				code = 1
			}
		}
	})

	os.Exit(code)
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// outcomeNote explains an outcome that is normal for the program despite its kind.
func outcomeNote(op rules.Operation, snapshot machines.Snapshot) string {
	outcome := snapshot.Outcome
	if op != rules.Subtract ||
		outcome.Kind != machines.ErrorHalt ||
		!errors.Is(outcome.Err, machines.ErrHeadOutOfBounds) ||
		snapshot.Head != -1 {
		return ""
	}
	if _, err := tapes.Decode(snapshot.Cells); err != nil {
		return ""
	}
	return "note: subtraction always leaves the tape past cell 0 after writing its result, " +
		"the error outcome is expected (use -expect to check the result and exit 0)"
}

func traceTo(w io.Writer) machines.Observer {
	return machines.ObserverFuncs{
		CellWritten: func(index int, value tapes.Cell) {
			fmt.Fprintf(w, "write %d %v\n", index, value)
		},
		HeadMoved: func(index int) {
			fmt.Fprintf(w, "move %d\n", index)
		},
		Halted: func(outcome machines.Outcome) {
			fmt.Fprintf(w, "halt %v\n", outcome)
		},
	}
}

func printRules(w io.Writer, op rules.Operation, table *rules.Table) {
	fmt.Fprintf(w, "%v\n", op)
	for _, entry := range table.Entries() {
		fmt.Fprintf(w, "  %v\n", entry)
	}
	if undefined := table.Undefined(); len(undefined) > 0 {
		fmt.Fprintf(w, "undefined (no-rule halt): %v\n", undefined)
	}
}
