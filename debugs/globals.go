package debugs

import (
	"github.com/reusee/starlarkutil"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/tapes"
	"go.starlark.net/starlark"
)

// Globals exposes a snapshot to starlark code.
//
//	tape       text form of the tape
//	cells      list of cell values
//	head, state, steps
//	status     idle, running or halted
//	operation  add, subtract or ""
//	outcome    normal, no-rule, error or none
//	error      error message of an error outcome, or None
//	marks      number of marks on the tape
//	result     decoded unary result, or None if the tape is not of that form
//	cell(i)    value of cell i, -1 outside the tape
func Globals(snapshot machines.Snapshot) starlark.StringDict {
	cells := make([]starlark.Value, len(snapshot.Cells))
	for i, c := range snapshot.Cells {
		cells[i] = starlark.MakeInt(int(c))
	}

	operation := ""
	if snapshot.Operation != 0 {
		operation = snapshot.Operation.String()
	}

	var errValue starlark.Value = starlark.None
	if snapshot.Outcome.Err != nil {
		errValue = starlark.String(snapshot.Outcome.Err.Error())
	}

	var result starlark.Value = starlark.None
	if n, err := tapes.Decode(snapshot.Cells); err == nil {
		result = starlark.MakeInt(n)
	}

	snapshotCells := snapshot.Cells
	return starlark.StringDict{
		"tape":      starlark.String(tapes.Format(snapshot.Cells)),
		"cells":     starlark.NewList(cells),
		"head":      starlark.MakeInt(snapshot.Head),
		"state":     starlark.MakeInt(int(snapshot.State)),
		"steps":     starlark.MakeInt(snapshot.Steps),
		"status":    starlark.String(snapshot.Status.String()),
		"operation": starlark.String(operation),
		"outcome":   starlark.String(snapshot.Outcome.Kind.String()),
		"error":     errValue,
		"marks":     starlark.MakeInt(tapes.CountMarks(snapshot.Cells)),
		"result":    result,
		"cell": starlarkutil.MakeFunc("cell", func(i int) int {
			if i < 0 || i >= len(snapshotCells) {
				return -1
			}
			return int(snapshotCells[i])
		}),
	}
}
