package debugs

import (
	"errors"
	"fmt"

	"github.com/reusee/turing/machines"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var ErrExpectation = errors.New("expectation failed")

func Eval(snapshot machines.Snapshot, expr string) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "eval",
	}
	return starlark.EvalOptions(&syntax.FileOptions{}, thread, "<expr>", expr, Globals(snapshot))
}

// Expect fails with ErrExpectation unless expr is true for snapshot.
func Expect(snapshot machines.Snapshot, expr string) error {
	value, err := Eval(snapshot, expr)
	if err != nil {
		return err
	}
	if !value.Truth() {
		return fmt.Errorf("%s: %w", expr, ErrExpectation)
	}
	return nil
}
