package tapeconfigs

import (
	"fmt"
	"time"

	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/vars"
)

const DefaultTapeLength = 21

type TapeLength int

var tapeLengthFlag = cmds.Var[int]("-length")

func (Module) TapeLength(
	loader configs.Loader,
) TapeLength {
	return TapeLength(vars.FirstNonZero(
		*tapeLengthFlag,
		configs.First[int](loader, "tape_length"),
		DefaultTapeLength,
	))
}

// StepDelay is the pause between two steps of a full run.
type StepDelay time.Duration

var stepDelayFlag = cmds.Var[time.Duration]("-delay")

func (Module) StepDelay(
	loader configs.Loader,
) StepDelay {
	if *stepDelayFlag != 0 {
		return StepDelay(*stepDelayFlag)
	}
	if str := configs.First[string](loader, "step_delay"); str != "" {
		d, err := time.ParseDuration(str)
		if err != nil {
			panic(fmt.Errorf("step_delay: %w", err))
		}
		return StepDelay(d)
	}
	return 0
}

// FeedAddr is the listen address of the event feed. Empty disables it.
type FeedAddr string

var feedAddrFlag = cmds.Var[string]("-feed")

func (Module) FeedAddr(
	loader configs.Loader,
) FeedAddr {
	return vars.FirstNonZero(
		FeedAddr(*feedAddrFlag),
		configs.First[FeedAddr](loader, "feed_addr"),
	)
}

// InitialTape is the operator-entered tape in text form.
type InitialTape string

var initialTapeFlag = cmds.Var[string]("-tape")

func (Module) InitialTape(
	loader configs.Loader,
) InitialTape {
	return vars.FirstNonZero(
		InitialTape(*initialTapeFlag),
		configs.First[InitialTape](loader, "tape"),
	)
}

type OperationName string

var operationFlag = cmds.Var[string]("-op")

func (Module) OperationName(
	loader configs.Loader,
) OperationName {
	return vars.FirstNonZero(
		OperationName(*operationFlag),
		configs.First[OperationName](loader, "operation"),
		"add",
	)
}

// Expectations are starlark expressions that must hold after a run.
// Flags replace the configured list; otherwise lists from all files are joined.
type Expectations []string

var expectFlags = cmds.Collect[string]("-expect")

func (Module) Expectations(
	loader configs.Loader,
) (ret Expectations) {
	if len(*expectFlags) > 0 {
		return append(ret, *expectFlags...)
	}
	for list, err := range configs.All[[]string](loader, "expect") {
		if err != nil {
			panic(fmt.Errorf("expect: %w", err))
		}
		ret = append(ret, list...)
	}
	return
}
