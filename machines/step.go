package machines

import (
	"fmt"

	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapes"
)

// RunContext is the state of one run.
type RunContext struct {
	Head    int
	State   rules.State
	Running bool
}

// NewRun is the context every run starts from.
func NewRun() RunContext {
	return RunContext{
		Head:    0,
		State:   0,
		Running: true,
	}
}

type Reader interface {
	Len() int
	Read(index int) (tapes.Cell, error)
}

type Writer interface {
	Write(index int, value tapes.Cell) error
}

// Step computes one transition without touching the tape.
// The returned events describe the writes and notifications the caller must apply.
// A head outside the tape halts the run with an error outcome and returns an error wrapping ErrHeadOutOfBounds.
func Step(tape Reader, run RunContext, table *rules.Table) (RunContext, []Event, error) {
	if !run.Running {
		return run, nil, wrap(ErrNotRunning)
	}

	if run.Head < 0 || run.Head >= tape.Len() {
		run.Running = false
		err := wrap(fmt.Errorf("head at %d, tape length %d: %w", run.Head, tape.Len(), ErrHeadOutOfBounds))
		return run, []Event{halt(ErrorHalt, err)}, err
	}
	symbol, err := tape.Read(run.Head)
	if err != nil {
		run.Running = false
		err = wrap(err)
		return run, []Event{halt(ErrorHalt, err)}, err
	}

	rule, ok := table.Lookup(run.State, symbol)
	if !ok {
		run.Running = false
		return run, []Event{halt(NoRuleHalt, nil)}, nil
	}

	events := []Event{
		{
			Kind:  WriteEvent,
			Index: run.Head,
			Value: rule.Write,
		},
	}

	if rule.Move == rules.Halt {
		// Next of a halt rule is not applied
		run.Running = false
		return run, append(events, halt(NormalHalt, nil)), nil
	}

	run.Head += rule.Move.Delta()
	run.State = rule.Next
	if run.Head >= 0 && run.Head < tape.Len() {
		events = append(events, Event{
			Kind:  MoveEvent,
			Index: run.Head,
		})
	}
	return run, events, nil
}

func halt(kind OutcomeKind, err error) Event {
	return Event{
		Kind: HaltEvent,
		Outcome: Outcome{
			Kind: kind,
			Err:  err,
		},
	}
}

// Apply performs events in order: writes go to the tape, moves and halts go to the observer.
// It stops before the next event once live reports false. A nil live never stops.
func Apply(tape Writer, events []Event, observer Observer, live func() bool) error {
	for _, event := range events {
		if live != nil && !live() {
			return nil
		}
		switch event.Kind {
		case WriteEvent:
			if err := tape.Write(event.Index, event.Value); err != nil {
				return err
			}
		case MoveEvent:
			observer.OnHeadMoved(event.Index)
		case HaltEvent:
			observer.OnHalted(event.Outcome)
		}
	}
	return nil
}
