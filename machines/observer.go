package machines

import (
	"strings"

	"github.com/reusee/turing/tapes"
)

// Observer is the presentation side of a machine.
type Observer interface {
	OnCellWritten(index int, value tapes.Cell)
	OnHeadMoved(index int)
	OnHalted(outcome Outcome)
}

type Observers []Observer

var _ Observer = Observers(nil)

func (o Observers) OnCellWritten(index int, value tapes.Cell) {
	for _, observer := range o {
		observer.OnCellWritten(index, value)
	}
}

func (o Observers) OnHeadMoved(index int) {
	for _, observer := range o {
		observer.OnHeadMoved(index)
	}
}

func (o Observers) OnHalted(outcome Outcome) {
	for _, observer := range o {
		observer.OnHalted(outcome)
	}
}

// ObserverFuncs adapts functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	CellWritten func(index int, value tapes.Cell)
	HeadMoved   func(index int)
	Halted      func(outcome Outcome)
}

var _ Observer = ObserverFuncs{}

func (o ObserverFuncs) OnCellWritten(index int, value tapes.Cell) {
	if o.CellWritten != nil {
		o.CellWritten(index, value)
	}
}

func (o ObserverFuncs) OnHeadMoved(index int) {
	if o.HeadMoved != nil {
		o.HeadMoved(index)
	}
}

func (o ObserverFuncs) OnHalted(outcome Outcome) {
	if o.Halted != nil {
		o.Halted(outcome)
	}
}

// Recorder keeps every notification as an event.
type Recorder struct {
	Events []Event
}

var _ Observer = new(Recorder)

func (r *Recorder) OnCellWritten(index int, value tapes.Cell) {
	r.Events = append(r.Events, Event{
		Kind:  WriteEvent,
		Index: index,
		Value: value,
	})
}

func (r *Recorder) OnHeadMoved(index int) {
	r.Events = append(r.Events, Event{
		Kind:  MoveEvent,
		Index: index,
	})
}

func (r *Recorder) OnHalted(outcome Outcome) {
	r.Events = append(r.Events, Event{
		Kind:    HaltEvent,
		Outcome: outcome,
	})
}

func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, event := range r.Events {
		if event.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

func (r *Recorder) String() string {
	lines := make([]string, 0, len(r.Events))
	for _, event := range r.Events {
		lines = append(lines, event.String())
	}
	return strings.Join(lines, "\n")
}
