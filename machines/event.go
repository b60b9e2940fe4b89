package machines

import (
	"fmt"

	"github.com/reusee/turing/tapes"
)

type EventKind uint8

const (
	WriteEvent EventKind = iota + 1
	MoveEvent
	HaltEvent
)

func (k EventKind) String() string {
	switch k {
	case WriteEvent:
		return "write"
	case MoveEvent:
		return "move"
	case HaltEvent:
		return "halt"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a notification produced by a step, in the order the step produced it.
type Event struct {
	Kind    EventKind
	Index   int
	Value   tapes.Cell
	Outcome Outcome
}

func (e Event) String() string {
	switch e.Kind {
	case WriteEvent:
		return fmt.Sprintf("write %d %v", e.Index, e.Value)
	case MoveEvent:
		return fmt.Sprintf("move %d", e.Index)
	case HaltEvent:
		return fmt.Sprintf("halt %v", e.Outcome.Kind)
	}
	return e.Kind.String()
}
