package rules

import (
	"fmt"

	"github.com/reusee/turing/tapes"
)

// State identifies a node of one program's transition graph.
// Numbers have no meaning across programs.
type State int

// NoState is the Next of a Halt rule. It is never applied.
const NoState State = -1

type Move int8

const (
	Left  Move = -1
	Halt  Move = 0
	Right Move = 1
)

func (m Move) Valid() bool {
	return m == Left || m == Halt || m == Right
}

// Delta is the head offset of a move.
func (m Move) Delta() int {
	return int(m)
}

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	case Halt:
		return "H"
	}
	return fmt.Sprintf("Move(%d)", int8(m))
}

type Key struct {
	State  State
	Symbol tapes.Cell
}

func (k Key) String() string {
	return fmt.Sprintf("%d,%v", k.State, k.Symbol)
}

// Rule is the action taken on a key.
// For a Halt move, Next is NoState and the machine stays in its current state.
type Rule struct {
	Write tapes.Cell
	Move  Move
	Next  State
}

type Entry struct {
	Key
	Rule
}

func (e Entry) String() string {
	next := "-"
	if e.Move != Halt {
		next = fmt.Sprint(e.Next)
	}
	return fmt.Sprintf("%v -> %v,%v,%s", e.Key, e.Write, e.Move, next)
}

func (e Entry) validate() error {
	switch {
	case e.State < 0:
		return fmt.Errorf("%v: negative state: %w", e, ErrInvalidRule)
	case !e.Symbol.Valid():
		return fmt.Errorf("%v: read symbol: %w", e, ErrInvalidRule)
	case !e.Write.Valid():
		return fmt.Errorf("%v: write symbol: %w", e, ErrInvalidRule)
	case !e.Move.Valid():
		return fmt.Errorf("%v: move: %w", e, ErrInvalidRule)
	case e.Move == Halt && e.Next != NoState:
		return fmt.Errorf("%v: halt rule with next state %d: %w", e, e.Next, ErrInvalidRule)
	case e.Move != Halt && e.Next < 0:
		return fmt.Errorf("%v: negative next state: %w", e, ErrInvalidRule)
	}
	return nil
}
