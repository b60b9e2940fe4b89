package tapes

import (
	"fmt"
	"slices"
)

// Tape is a fixed length sequence of cells.
// Every change goes through the registered watchers, in registration order.
type Tape struct {
	cells    []Cell
	watchers []func(index int, value Cell)
}

func New(n int) (*Tape, error) {
	if n < 1 {
		return nil, wrap(fmt.Errorf("tape length %d: %w", n, ErrOutOfBounds))
	}
	return &Tape{
		cells: make([]Cell, n),
	}, nil
}

func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) Watch(fn func(index int, value Cell)) {
	t.watchers = append(t.watchers, fn)
}

func (t *Tape) check(index int) error {
	if index < 0 || index >= len(t.cells) {
		return wrap(fmt.Errorf("index %d, length %d: %w", index, len(t.cells), ErrOutOfBounds))
	}
	return nil
}

func (t *Tape) Read(index int) (Cell, error) {
	if err := t.check(index); err != nil {
		return Blank, err
	}
	return t.cells[index], nil
}

func (t *Tape) Write(index int, value Cell) error {
	if err := t.check(index); err != nil {
		return err
	}
	if !value.Valid() {
		return wrap(fmt.Errorf("write %d at %d: %w", value, index, ErrInvalidCell))
	}
	t.cells[index] = value
	for _, fn := range t.watchers {
		fn(index, value)
	}
	return nil
}

// Toggle advances the cell at index to its next value, the way an operator edits the tape.
func (t *Tape) Toggle(index int) (Cell, error) {
	value, err := t.Read(index)
	if err != nil {
		return value, err
	}
	value = value.Next()
	return value, t.Write(index, value)
}

func (t *Tape) Reset() {
	for i := range t.cells {
		// index is always in range
		_ = t.Write(i, Blank)
	}
}

// Load replaces the tape content with cells, padding with Blank.
func (t *Tape) Load(cells []Cell) error {
	if len(cells) > len(t.cells) {
		return wrap(fmt.Errorf("%d cells, tape length %d: %w", len(cells), len(t.cells), ErrTooLong))
	}
	for _, c := range cells {
		if !c.Valid() {
			return wrap(fmt.Errorf("load %d: %w", c, ErrInvalidCell))
		}
	}
	for i := range t.cells {
		value := Blank
		if i < len(cells) {
			value = cells[i]
		}
		_ = t.Write(i, value)
	}
	return nil
}

func (t *Tape) Cells() []Cell {
	return slices.Clone(t.cells)
}

func (t *Tape) String() string {
	return Format(t.cells)
}
