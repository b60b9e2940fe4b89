package tapes

import "fmt"

// Cell is the value of one tape position.
type Cell uint8

const (
	Blank Cell = iota
	Mark
	Separator

	numCells
)

func (c Cell) Valid() bool {
	return c < numCells
}

// Next cycles Blank, Mark, Separator, then back to Blank.
func (c Cell) Next() Cell {
	return (c + 1) % numCells
}

func (c Cell) String() string {
	switch c {
	case Blank:
		return "_"
	case Mark:
		return "1"
	case Separator:
		return "S"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}
