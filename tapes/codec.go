package tapes

import (
	"fmt"
	"strings"
)

// Parse reads the text form of a tape.
// Blank is '_', '0' or '.', Mark is '1', Separator is 'S', 's', '2' or '|'. Spaces are ignored.
func Parse(str string) ([]Cell, error) {
	cells := make([]Cell, 0, len(str))
	for i, r := range str {
		switch r {
		case '_', '0', '.':
			cells = append(cells, Blank)
		case '1':
			cells = append(cells, Mark)
		case 'S', 's', '2', '|':
			cells = append(cells, Separator)
		case ' ', '\t':
		default:
			return nil, wrap(fmt.Errorf("%q at %d: %w", r, i, ErrInvalidSymbol))
		}
	}
	return cells, nil
}

func Format(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.String())
	}
	return b.String()
}
