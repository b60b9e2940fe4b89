package tapes

import "fmt"

// Encode lays out a and b the way the programs expect them:
// a start Blank, a Marks, one Separator, b Marks.
func Encode(a, b int) []Cell {
	cells := make([]Cell, 0, a+b+2)
	cells = append(cells, Blank)
	for range a {
		cells = append(cells, Mark)
	}
	cells = append(cells, Separator)
	for range b {
		cells = append(cells, Mark)
	}
	return cells
}

func CountMarks(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c == Mark {
			n++
		}
	}
	return n
}

// Decode reads a result tape of the form Blank* Mark* Blank*.
func Decode(cells []Cell) (int, error) {
	const (
		leading = iota
		marks
		trailing
	)
	phase := leading
	n := 0
	for i, c := range cells {
		switch {
		case c == Separator:
			return 0, wrap(fmt.Errorf("separator at %d: %w", i, ErrMalformed))
		case c == Mark && phase == trailing:
			return 0, wrap(fmt.Errorf("mark after blank at %d: %w", i, ErrMalformed))
		case c == Mark:
			phase = marks
			n++
		case phase == marks:
			phase = trailing
		}
	}
	return n, nil
}
