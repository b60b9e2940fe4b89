package rules

import (
	"fmt"

	"github.com/reusee/turing/tapes"
)

const (
	b   = tapes.Blank
	m   = tapes.Mark
	sep = tapes.Separator
)

func entry(state State, read tapes.Cell, write tapes.Cell, move Move, next State) Entry {
	return Entry{
		Key: Key{
			State:  state,
			Symbol: read,
		},
		Rule: Rule{
			Write: write,
			Move:  move,
			Next:  next,
		},
	}
}

// Addition turns the separator into a mark, then erases the last mark of the second number.
func Addition() []Entry {
	return []Entry{
		entry(0, b, b, Right, 1),

		entry(1, m, m, Right, 1),
		entry(1, sep, m, Right, 2),
		entry(1, b, b, Halt, NoState),

		entry(2, m, m, Right, 2),
		entry(2, b, b, Left, 3),

		entry(3, m, b, Left, 4),
		entry(3, sep, b, Left, 4),

		entry(4, m, m, Left, 4),
		entry(4, sep, m, Left, 4),
		entry(4, b, b, Halt, NoState),
	}
}

// Subtraction erases one mark from each number per round until the second one is empty,
// then erases the separator and sweeps left.
func Subtraction() []Entry {
	return []Entry{
		entry(0, b, b, Right, 1),

		entry(1, m, m, Right, 1),
		entry(1, sep, sep, Right, 2),
		entry(1, b, b, Halt, NoState),

		entry(2, m, m, Right, 2),
		entry(2, b, b, Left, 3),

		entry(3, m, b, Left, 4),
		entry(3, sep, b, Left, 8),

		entry(4, m, m, Left, 4),
		entry(4, b, b, Left, 4),
		entry(4, sep, sep, Left, 5),

		entry(5, b, b, Left, 5),
		entry(5, m, b, Right, 6),

		entry(6, b, b, Right, 6),
		entry(6, sep, sep, Right, 2),

		entry(8, m, m, Left, 8),
		entry(8, b, b, Left, 8),
		entry(8, sep, b, Left, 10),

		entry(10, m, b, Right, 10),
		entry(10, b, b, Halt, NoState),
	}
}

// Programs holds the table of each operation.
type Programs map[Operation]*Table

func (Module) Programs() Programs {
	return Programs{
		Add:      MustBuild(Addition()),
		Subtract: MustBuild(Subtraction()),
	}
}

func (p Programs) Table(op Operation) (*Table, error) {
	table, ok := p[op]
	if !ok {
		return nil, wrap(fmt.Errorf("%v: %w", op, ErrUnknownOperation))
	}
	return table, nil
}
