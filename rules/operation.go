package rules

import (
	"fmt"
	"strings"
)

type Operation int

const (
	Add Operation = iota + 1
	Subtract
)

func (o Operation) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

func ParseOperation(str string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "add", "addition", "sum", "+":
		return Add, nil
	case "subtract", "subtraction", "sub", "-":
		return Subtract, nil
	}
	return 0, wrap(fmt.Errorf("%q: %w", str, ErrUnknownOperation))
}
