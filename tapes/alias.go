package tapes

import (
	"errors"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	ErrOutOfBounds   = errors.New("tape index out of bounds")
	ErrInvalidCell   = errors.New("invalid cell value")
	ErrTooLong       = errors.New("cells longer than tape")
	ErrInvalidSymbol = errors.New("invalid tape symbol")
	ErrMalformed     = errors.New("malformed unary result")
)
