package rules

import (
	"errors"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	ErrInvalidRule      = errors.New("invalid rule")
	ErrUnknownOperation = errors.New("unknown operation")
)
