package machines

import (
	"errors"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	ErrHeadOutOfBounds = errors.New("head out of bounds")
	ErrAlreadyRunning  = errors.New("machine already running")
	ErrNotRunning      = errors.New("machine not running")
)
