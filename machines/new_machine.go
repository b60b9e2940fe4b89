package machines

import (
	"time"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapeconfigs"
	"github.com/reusee/turing/tapes"
)

type NewMachine func(observers ...Observer) (*Machine, error)

func (Module) NewMachine(
	logger logs.Logger,
	newSpan logs.NewSpan,
	programs rules.Programs,
	length tapeconfigs.TapeLength,
	delay tapeconfigs.StepDelay,
) NewMachine {
	return func(observers ...Observer) (*Machine, error) {
		tape, err := tapes.New(int(length))
		if err != nil {
			return nil, err
		}
		m := &Machine{
			tape:      tape,
			programs:  programs,
			observers: observers,
			logger:    logger,
			newSpan:   newSpan,
			delay:     time.Duration(delay),
		}
		m.observer = fanout{m}
		tape.Watch(m.observer.OnCellWritten)
		return m, nil
	}
}
