package machines

import (
	"context"
	"fmt"
	"time"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapes"
)

type Status uint8

const (
	Idle Status = iota
	Running
	Halted
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Machine owns a tape and drives runs of the fixed programs over it.
// It is not safe for concurrent use.
type Machine struct {
	tape     *tapes.Tape
	programs rules.Programs
	logger   logs.Logger
	newSpan  logs.NewSpan
	delay    time.Duration

	observers []Observer
	observer  Observer
	// incremented by Reset, a notification started in an older generation is dropped
	generation uint64

	status    Status
	operation rules.Operation
	table     *rules.Table
	run       RunContext
	outcome   Outcome
	steps     int
	runCtx    context.Context
}

func (m *Machine) Status() Status {
	return m.status
}

func (m *Machine) Outcome() Outcome {
	return m.outcome
}

func (m *Machine) Head() int {
	return m.run.Head
}

func (m *Machine) Tape() *tapes.Tape {
	return m.tape
}

// Start begins a run from head 0, state 0. It is legal from Idle and from Halted.
func (m *Machine) Start(ctx context.Context, op rules.Operation) error {
	if m.status == Running {
		return wrap(fmt.Errorf("start %v: %w", op, ErrAlreadyRunning))
	}
	table, err := m.programs.Table(op)
	if err != nil {
		return err
	}

	ctx, _ = m.newSpan(ctx, "")
	m.runCtx = ctx
	m.status = Running
	m.operation = op
	m.table = table
	m.run = NewRun()
	m.outcome = Outcome{}
	m.steps = 0

	m.logger.InfoContext(ctx, "run started",
		"operation", op,
		"tape", m.tape.String(),
	)
	m.observer.OnHeadMoved(m.run.Head)
	return nil
}

// Step performs one transition. It reports whether the run ended,
// by halting or by an observer calling Reset while the step was delivered.
func (m *Machine) Step() (bool, error) {
	if m.status != Running {
		return false, wrap(fmt.Errorf("step: %w", ErrNotRunning))
	}
	ctx := m.runCtx
	generation := m.generation
	live := func() bool {
		return m.generation == generation
	}

	prev := m.run
	run, events, stepErr := Step(m.tape, m.run, m.table)
	m.run = run
	m.steps++

	if !run.Running {
		m.status = Halted
		if n := len(events); n > 0 && events[n-1].Kind == HaltEvent {
			m.outcome = events[n-1].Outcome
		}
	}

	if err := Apply(m.tape, events, m.observer, live); err != nil {
		return m.status == Halted, logs.WrapSpan(ctx, wrap(err))
	}
	if !live() {
		return true, nil
	}

	m.logger.DebugContext(ctx, "step",
		"step", m.steps,
		"head", prev.Head,
		"state", prev.State,
		"next_head", run.Head,
		"next_state", run.State,
	)

	if stepErr != nil {
		m.logger.ErrorContext(ctx, "head out of bounds",
			"head", run.Head,
			"steps", m.steps,
			"error", stepErr,
		)
		return true, logs.WrapSpan(ctx, stepErr)
	}
	if m.status == Halted {
		m.logger.InfoContext(ctx, "run halted",
			"operation", m.operation,
			"outcome", m.outcome.Kind,
			"steps", m.steps,
			"tape", m.tape.String(),
		)
		return true, nil
	}
	return false, nil
}

// RunToCompletion steps until the run halts, pausing between steps by the configured delay.
// A cancelled ctx stops stepping and leaves the machine running, a Reset discards it.
// An observer calling Reset ends it with a zero Outcome and no error.
func (m *Machine) RunToCompletion(ctx context.Context) (Outcome, error) {
	var timer *time.Timer
	if m.delay > 0 {
		timer = time.NewTimer(m.delay)
		defer timer.Stop()
	}
	for {
		halted, err := m.Step()
		if err != nil {
			return m.outcome, err
		}
		if halted {
			return m.outcome, nil
		}

		if timer == nil {
			if err := ctx.Err(); err != nil {
				return m.outcome, err
			}
			continue
		}
		timer.Reset(m.delay)
		select {
		case <-ctx.Done():
			return m.outcome, ctx.Err()
		case <-timer.C:
		}
	}
}

// Reset discards any run, clears the tape and puts the head back at 0.
func (m *Machine) Reset() {
	if m.status == Running {
		m.logger.InfoContext(m.runCtx, "run reset",
			"operation", m.operation,
			"steps", m.steps,
		)
	}
	m.generation++
	m.status = Idle
	m.operation = 0
	m.table = nil
	m.run = RunContext{}
	m.outcome = Outcome{}
	m.steps = 0
	m.runCtx = nil
	m.tape.Reset()
	m.observer.OnHeadMoved(0)
}

// Load sets the operator-entered tape content.
func (m *Machine) Load(cells []tapes.Cell) error {
	if m.status == Running {
		return wrap(fmt.Errorf("load: %w", ErrAlreadyRunning))
	}
	return m.tape.Load(cells)
}

// Toggle cycles one cell, the way an operator edits the tape.
func (m *Machine) Toggle(index int) (tapes.Cell, error) {
	if m.status == Running {
		return tapes.Blank, wrap(fmt.Errorf("toggle: %w", ErrAlreadyRunning))
	}
	return m.tape.Toggle(index)
}

type Snapshot struct {
	Status    Status
	Operation rules.Operation
	Head      int
	State     rules.State
	Steps     int
	Cells     []tapes.Cell
	Outcome   Outcome
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Status:    m.status,
		Operation: m.operation,
		Head:      m.run.Head,
		State:     m.run.State,
		Steps:     m.steps,
		Cells:     m.tape.Cells(),
		Outcome:   m.outcome,
	}
}

// fanout delivers notifications to the observers of m in order.
// A Reset from one observer stops delivery of the interrupted notification to the rest.
type fanout struct {
	m *Machine
}

var _ Observer = fanout{}

func (f fanout) each(fn func(Observer)) {
	generation := f.m.generation
	for _, observer := range f.m.observers {
		if f.m.generation != generation {
			return
		}
		fn(observer)
	}
}

func (f fanout) OnCellWritten(index int, value tapes.Cell) {
	f.each(func(observer Observer) {
		observer.OnCellWritten(index, value)
	})
}

func (f fanout) OnHeadMoved(index int) {
	f.each(func(observer Observer) {
		observer.OnHeadMoved(index)
	})
}

func (f fanout) OnHalted(outcome Outcome) {
	f.each(func(observer Observer) {
		observer.OnHalted(outcome)
	})
}
