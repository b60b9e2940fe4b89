package machines

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/modes"
	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapeconfigs"
	"github.com/reusee/turing/tapes"
)

func testScope(t *testing.T, defs ...any) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, tapeconfigs.Schema)
		},
	).Fork(defs...)
}

func newTestMachine(t *testing.T, length int, observers ...Observer) *Machine {
	var m *Machine
	testScope(t,
		func() tapeconfigs.TapeLength {
			return tapeconfigs.TapeLength(length)
		},
	).Call(func(
		newMachine NewMachine,
	) {
		var err error
		m, err = newMachine(observers...)
		if err != nil {
			t.Fatal(err)
		}
	})
	return m
}

func load(t *testing.T, m *Machine, str string) {
	t.Helper()
	cells, err := tapes.Parse(str)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load(cells); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, m *Machine, op rules.Operation) (Outcome, error) {
	t.Helper()
	if err := m.Start(t.Context(), op); err != nil {
		t.Fatal(err)
	}
	return m.RunToCompletion(t.Context())
}

func TestAddScenario(t *testing.T) {
	m := newTestMachine(t, 21)
	load(t, m, "_11S1")
	outcome, err := run(t, m, rules.Add)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != NormalHalt {
		t.Fatalf("got %v", outcome)
	}
	if str := m.Tape().String(); str != "_111"+strings.Repeat("_", 17) {
		t.Fatalf("got %s", str)
	}
	if m.Status() != Halted {
		t.Fatalf("got %v", m.Status())
	}
}

func TestSubtractScenario(t *testing.T) {
	m := newTestMachine(t, 21)
	load(t, m, "_111S1")
	outcome, err := run(t, m, rules.Subtract)
	// the final sweep of the program leaves the tape on the left
	if !errors.Is(err, ErrHeadOutOfBounds) {
		t.Fatalf("got %v", err)
	}
	if outcome.Kind != ErrorHalt || !errors.Is(outcome.Err, ErrHeadOutOfBounds) {
		t.Fatalf("got %v", outcome)
	}
	if m.Head() != -1 {
		t.Fatalf("got %v", m.Head())
	}
	if str := m.Tape().String(); str != "_11"+strings.Repeat("_", 18) {
		t.Fatalf("got %s", str)
	}
	if m.Status() != Halted {
		t.Fatalf("got %v", m.Status())
	}
}

func TestAddition(t *testing.T) {
	const length = 21
	m := newTestMachine(t, length)
	for a := 0; a <= length; a++ {
		for b := 0; a+b+3 <= length; b++ {
			if err := m.Load(tapes.Encode(a, b)); err != nil {
				t.Fatal(err)
			}
			outcome, err := run(t, m, rules.Add)
			if err != nil {
				t.Fatalf("%d+%d: %v", a, b, err)
			}
			if outcome.Kind != NormalHalt {
				t.Fatalf("%d+%d: got %v", a, b, outcome)
			}
			cells := m.Tape().Cells()
			n, err := tapes.Decode(cells)
			if err != nil {
				t.Fatalf("%d+%d: %v", a, b, err)
			}
			if n != a+b {
				t.Fatalf("%d+%d: got %v", a, b, n)
			}
			if cells[0] != tapes.Blank {
				t.Fatalf("%d+%d: got %s", a, b, tapes.Format(cells))
			}
		}
	}
}

func TestSubtraction(t *testing.T) {
	const length = 21
	m := newTestMachine(t, length)
	for a := 0; a <= length; a++ {
		for b := 0; b <= a && a+b+3 <= length; b++ {
			if err := m.Load(tapes.Encode(a, b)); err != nil {
				t.Fatal(err)
			}
			outcome, err := run(t, m, rules.Subtract)
			if !errors.Is(err, ErrHeadOutOfBounds) || outcome.Kind != ErrorHalt {
				t.Fatalf("%d-%d: got %v, %v", a, b, outcome, err)
			}
			n, err := tapes.Decode(m.Tape().Cells())
			if err != nil {
				t.Fatalf("%d-%d: %v", a, b, err)
			}
			if n != a-b {
				t.Fatalf("%d-%d: got %v", a, b, n)
			}
		}
	}
}

func TestNoRuleHalt(t *testing.T) {
	recorder := new(Recorder)
	m := newTestMachine(t, 5, recorder)
	// state 0 has no rule for a mark
	load(t, m, "11S1")
	recorder.Reset()
	outcome, err := run(t, m, rules.Add)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != NoRuleHalt || outcome.Err != nil {
		t.Fatalf("got %v", outcome)
	}
	if str := m.Tape().String(); str != "11S1_" {
		t.Fatalf("got %s", str)
	}
	if str := recorder.String(); str != "move 0\nhalt no-rule" {
		t.Fatalf("got %s", str)
	}
}

func TestEventOrder(t *testing.T) {
	recorder := new(Recorder)
	m := newTestMachine(t, 3, recorder)
	load(t, m, "_S")
	if str := recorder.String(); str != "write 0 _\nwrite 1 S\nwrite 2 _" {
		t.Fatalf("got %s", str)
	}
	recorder.Reset()

	if _, err := run(t, m, rules.Add); err != nil {
		t.Fatal(err)
	}
	expected := strings.Join([]string{
		"move 0",
		"write 0 _",
		"move 1",
		"write 1 1",
		"move 2",
		"write 2 _",
		"move 1",
		"write 1 _",
		"move 0",
		"write 0 _",
		"halt normal",
	}, "\n")
	if str := recorder.String(); str != expected {
		t.Fatalf("got %s", str)
	}
	if n := recorder.Count(HaltEvent); n != 1 {
		t.Fatalf("got %v", n)
	}
	if snapshot := m.Snapshot(); snapshot.Steps != 5 || snapshot.State != 4 {
		t.Fatalf("got %+v", snapshot)
	}
}

func TestRightBoundary(t *testing.T) {
	recorder := new(Recorder)
	m := newTestMachine(t, 6, recorder)
	load(t, m, "_11S11")
	recorder.Reset()
	outcome, err := run(t, m, rules.Add)
	if !errors.Is(err, ErrHeadOutOfBounds) {
		t.Fatalf("got %v", err)
	}
	if outcome.Kind != ErrorHalt {
		t.Fatalf("got %v", outcome)
	}
	if m.Head() != 6 {
		t.Fatalf("got %v", m.Head())
	}
	if str := m.Tape().String(); str != "_11111" {
		t.Fatalf("got %s", str)
	}
	if n := recorder.Count(HaltEvent); n != 1 {
		t.Fatalf("got %v", n)
	}
	for _, event := range recorder.Events {
		if event.Kind == MoveEvent && event.Index >= 6 {
			t.Fatalf("move outside tape notified: %v", event)
		}
	}
	if m.Snapshot().Steps != 7 {
		t.Fatalf("got %v", m.Snapshot().Steps)
	}

	// halted, a further step is rejected
	if _, err := m.Step(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("got %v", err)
	}
}

func TestReset(t *testing.T) {
	recorder := new(Recorder)
	m := newTestMachine(t, 8, recorder)
	load(t, m, "_11S1")
	if _, err := run(t, m, rules.Add); err != nil {
		t.Fatal(err)
	}

	m.Reset()
	first := m.Snapshot()
	recorder.Reset()
	m.Reset()
	second := m.Snapshot()

	for _, s := range []Snapshot{first, second} {
		if s.Status != Idle || s.Head != 0 || s.State != 0 || s.Steps != 0 {
			t.Fatalf("got %+v", s)
		}
		if str := tapes.Format(s.Cells); str != "________" {
			t.Fatalf("got %s", str)
		}
	}
	if n := recorder.Count(WriteEvent); n != 8 {
		t.Fatalf("got %v", n)
	}
	if recorder.Events[len(recorder.Events)-1] != (Event{Kind: MoveEvent, Index: 0}) {
		t.Fatalf("got %v", recorder.Events)
	}
}

func TestResetWhileRunning(t *testing.T) {
	m := newTestMachine(t, 8)
	load(t, m, "_11S1")
	if err := m.Start(t.Context(), rules.Add); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := m.Step(); err != nil {
			t.Fatal(err)
		}
	}
	m.Reset()
	if m.Status() != Idle || m.Head() != 0 {
		t.Fatalf("got %+v", m.Snapshot())
	}
	if _, err := m.Step(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("got %v", err)
	}
}

func TestStartFromHalted(t *testing.T) {
	fresh := newTestMachine(t, 21)
	load(t, fresh, "_11S1")
	if err := fresh.Start(t.Context(), rules.Add); err != nil {
		t.Fatal(err)
	}

	m := newTestMachine(t, 21)
	load(t, m, "_11S1")
	if _, err := run(t, m, rules.Add); err != nil {
		t.Fatal(err)
	}
	if m.Status() != Halted {
		t.Fatal()
	}
	load(t, m, "_11S1")
	if err := m.Start(t.Context(), rules.Add); err != nil {
		t.Fatal(err)
	}

	a, b := fresh.Snapshot(), m.Snapshot()
	if a.Status != b.Status || a.Head != b.Head || a.State != b.State || a.Steps != b.Steps ||
		tapes.Format(a.Cells) != tapes.Format(b.Cells) || a.Outcome != b.Outcome {
		t.Fatalf("got %+v, %+v", a, b)
	}

	outcome, err := m.RunToCompletion(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != NormalHalt {
		t.Fatalf("got %v", outcome)
	}
	if n, _ := tapes.Decode(m.Tape().Cells()); n != 3 {
		t.Fatalf("got %v", n)
	}
}

func TestAlreadyRunning(t *testing.T) {
	m := newTestMachine(t, 21)
	load(t, m, "_11S1")
	if err := m.Start(t.Context(), rules.Add); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	before := m.Snapshot()

	if err := m.Start(t.Context(), rules.Subtract); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("got %v", err)
	}
	if err := m.Load(nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("got %v", err)
	}
	if _, err := m.Toggle(0); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("got %v", err)
	}

	after := m.Snapshot()
	if after.Operation != rules.Add || after.Head != before.Head || after.State != before.State ||
		after.Steps != before.Steps || tapes.Format(after.Cells) != tapes.Format(before.Cells) {
		t.Fatalf("got %+v, %+v", before, after)
	}
}

func TestStepIdle(t *testing.T) {
	m := newTestMachine(t, 21)
	if _, err := m.Step(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("got %v", err)
	}
	if _, err := m.RunToCompletion(t.Context()); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownOperation(t *testing.T) {
	m := newTestMachine(t, 21)
	if err := m.Start(t.Context(), rules.Operation(9)); !errors.Is(err, rules.ErrUnknownOperation) {
		t.Fatalf("got %v", err)
	}
	if m.Status() != Idle {
		t.Fatal()
	}
}

func TestToggle(t *testing.T) {
	recorder := new(Recorder)
	m := newTestMachine(t, 3, recorder)
	for _, i := range []int{1, 2, 2} {
		if _, err := m.Toggle(i); err != nil {
			t.Fatal(err)
		}
	}
	if str := m.Tape().String(); str != "_1S" {
		t.Fatalf("got %s", str)
	}
	if str := recorder.String(); str != "write 1 1\nwrite 2 1\nwrite 2 S" {
		t.Fatalf("got %s", str)
	}
	if _, err := m.Toggle(3); !errors.Is(err, tapes.ErrOutOfBounds) {
		t.Fatalf("got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	var m *Machine
	testScope(t,
		func() tapeconfigs.StepDelay {
			return tapeconfigs.StepDelay(time.Hour)
		},
	).Call(func(
		newMachine NewMachine,
	) {
		var err error
		m, err = newMachine()
		if err != nil {
			t.Fatal(err)
		}
	})
	load(t, m, "_11S1")
	if err := m.Start(t.Context(), rules.Add); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := m.RunToCompletion(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if m.Status() != Running || m.Snapshot().Steps != 1 {
		t.Fatalf("got %+v", m.Snapshot())
	}
	m.Reset()
	if m.Status() != Idle {
		t.Fatal()
	}
}

func TestRunPaced(t *testing.T) {
	var m *Machine
	testScope(t,
		func() tapeconfigs.StepDelay {
			return tapeconfigs.StepDelay(time.Millisecond)
		},
	).Call(func(
		newMachine NewMachine,
	) {
		var err error
		m, err = newMachine()
		if err != nil {
			t.Fatal(err)
		}
	})
	load(t, m, "_1S1")
	outcome, err := run(t, m, rules.Add)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != NormalHalt {
		t.Fatalf("got %v", outcome)
	}
	if str := m.Tape().String(); !strings.HasPrefix(str, "_11_") {
		t.Fatalf("got %s", str)
	}
}

func TestResetFromObserver(t *testing.T) {
	for _, resetterFirst := range []bool{true, false} {
		recorder := new(Recorder)
		var m *Machine
		armed := false
		resetter := ObserverFuncs{
			CellWritten: func(index int, value tapes.Cell) {
				if armed && index == 4 && value == tapes.Mark {
					armed = false
					m.Reset()
				}
			},
		}
		if resetterFirst {
			m = newTestMachine(t, 8, resetter, recorder)
		} else {
			m = newTestMachine(t, 8, recorder, resetter)
		}

		load(t, m, "_11S1")
		armed = true
		outcome, err := run(t, m, rules.Add)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != (Outcome{}) {
			t.Fatalf("got %v", outcome)
		}
		s := m.Snapshot()
		if s.Status != Idle || s.Head != 0 || s.Steps != 0 {
			t.Fatalf("got %+v", s)
		}
		if str := tapes.Format(s.Cells); str != "________" {
			t.Fatalf("got %s", str)
		}

		// the repaint and the head reset are the last notifications
		events := recorder.Events
		if len(events) < 9 {
			t.Fatalf("got %v", events)
		}
		tail := events[len(events)-9:]
		for i := range 8 {
			if tail[i] != (Event{Kind: WriteEvent, Index: i, Value: tapes.Blank}) {
				t.Fatalf("got %v", tail)
			}
		}
		if tail[8] != (Event{Kind: MoveEvent, Index: 0}) {
			t.Fatalf("got %v", tail)
		}

		// the machine is usable again
		load(t, m, "_11S1")
		outcome, err = run(t, m, rules.Add)
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Kind != NormalHalt {
			t.Fatalf("got %v", outcome)
		}
		if str := tapes.Format(m.Snapshot().Cells); str != "_111____" {
			t.Fatalf("got %s", str)
		}
	}
}
