package machines

import "fmt"

type OutcomeKind uint8

const (
	// NormalHalt is reached through a rule whose move is Halt.
	NormalHalt OutcomeKind = iota + 1
	// NoRuleHalt is reached when no rule matches. It is not an error.
	NoRuleHalt
	ErrorHalt
)

func (k OutcomeKind) String() string {
	switch k {
	case NormalHalt:
		return "normal"
	case NoRuleHalt:
		return "no-rule"
	case ErrorHalt:
		return "error"
	}
	return "none"
}

type Outcome struct {
	Kind OutcomeKind
	Err  error
}

func (o Outcome) String() string {
	if o.Kind == ErrorHalt && o.Err != nil {
		return fmt.Sprintf("%v: %v", o.Kind, o.Err)
	}
	return o.Kind.String()
}
