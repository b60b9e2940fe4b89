package feeds

import (
	"github.com/reusee/turing/machines"
)

// Message is the wire form of a machine event.
type Message struct {
	Seq     int    `json:"seq"`
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Value   int    `json:"value"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}

func messageOf(event machines.Event) Message {
	msg := Message{
		Kind:  event.Kind.String(),
		Index: event.Index,
		Value: int(event.Value),
	}
	if event.Kind == machines.HaltEvent {
		msg.Outcome = event.Outcome.Kind.String()
		if event.Outcome.Err != nil {
			msg.Error = event.Outcome.Err.Error()
		}
	}
	return msg
}
