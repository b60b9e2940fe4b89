package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/modes"
)

func TestTap(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", testSnapshot())
	})
}
