package machines

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/rules"
	"github.com/reusee/turing/tapeconfigs"
)

type Module struct {
	dscope.Module
	Rules   rules.Module
	Configs tapeconfigs.Module
	Logs    logs.Module
}
