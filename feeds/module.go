package feeds

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
	Logs logs.Module
}
