package hostenv

import (
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	callCounter   = metrics.NewRegisteredCounter("hostenv/calls", nil)
	revertCounter = metrics.NewRegisteredCounter("hostenv/reverts", nil)
	trapCounter   = metrics.NewRegisteredCounter("hostenv/traps", nil)
	executeTimer  = metrics.NewRegisteredTimer("hostenv/execute", nil)
)
