// Command lamb-gas is a non-interactive batch driver for the gas reactor
// (spec §4.7): it seeds a pool, runs it for a fixed iteration count, and
// writes the periodic statistics rows to stdout as CSV. Full command-line
// option parsing is out of scope (spec §1); this binary hardcodes the
// defaults table of spec §6 and exists to exercise internal/engine the
// way the original C lamb_gas.c exercised lamb.h's gas loop.
package main

import (
	"os"

	"lambdasoup/internal/engine"
	"lambdasoup/internal/logging"
	"lambdasoup/internal/reactor"
)

func main() {
	logging.Configure(1, "")

	cfg := engine.DefaultConfig()
	cfg.PoolSize = 100
	cfg.Iterations = 10_000

	eng := engine.New(cfg, 1, nil)
	eng.StartGas()

	sink := reactor.NewGasStatsSink(os.Stdout)
	if err := eng.RunGas(sink); err != nil {
		eng.Log.Errorf("gas run failed: %v", err)
		os.Exit(1)
	}
}
