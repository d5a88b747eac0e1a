// Command lamb-grid is a non-interactive batch driver for the toroidal
// grid reactor (spec §4.8), mirroring cmd/lamb-gas's role for the grid's
// original C counterpart, lamb_grid.c.
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
	cfg.Width = 40
	cfg.Height = 40
	cfg.DensityPct = 30
	cfg.CosmicRayRate = 1
	cfg.Iterations = 1000

	eng := engine.New(cfg, 1, nil)
	eng.StartGrid()

	sink := reactor.NewGridStatsSink(os.Stdout)
	if err := eng.RunGrid(sink); err != nil {
		eng.Log.Errorf("grid run failed: %v", err)
		os.Exit(1)
	}
}
