// Package reactor implements the two stochastic reactors of spec §4.7 and
// §4.8: a well-mixed gas pool and a toroidal 2-D grid, both GC'd
// periodically and both sampling closed combinators from
// internal/generator to replenish themselves after a failed reaction.
package reactor

import (
	"math/rand"

	"lambdasoup/internal/analysis"
	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/generator"
)

// GasConfig is the tunable per spec §6's configuration table: pool size,
// generator depth, per-reaction step/mass ceilings.
type GasConfig struct {
	PoolSize int
	Depth    int
	Steps    int
	MaxMass  int

	// GCInterval and StatsInterval default to spec §4.7's 50 and 1000 when
	// zero.
	GCInterval    int
	StatsInterval int
}

func (c GasConfig) gcInterval() int {
	if c.GCInterval <= 0 {
		return 50
	}
	return c.GCInterval
}

func (c GasConfig) statsInterval() int {
	if c.StatsInterval <= 0 {
		return 1000
	}
	return c.StatsInterval
}

// GasStatsRow is one row of the time-series log spec §6 names for the gas
// reactor: `step,unique_count,entropy,top_freq`.
type GasStatsRow struct {
	Step       int
	UniqueCount int
	Entropy    float64
	TopFreq    int
}

// Gas is the well-mixed pool reactor of spec §4.7.
type Gas struct {
	Arena    *arena.Arena
	Reducer  *eval.Reducer
	Gen      *generator.Generator
	Rand     *rand.Rand
	Config   GasConfig
	Pool     []arena.Index

	step int
}

// NewGas seeds a pool of cfg.PoolSize freshly generated combinators of
// depth cfg.Depth.
func NewGas(ar *arena.Arena, reducer *eval.Reducer, gen *generator.Generator, rng *rand.Rand, cfg GasConfig) *Gas {
	g := &Gas{Arena: ar, Reducer: reducer, Gen: gen, Rand: rng, Config: cfg}
	g.Pool = make([]arena.Index, cfg.PoolSize)
	for i := range g.Pool {
		g.Pool[i] = gen.Generate(cfg.Depth)
	}
	return g
}

// Step runs one gas-reactor iteration per spec §4.7: draw two pool indices
// with replacement, reduce their application under bounds, and dispose of
// the result. stats is non-nil on the iterations where the statistics
// snapshot falls (every StatsInterval iterations, default 1000), and
// collected is true on the iterations where a GC ran (every GCInterval
// iterations, default 50), so the caller's logging stays in
// internal/engine.
func (g *Gas) Step(roots func() []arena.Index) (collected bool, stats *GasStatsRow) {
	i := g.Rand.Intn(len(g.Pool))
	j := g.Rand.Intn(len(g.Pool))

	app := g.Arena.NewApp(g.Pool[i], g.Pool[j])
	result := g.Reducer.EvalBounded(app, g.Config.Steps, g.Config.MaxMass)

	switch result.Outcome {
	case eval.OutcomeDone:
		k := g.Rand.Intn(len(g.Pool))
		g.Pool[k] = result.Value
	case eval.OutcomeLimit:
		g.Pool[i] = g.Gen.Generate(g.Config.Depth)
	case eval.OutcomeError:
		g.Pool[i] = g.Gen.Generate(g.Config.Depth)
		g.Pool[j] = g.Gen.Generate(g.Config.Depth)
	}

	g.step++
	if g.step%g.Config.gcInterval() == 0 {
		g.Arena.Collect(roots())
		collected = true
	}
	if g.step%g.Config.statsInterval() == 0 {
		stats = g.snapshot()
	}
	return collected, stats
}

// snapshot computes the species_histogram-derived row spec §4.7 names:
// species identity here is the tag-inclusive pretty-print
// (analysis.SpeciesKey), per spec §4.7's explicit wording.
func (g *Gas) snapshot() *GasStatsRow {
	keys := make([]string, len(g.Pool))
	for i, idx := range g.Pool {
		keys[i] = analysis.SpeciesKey(g.Arena, idx)
	}
	hist := analysis.Histogram(keys)
	return &GasStatsRow{
		Step:        g.step,
		UniqueCount: len(hist),
		Entropy:     analysis.Entropy(hist),
		TopFreq:     analysis.MaxFrequency(hist),
	}
}

// Roots returns every pool entry, the portion of the GC root set (spec
// §4.3) this reactor owns.
func (g *Gas) Roots() []arena.Index {
	return append([]arena.Index(nil), g.Pool...)
}

// Remap rewrites every pool entry through remap, the external-holder fixup
// spec §4.3 requires of anything sharing an arena with a compaction pass.
func (g *Gas) Remap(remap map[arena.Index]arena.Index) {
	for i, idx := range g.Pool {
		if ni, ok := arena.Remap(remap, idx); ok {
			g.Pool[i] = ni
		}
	}
}
