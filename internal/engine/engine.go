// Package engine wires the process-wide singletons spec §9 describes —
// interner, arena, PRNG, bindings, an optional gas pool or grid, and the
// cancel flag — into one explicit Engine value, rather than package-level
// globals (spec §9: "In a language without convenient globals, wrap them
// in a single 'engine' value passed explicitly; all operations take it as
// their first argument").
package engine

import (
	"math/rand"
	"sync/atomic"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/errors"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/generator"
	"lambdasoup/internal/logging"
	"lambdasoup/internal/parser"
	"lambdasoup/internal/reactor"
	"lambdasoup/internal/symbol"
)

// Config is the documented-defaults configuration table of spec §6,
// carried as one struct rather than full CLI flag parsing (out of scope
// per spec §1).
type Config struct {
	PoolSize   int
	Iterations int
	GasDepth   int // default 3
	GridDepth  int // default 5
	Steps      int // default 100
	MaxMass    int // default 2000-5000

	Width, Height int
	DensityPct    int
	MaxAge        int     // default 50-100
	CosmicRayRate float64 // spawns per 100,000 empty-cell-steps
}

// DefaultConfig returns the defaults spec §6's configuration table names.
func DefaultConfig() Config {
	return Config{
		GasDepth:  3,
		GridDepth: 5,
		Steps:     100,
		MaxMass:   5000,
		MaxAge:    50,
	}
}

// Engine is the single explicit value every operation takes, bundling the
// interner, arena, PRNG, bindings table, optional active reactors, and the
// cooperative cancel flag spec §5 describes.
type Engine struct {
	Symbols *symbol.Table
	Arena   *arena.Arena
	Rand    *rand.Rand
	Reducer *eval.Reducer
	Gen     *generator.Generator
	Log     logging.Logger

	// Bindings maps source-level names to expression roots (spec §3);
	// re-binding an existing name overwrites its body, no shadowing.
	Bindings map[string]arena.Index

	Gas  *reactor.Gas
	Grid *reactor.Grid

	Config Config

	cancel atomic.Bool
}

// New constructs an Engine. seed drives every PRNG-dependent operation
// (generation, gas pair selection, grid shuffling), satisfying spec §4.8's
// determinism requirement: identical seeds reproduce identical
// trajectories.
func New(cfg Config, seed int64, tracer eval.Tracer) *Engine {
	symbols := symbol.NewTable()
	ar := arena.New(0)
	rng := rand.New(rand.NewSource(seed))
	reducer := eval.NewReducer(ar, symbols, tracer)
	gen := generator.New(ar, symbols, rng)

	return &Engine{
		Symbols:  symbols,
		Arena:    ar,
		Rand:     rng,
		Reducer:  reducer,
		Gen:      gen,
		Log:      logging.Get("lambdasoup.engine"),
		Bindings: make(map[string]arena.Index),
		Config:   cfg,
	}
}

// Cancel requests that the driver loop stop at its next poll point (spec
// §5). Safe to call from a signal handler goroutine; the core itself
// remains single-threaded.
func (e *Engine) Cancel() { e.cancel.Store(true) }

// Cancelled reports whether Cancel has been requested.
func (e *Engine) Cancelled() bool { return e.cancel.Load() }

// Bind records or overwrites a top-level binding (spec §3: "re-binding an
// existing name overwrites its body; no shadowing").
func (e *Engine) Bind(name string, expr arena.Index) {
	e.Bindings[name] = expr
}

// LoadSource parses a bindings source file (spec §6: `(binding)*`) and
// records every binding. On a parse error, no partial bindings from the
// failed file are recorded (spec §7: "the offending operation is
// abandoned; no arena or binding state is mutated past the failure
// point").
func (e *Engine) LoadSource(file, source string) error {
	p := parser.New(file, source, e.Symbols, e.Arena)
	bindings, err := p.ParseFile()
	if err != nil {
		return err
	}
	for _, b := range bindings {
		e.Bind(b.Name.Label(), b.Expr)
	}
	return nil
}

// ParseExpr parses a single standalone expression against this engine's
// interner and arena.
func (e *Engine) ParseExpr(source string) (arena.Index, error) {
	p := parser.New("<expr>", source, e.Symbols, e.Arena)
	return p.ParseExpr()
}

// Roots enumerates the complete GC root set spec §4.3 names: every
// binding body, every active gas-pool entry, every occupied grid cell's
// atom. The caller (reactor step loops, or a standalone GC request)
// passes this to arena.Collect.
func (e *Engine) Roots() []arena.Index {
	roots := make([]arena.Index, 0, len(e.Bindings))
	for _, idx := range e.Bindings {
		roots = append(roots, idx)
	}
	if e.Gas != nil {
		roots = append(roots, e.Gas.Roots()...)
	}
	if e.Grid != nil {
		roots = append(roots, e.Grid.Roots()...)
	}
	return roots
}

// compact runs the arena's compaction pass and rewrites every external
// holder the engine owns (spec §4.3: "rewrite every external holder —
// bindings, pool, grid cells, generation lists"). The grid's own cells are
// the one holder compact does not touch; Grid.Step remaps those itself from
// the returned table, since compact doesn't know which cells are occupied.
func (e *Engine) compact() map[arena.Index]arena.Index {
	remap := e.Arena.Compact()
	for name, idx := range e.Bindings {
		if ni, ok := arena.Remap(remap, idx); ok {
			e.Bindings[name] = ni
		}
	}
	if e.Gas != nil {
		e.Gas.Remap(remap)
	}
	return remap
}

// StartGas activates the gas reactor (spec §4.7) using e.Config's
// PoolSize/GasDepth/Steps/MaxMass.
func (e *Engine) StartGas() {
	cfg := reactor.GasConfig{
		PoolSize: e.Config.PoolSize,
		Depth:    e.Config.GasDepth,
		Steps:    e.Config.Steps,
		MaxMass:  e.Config.MaxMass,
	}
	e.Gas = reactor.NewGas(e.Arena, e.Reducer, e.Gen, e.Rand, cfg)
}

// StartGrid activates the grid reactor (spec §4.8) using e.Config's
// Width/Height/GridDepth/Steps/MaxMass/DensityPct/MaxAge/CosmicRayRate.
func (e *Engine) StartGrid() {
	cfg := reactor.GridConfig{
		Width:         e.Config.Width,
		Height:        e.Config.Height,
		Depth:         e.Config.GridDepth,
		Steps:         e.Config.Steps,
		MaxMass:       e.Config.MaxMass,
		DensityPct:    e.Config.DensityPct,
		MaxAge:        e.Config.MaxAge,
		CosmicRayRate: e.Config.CosmicRayRate,
	}
	e.Grid = reactor.NewGrid(e.Arena, e.Reducer, e.Gen, e.Rand, cfg)
}

// RunGas drives the gas reactor for e.Config.Iterations steps, polling
// Cancelled() between iterations (spec §5), logging each GC sweep and
// forwarding each periodic statistics row to sink.
func (e *Engine) RunGas(sink *reactor.StatsSink) error {
	if e.Gas == nil {
		return errors.NewParseError(errors.Position{}, "gas reactor not started")
	}
	for i := 0; i < e.Config.Iterations; i++ {
		if e.Cancelled() {
			e.Log.Info("gas run cancelled")
			return nil
		}
		collected, stats := e.Gas.Step(e.Roots)
		if collected {
			e.Log.Debugf("gas gc sweep at iteration %d", i)
		}
		if stats != nil && sink != nil {
			if err := sink.WriteGasRow(*stats); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunGrid drives the grid reactor for e.Config.Iterations steps, polling
// Cancelled() between steps, logging GC/compaction events, and writing a
// statistics row to sink after every step.
func (e *Engine) RunGrid(sink *reactor.StatsSink) error {
	if e.Grid == nil {
		return errors.NewParseError(errors.Position{}, "grid reactor not started")
	}
	for i := 0; i < e.Config.Iterations; i++ {
		if e.Cancelled() {
			e.Log.Info("grid run cancelled")
			return nil
		}
		collected, compacted := e.Grid.Step(e.Roots, e.compact)
		if collected {
			e.Log.Debugf("grid gc sweep at step %d", i)
		}
		if compacted {
			e.Log.Infof("grid compaction at step %d", i)
		}
		if sink != nil {
			if err := sink.WriteGridRow(e.Grid.Snapshot()); err != nil {
				return err
			}
		}
	}
	return nil
}
