// Package generator implements the combinator generator of spec §4.6: a
// depth-bounded probabilistic grammar sampling closed lambda expressions,
// grounded in the same math/rand-driven weighted-choice style the pack's
// reactor examples (e.g. the deep6ix autocatalysis pond) use for picking
// among reaction alternatives.
package generator

import (
	"fmt"
	"math/rand"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

// Generator samples closed combinators of a given maximum depth, per spec
// §4.6. It holds the PRNG, arena and symbol table the process-wide engine
// owns; callers never construct more than one against the same arena at a
// time since there is no internal locking (spec §5's single-threaded
// model).
type Generator struct {
	Arena  *arena.Arena
	Table  *symbol.Table
	Rand   *rand.Rand
	MaxRetries int // seeding retries before accepting a trivial identity Fun
}

// New constructs a Generator. rng must be non-nil; callers share one PRNG
// across the whole engine for determinism (spec §5).
func New(ar *arena.Arena, table *symbol.Table, rng *rand.Rand) *Generator {
	return &Generator{Arena: ar, Table: table, Rand: rng, MaxRetries: 8}
}

// Generate samples one closed expression of maximum depth maxDepth, per
// spec §4.6, rejecting a pure identity Fun (`\x.x`) up to MaxRetries times
// before accepting it as a last resort, to avoid trivial seeds.
func (g *Generator) Generate(maxDepth int) arena.Index {
	for attempt := 0; attempt < g.MaxRetries; attempt++ {
		e := g.generate(0, maxDepth, nil)
		if !g.isIdentity(e) {
			return e
		}
	}
	return g.generate(0, maxDepth, nil)
}

// isIdentity reports whether e is exactly Fun(x, Var(x)) for some x.
func (g *Generator) isIdentity(e arena.Index) bool {
	if g.Arena.Kind(e) != arena.KindFun {
		return false
	}
	param, body := g.Arena.Fun(e)
	if g.Arena.Kind(body) != arena.KindVar {
		return false
	}
	return g.Arena.Var(body).Equal(param)
}

// generate implements the recursive sampling rule of spec §4.6: env is the
// set of currently-bound parameter names, in binding order (so "v<N>"
// naming matches env's size, per the spec's Abs rule).
func (g *Generator) generate(depth, maxDepth int, env []symbol.Symbol) arena.Index {
	if depth == maxDepth {
		if len(env) > 0 {
			return g.Arena.NewVar(env[g.Rand.Intn(len(env))])
		}
		return g.identity()
	}
	if len(env) == 0 {
		return g.abstract(depth, maxDepth, env)
	}

	r := g.Rand.Intn(100)
	if depth*3 < maxDepth {
		// force-growth phase: 60% App, 40% Abs
		if r < 60 {
			return g.apply(depth, maxDepth, env)
		}
		return g.abstract(depth, maxDepth, env)
	}
	// 50% App, 30% Abs, 20% Var
	switch {
	case r < 50:
		return g.apply(depth, maxDepth, env)
	case r < 80:
		return g.abstract(depth, maxDepth, env)
	default:
		return g.Arena.NewVar(env[g.Rand.Intn(len(env))])
	}
}

func (g *Generator) apply(depth, maxDepth int, env []symbol.Symbol) arena.Index {
	lhs := g.generate(depth+1, maxDepth, env)
	rhs := g.generate(depth+1, maxDepth, env)
	return g.Arena.NewApp(lhs, rhs)
}

func (g *Generator) abstract(depth, maxDepth int, env []symbol.Symbol) arena.Index {
	name := g.Table.Symbol(fmt.Sprintf("v%d", len(env)))
	body := g.generate(depth+1, maxDepth, append(env, name))
	return g.Arena.NewFun(name, body)
}

// identity returns a fresh `\x.x` expression, the base case of spec
// §4.6's depth-exhausted, empty-environment branch.
func (g *Generator) identity() arena.Index {
	x := g.Table.Symbol("v0")
	return g.Arena.NewFun(x, g.Arena.NewVar(x))
}
