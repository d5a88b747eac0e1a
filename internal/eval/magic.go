package eval

import (
	"fmt"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/errors"
	"lambdasoup/internal/printer"
)

func prettyForTrace(ar *arena.Arena, e arena.Index) string {
	return printer.Print(ar, e)
}

// Tracer receives the side-effect line a #trace operator emits when its
// argument reaches normal form (spec §4.5). Callers that don't care about
// trace output pass a no-op Tracer.
type Tracer func(line string)

// MagicOp implements one magic operator's App(Magic(label), arg) contract:
// drive arg one step via step, and report how the App should be rewritten.
// Registered the way the teacher's module registry maps names to
// handlers, generalised here from compiler stdlib functions to reduction
// side effects.
type MagicOp func(ar *arena.Arena, arg arena.Index, step func(arena.Index) (arena.Index, bool), trace Tracer) (arena.Index, error)

// Registry is the process-wide magic-operator dispatch table, initially
// {trace, void} per spec §3.
var Registry = map[string]MagicOp{
	"trace": traceOp,
	"void":  voidOp,
}

// traceOp implements spec §4.5's `#trace e`: drive e one step; if e
// changed, return App(#trace, e'); if e is a normal form, emit "TRACE:
// <pretty(e)>" and return e.
func traceOp(ar *arena.Arena, arg arena.Index, step func(arena.Index) (arena.Index, bool), trace Tracer) (arena.Index, error) {
	next, changed := step(arg)
	if changed {
		return ar.NewApp(ar.NewMagic("trace"), next), nil
	}
	trace(fmt.Sprintf("TRACE: %s", prettyForTrace(ar, arg)))
	return arg, nil
}

// voidOp implements spec §4.5's `#void e`: drive e one step; if e changed,
// return App(#void, e'); if e is a normal form, discard it and return
// Magic(void).
func voidOp(ar *arena.Arena, arg arena.Index, step func(arena.Index) (arena.Index, bool), trace Tracer) (arena.Index, error) {
	next, changed := step(arg)
	if changed {
		return ar.NewApp(ar.NewMagic("void"), next), nil
	}
	return ar.NewMagic("void"), nil
}

// Dispatch looks up label in Registry and invokes it, or reports
// errors.KindUnknownMagic per spec §4.5 ("unknown magic labels: report an
// error; the reducer treats this as Error").
func Dispatch(ar *arena.Arena, label string, arg arena.Index, step func(arena.Index) (arena.Index, bool), trace Tracer) (arena.Index, error) {
	op, ok := Registry[label]
	if !ok {
		return arena.NoIndex, errors.NewUnknownMagic(label)
	}
	return op(ar, arg, step, trace)
}
