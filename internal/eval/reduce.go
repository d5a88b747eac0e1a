package eval

import (
	"lambdasoup/internal/analysis"
	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

// Reducer bundles the arena and symbol table a single-step reduction needs,
// plus the Tracer #trace emits through.
type Reducer struct {
	Arena  *arena.Arena
	Table  *symbol.Table
	Tracer Tracer
}

// NewReducer constructs a Reducer. A nil tracer is replaced with a no-op.
func NewReducer(ar *arena.Arena, table *symbol.Table, tracer Tracer) *Reducer {
	if tracer == nil {
		tracer = func(string) {}
	}
	return &Reducer{Arena: ar, Table: table, Tracer: tracer}
}

// Eval1 implements spec §4.2's single-step normal-order reducer eval1(e).
// changed is true iff the returned index differs from e.
func (r *Reducer) Eval1(e arena.Index) (next arena.Index, changed bool, err error) {
	ar := r.Arena
	switch ar.Kind(e) {
	case arena.KindVar:
		return e, false, nil

	case arena.KindFun:
		param, body := ar.Fun(e)
		nb, ch, err := r.Eval1(body)
		if err != nil {
			return arena.NoIndex, false, err
		}
		if !ch {
			return e, false, nil
		}
		return ar.NewFun(param, nb), true, nil

	case arena.KindApp:
		lhs, rhs := ar.App(e)
		switch ar.Kind(lhs) {
		case arena.KindFun:
			param, body := ar.Fun(lhs)
			return Subst(ar, r.Table, param, body, rhs), true, nil
		case arena.KindMagic:
			label := ar.MagicLabel(lhs)
			var stepErr error
			stepFn := func(x arena.Index) (arena.Index, bool) {
				nx, ch, serr := r.Eval1(x)
				if serr != nil {
					stepErr = serr
					return x, false
				}
				return nx, ch
			}
			result, derr := Dispatch(ar, label, rhs, stepFn, r.Tracer)
			if stepErr != nil {
				return arena.NoIndex, false, stepErr
			}
			if derr != nil {
				return arena.NoIndex, false, derr
			}
			return result, true, nil
		default:
			nl, ch, err := r.Eval1(lhs)
			if err != nil {
				return arena.NoIndex, false, err
			}
			if ch {
				return ar.NewApp(nl, rhs), true, nil
			}
			nr, ch, err := r.Eval1(rhs)
			if err != nil {
				return arena.NoIndex, false, err
			}
			if ch {
				return ar.NewApp(lhs, nr), true, nil
			}
			return e, false, nil
		}

	case arena.KindMagic:
		return e, false, nil

	default:
		panic("eval: Eval1: unknown kind")
	}
}

// Outcome is the disposition eval_bounded reports, per spec §4.2.
type Outcome int

const (
	// OutcomeDone means e reached a normal form within the budget.
	OutcomeDone Outcome = iota
	// OutcomeLimit means the step or mass ceiling was hit before
	// convergence.
	OutcomeLimit
	// OutcomeError means Eval1 reported an error (e.g. an unknown magic
	// operator).
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "Done"
	case OutcomeLimit:
		return "Limit"
	case OutcomeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Result is the return value of EvalBounded: Outcome plus, for Done, the
// resulting normal form, or for Error, the underlying error.
type Result struct {
	Outcome Outcome
	Value   arena.Index
	Err     error
}

// EvalBounded implements spec §4.2's eval_bounded(start, step_limit,
// mass_limit): iterate Eval1 up to stepLimit times, checking mass(curr)
// against massLimit before each step.
func (r *Reducer) EvalBounded(start arena.Index, stepLimit, massLimit int) Result {
	curr := start
	for step := 0; step < stepLimit; step++ {
		if analysis.Mass(r.Arena, curr) > massLimit {
			return Result{Outcome: OutcomeLimit, Value: curr}
		}
		next, changed, err := r.Eval1(curr)
		if err != nil {
			return Result{Outcome: OutcomeError, Value: curr, Err: err}
		}
		if !changed {
			return Result{Outcome: OutcomeDone, Value: curr}
		}
		curr = next
	}
	return Result{Outcome: OutcomeLimit, Value: curr}
}
