// Package eval implements the substitution engine and reducer of spec
// §4.2: capture-avoiding substitution with on-demand alpha-renaming, a
// single-step normal-order beta-reducer, magic-operator dispatch, and a
// bounded evaluation driver.
package eval

import (
	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

// FreeIn reports whether v occurs as a Var outside the scope of any Fun
// binding v, per spec §4.2's free_in. Magic nodes contain no free
// variables.
func FreeIn(ar *arena.Arena, v symbol.Symbol, e arena.Index) bool {
	switch ar.Kind(e) {
	case arena.KindVar:
		return ar.Var(e).Equal(v)
	case arena.KindMagic:
		return false
	case arena.KindFun:
		param, body := ar.Fun(e)
		if param.Equal(v) {
			return false
		}
		return FreeIn(ar, v, body)
	case arena.KindApp:
		lhs, rhs := ar.App(e)
		return FreeIn(ar, v, lhs) || FreeIn(ar, v, rhs)
	default:
		panic("eval: FreeIn: unknown kind")
	}
}

// Subst implements spec §4.2's capture-avoiding subst(param, body, arg):
// replace every free occurrence of param in body with arg, alpha-renaming
// a Fun's parameter via a fresh tag whenever that parameter would
// otherwise capture a free occurrence of param's replacement.
func Subst(ar *arena.Arena, table *symbol.Table, param symbol.Symbol, body, arg arena.Index) arena.Index {
	switch ar.Kind(body) {
	case arena.KindVar:
		if ar.Var(body).Equal(param) {
			return arg
		}
		return body
	case arena.KindMagic:
		return body
	case arena.KindFun:
		p, b := ar.Fun(body)
		if p.Equal(param) {
			return body
		}
		if !FreeIn(ar, p, arg) {
			return ar.NewFun(p, Subst(ar, table, param, b, arg))
		}
		fresh := table.Fresh(p)
		renamed := Subst(ar, table, p, b, ar.NewVar(fresh))
		return ar.NewFun(fresh, Subst(ar, table, param, renamed, arg))
	case arena.KindApp:
		lhs, rhs := ar.App(body)
		return ar.NewApp(
			Subst(ar, table, param, lhs, arg),
			Subst(ar, table, param, rhs, arg),
		)
	default:
		panic("eval: Subst: unknown kind")
	}
}
