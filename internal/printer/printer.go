// Package printer implements the expression pretty-printer (spec §6): a
// stable, round-trippable rendering of arena expressions, with an optional
// "no tags" mode for persistence that conflates alpha-renamed variants.
package printer

import (
	"strconv"
	"strings"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

// Print renders e including alpha-renaming tags (`name:tag` whenever
// tag≠0). This is the form spec §4.7 uses as the gas reactor's species key.
func Print(ar *arena.Arena, e arena.Index) string {
	var b strings.Builder
	write(&b, ar, e, true)
	return b.String()
}

// PrintNoTags renders e omitting alpha-renaming tags entirely, conflating
// variants that differ only by tag. This is the canonical form
// internal/analysis.Hash hashes, and the form used for soup-file
// persistence (spec §6).
func PrintNoTags(ar *arena.Arena, e arena.Index) string {
	var b strings.Builder
	write(&b, ar, e, false)
	return b.String()
}

func write(b *strings.Builder, ar *arena.Arena, e arena.Index, withTags bool) {
	switch ar.Kind(e) {
	case arena.KindVar:
		writeVar(b, ar.Var(e), withTags)
	case arena.KindMagic:
		b.WriteByte('#')
		b.WriteString(ar.MagicLabel(e))
	case arena.KindFun:
		b.WriteByte('\\')
		writeFunChain(b, ar, e, withTags)
	case arena.KindApp:
		lhs, rhs := ar.App(e)
		writeOperand(b, ar, lhs, withTags, ar.Kind(lhs) == arena.KindFun)
		b.WriteByte(' ')
		writeOperand(b, ar, rhs, withTags, !isAtomic(ar, rhs))
	default:
		panic("printer: unknown kind")
	}
}

// writeFunChain emits every parameter of a nested Fun chain dot-separated
// (always a dot after each parameter, per the chosen pretty-print
// convention) before descending into the innermost non-Fun body.
func writeFunChain(b *strings.Builder, ar *arena.Arena, e arena.Index, withTags bool) {
	for {
		param, body := ar.Fun(e)
		writeVar(b, param, withTags)
		b.WriteByte('.')
		if ar.Kind(body) != arena.KindFun {
			write(b, ar, body, withTags)
			return
		}
		e = body
	}
}

func writeOperand(b *strings.Builder, ar *arena.Arena, e arena.Index, withTags, parenthesize bool) {
	if parenthesize {
		b.WriteByte('(')
		write(b, ar, e, withTags)
		b.WriteByte(')')
		return
	}
	write(b, ar, e, withTags)
}

// isAtomic reports whether e never needs parenthesising as an App's right
// operand on its own (spec §6: parens go "around any non-atomic right
// operand"). Var and Magic are atomic; Fun and App are not.
func isAtomic(ar *arena.Arena, e arena.Index) bool {
	switch ar.Kind(e) {
	case arena.KindVar, arena.KindMagic:
		return true
	default:
		return false
	}
}

func writeVar(b *strings.Builder, sym symbol.Symbol, withTags bool) {
	b.WriteString(sym.Label())
	if withTags && sym.Tag != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(sym.Tag, 10))
	}
}
