package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/printer"
	"lambdasoup/internal/symbol"
)

func TestFreeInVar(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	y := table.Symbol("y")

	v := ar.NewVar(x)
	assert.True(t, eval.FreeIn(ar, x, v))
	assert.False(t, eval.FreeIn(ar, y, v))
}

func TestFreeInFunShadowsItsParameter(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")

	// \x.x has no free occurrence of x.
	fn := ar.NewFun(x, ar.NewVar(x))
	assert.False(t, eval.FreeIn(ar, x, fn))
}

func TestSubstReplacesFreeOccurrences(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	y := table.Symbol("y")

	body := ar.NewVar(x)
	arg := ar.NewVar(y)
	result := eval.Subst(ar, table, x, body, arg)
	assert.Equal(t, arg, result)
}

func TestSubstAlphaRenamesOnCapture(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	y := table.Symbol("y")

	// subst(x, \y.x, y) must alpha-rename the binder y, since the
	// replacement (Var y) would otherwise be captured.
	body := ar.NewFun(y, ar.NewVar(x))
	arg := ar.NewVar(y)

	result := eval.Subst(ar, table, x, body, arg)
	assert.Equal(t, "\\y:1.y", printer.Print(ar, result))
}

func TestSubstLeavesUncapturedFunAlone(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	y := table.Symbol("y")
	z := table.Symbol("z")

	// subst(x, \y.x, z) needs no renaming since z does not bind y.
	body := ar.NewFun(y, ar.NewVar(x))
	arg := ar.NewVar(z)

	result := eval.Subst(ar, table, x, body, arg)
	assert.Equal(t, "\\y.z", printer.Print(ar, result))
}
