package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

func TestNewVarFunApp(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)

	x := table.Symbol("x")
	v := ar.NewVar(x)
	assert.Equal(t, arena.KindVar, ar.Kind(v))
	assert.True(t, ar.Var(v).Equal(x))

	fn := ar.NewFun(x, v)
	assert.Equal(t, arena.KindFun, ar.Kind(fn))
	p, body := ar.Fun(fn)
	assert.True(t, p.Equal(x))
	assert.Equal(t, v, body)

	app := ar.NewApp(fn, v)
	assert.Equal(t, arena.KindApp, ar.Kind(app))
	l, r := ar.App(app)
	assert.Equal(t, fn, l)
	assert.Equal(t, v, r)

	magic := ar.NewMagic("trace")
	assert.Equal(t, arena.KindMagic, ar.Kind(magic))
	assert.Equal(t, "trace", ar.MagicLabel(magic))
}

func TestMustLivePanicsOnDeadOrOutOfRangeIndex(t *testing.T) {
	ar := arena.New(0)
	assert.Panics(t, func() { ar.Kind(arena.Index(42)) })

	table := symbol.NewTable()
	dead := ar.NewVar(table.Symbol("x"))
	ar.Collect(nil) // nothing reachable: dead is freed
	assert.Panics(t, func() { ar.Kind(dead) })
}

func TestIsLiveDoesNotPanic(t *testing.T) {
	ar := arena.New(0)
	assert.False(t, ar.IsLive(arena.Index(0)))
	assert.False(t, ar.IsLive(arena.NoIndex))

	table := symbol.NewTable()
	v := ar.NewVar(table.Symbol("x"))
	assert.True(t, ar.IsLive(v))
}

func TestAllocReusesFreeList(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)

	v1 := ar.NewVar(table.Symbol("a"))
	assert.Equal(t, 1, ar.SlotCount())

	ar.Collect(nil) // nothing reachable: v1 is freed
	assert.Equal(t, 1, ar.DeadCount())

	v2 := ar.NewVar(table.Symbol("b"))
	assert.Equal(t, v1, v2, "allocation should reuse the just-freed slot")
	assert.Equal(t, 1, ar.SlotCount())
	assert.Equal(t, 0, ar.DeadCount())
}
