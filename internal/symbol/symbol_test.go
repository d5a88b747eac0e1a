package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/symbol"
)

func TestInternIsIdempotentAndOrderIndependent(t *testing.T) {
	table := symbol.NewTable()

	a := table.Symbol("x")
	b := table.Symbol("x")
	assert.True(t, a.Equal(b))

	c := table.Symbol("y")
	assert.False(t, a.Equal(c))
}

func TestFreshIsMonotonicAndNeverCollides(t *testing.T) {
	table := symbol.NewTable()
	x := table.Symbol("x")

	f1 := table.Fresh(x)
	f2 := table.Fresh(x)

	assert.NotEqual(t, f1.Tag, f2.Tag)
	assert.Equal(t, uint64(1), f1.Tag)
	assert.Equal(t, uint64(2), f2.Tag)
	assert.False(t, f1.Equal(x))
	assert.False(t, f1.Equal(f2))
	assert.Equal(t, "x", f1.Label())
}

func TestSymbolString(t *testing.T) {
	table := symbol.NewTable()
	x := table.Symbol("x")
	assert.Equal(t, "x", x.String())

	fresh := table.Fresh(x)
	assert.Equal(t, "x:1", fresh.String())
}

func TestZeroSymbol(t *testing.T) {
	var z symbol.Symbol
	assert.True(t, z.IsZero())
	assert.Equal(t, "", z.Label())
}
