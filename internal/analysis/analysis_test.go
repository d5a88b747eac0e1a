package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/analysis"
	"lambdasoup/internal/arena"
	"lambdasoup/internal/symbol"
)

func TestMass(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")

	v := ar.NewVar(x)
	assert.Equal(t, 1, analysis.Mass(ar, v))

	fn := ar.NewFun(x, v)
	assert.Equal(t, 2, analysis.Mass(ar, fn))

	app := ar.NewApp(fn, v)
	assert.Equal(t, 4, analysis.Mass(ar, app))
}

func TestHashIsTagInsensitive(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	fresh := table.Fresh(x)

	a := ar.NewVar(x)
	b := ar.NewVar(fresh)

	assert.Equal(t, analysis.Hash(ar, a), analysis.Hash(ar, b))
}

func TestSpeciesKeyIsTagSensitive(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	x := table.Symbol("x")
	fresh := table.Fresh(x)

	a := ar.NewVar(x)
	b := ar.NewVar(fresh)

	assert.NotEqual(t, analysis.SpeciesKey(ar, a), analysis.SpeciesKey(ar, b))
}

func TestHistogramRunLengthEncodesSortedKeys(t *testing.T) {
	hist := analysis.Histogram([]uint64{3, 1, 1, 2, 3, 3})
	assert.Equal(t, []analysis.SpeciesCount[uint64]{
		{Key: 1, Count: 2},
		{Key: 2, Count: 1},
		{Key: 3, Count: 3},
	}, hist)
}

func TestHistogramOverStringKeys(t *testing.T) {
	hist := analysis.Histogram([]string{"b", "a", "a"})
	assert.Equal(t, []analysis.SpeciesCount[string]{
		{Key: "a", Count: 2},
		{Key: "b", Count: 1},
	}, hist)
}

func TestEntropyUniformPopulationIsLogN(t *testing.T) {
	hist := analysis.Histogram([]uint64{1, 2, 3, 4})
	got := analysis.Entropy(hist)
	assert.InDelta(t, math.Log(4), got, 1e-9)
}

func TestEntropySingleSpeciesIsZero(t *testing.T) {
	hist := analysis.Histogram([]uint64{7, 7, 7})
	assert.Equal(t, 0.0, analysis.Entropy(hist))
}

func TestMaxFrequency(t *testing.T) {
	hist := analysis.Histogram([]uint64{1, 1, 1, 2})
	assert.Equal(t, 3, analysis.MaxFrequency(hist))
	assert.Equal(t, 0, analysis.MaxFrequency(analysis.Histogram([]uint64{})))
}
