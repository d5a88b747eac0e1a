package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/network"
	"lambdasoup/internal/symbol"
)

func TestBuildGroupsPopulationIntoSpeciesByHash(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	x := table.Symbol("x")
	idA := ar.NewFun(x, ar.NewVar(x))
	idB := ar.NewFun(table.Fresh(x), ar.NewVar(table.Fresh(x)))

	net := network.Build(ar, reducer, []arena.Index{idA, idA, idB}, 50, 500)

	if assert.Len(t, net.Nodes, 1) {
		assert.Equal(t, 3, net.Nodes[0].Count)
	}
}

func TestBuildLinksIdentityApplicationToItself(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	x := table.Symbol("x")
	identity := ar.NewFun(x, ar.NewVar(x))

	net := network.Build(ar, reducer, []arena.Index{identity}, 50, 500)

	require := assert.New(t)
	require.Len(net.Links, 1)
	require.Equal(0, net.Links[0].Source)
	require.Equal(0, net.Links[0].Target)
	require.Equal(0, net.Links[0].Result, "(\\x.x) (\\x.x) reduces back to the same species")
}

func TestBuildLinksDivergentApplicationToMinusOne(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	x := table.Symbol("x")
	omegaBody := ar.NewApp(ar.NewVar(x), ar.NewVar(x))
	omega := ar.NewFun(x, omegaBody)

	net := network.Build(ar, reducer, []arena.Index{omega}, 5, 5000)

	assert.Equal(t, -1, net.Links[0].Result)
}

func TestBuildIsDeterministicForAFixedPopulationOrder(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	x, y := table.Symbol("x"), table.Symbol("y")
	k := ar.NewFun(x, ar.NewFun(y, ar.NewVar(x)))
	idn := ar.NewFun(x, ar.NewVar(x))

	net1 := network.Build(ar, reducer, []arena.Index{k, idn}, 50, 500)
	net2 := network.Build(ar, reducer, []arena.Index{k, idn}, 50, 500)
	assert.Equal(t, net1, net2)
}
