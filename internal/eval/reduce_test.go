package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/parser"
	"lambdasoup/internal/printer"
	"lambdasoup/internal/symbol"
)

// reduceToNormalForm parses src and reduces it to normal form, failing the
// test if it does not converge within generous bounds.
func reduceToNormalForm(t *testing.T, table *symbol.Table, ar *arena.Arena, reducer *eval.Reducer, src string) arena.Index {
	t.Helper()
	p := parser.New("<test>", src, table, ar)
	e, err := p.ParseExpr()
	require.NoError(t, err)

	result := reducer.EvalBounded(e, 1000, 100_000)
	require.Equal(t, eval.OutcomeDone, result.Outcome, "expected %q to converge", src)
	return result.Value
}

func TestConcreteReductionScenarios(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`(\x.x) y`, "y"},
		{`(\x.\y.x) a b`, "a"},
		{`(\x.\y.y) a b`, "b"},
		{`(\x.\y.\z.x z (y z)) a b c`, "a c (b c)"},
	}

	for _, c := range cases {
		table := symbol.NewTable()
		ar := arena.New(0)
		reducer := eval.NewReducer(ar, table, nil)

		got := reduceToNormalForm(t, table, ar, reducer, c.src)
		assert.Equal(t, c.want, printer.Print(ar, got), "reducing %q", c.src)
	}
}

func TestAlphaRenamingOnCapturingApplication(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	// (\x.\y.x) y: applying the K combinator to y, where y is also the
	// bound parameter name, forces an alpha-rename of the inner \y to
	// avoid capturing the argument. The fresh counter starts at 0, so the
	// first fresh tag minted is 1.
	got := reduceToNormalForm(t, table, ar, reducer, `(\x.\y.x) y`)
	assert.Equal(t, `\y:1.y`, printer.Print(ar, got))
}

func TestChurchSuccessorOfOne(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	got := reduceToNormalForm(t, table, ar, reducer, `(\n.\f.\x.f (n f x)) (\f.\x.f x)`)

	// Alpha-equivalent to \f.\x.f (f x): compare under no-tags printing,
	// since the reduction mints fresh parameter tags along the way.
	assert.Equal(t, `\f.x.f (f x)`, printer.PrintNoTags(ar, got))
}

func TestVoidMagicDiscardsConvergedArgument(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	got := reduceToNormalForm(t, table, ar, reducer, `#void (\x.x)`)
	assert.Equal(t, "#void", printer.Print(ar, got))
}

func TestTraceMagicEmitsSideEffectAndReturnsArgument(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)

	var traced []string
	reducer := eval.NewReducer(ar, table, func(line string) { traced = append(traced, line) })

	got := reduceToNormalForm(t, table, ar, reducer, `#trace (\z.z)`)
	assert.Equal(t, `\z.z`, printer.Print(ar, got))
	require.Len(t, traced, 1)
	assert.Equal(t, `TRACE: \z.z`, traced[0])
}

func TestUnknownMagicIsAnError(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	p := parser.New("<test>", `#bogus x`, table, ar)
	e, err := p.ParseExpr()
	require.NoError(t, err)

	result := reducer.EvalBounded(e, 10, 1000)
	assert.Equal(t, eval.OutcomeError, result.Outcome)
	assert.Error(t, result.Err)
}

func TestStepLimitYieldsLimitOutcome(t *testing.T) {
	table := symbol.NewTable()
	ar := arena.New(0)
	reducer := eval.NewReducer(ar, table, nil)

	p := parser.New("<test>", `(\x.x x) (\x.x x)`, table, ar)
	e, err := p.ParseExpr()
	require.NoError(t, err)

	// This omega-like term diverges in step count under a generous mass
	// ceiling but a tight step ceiling.
	result := reducer.EvalBounded(e, 3, 100_000)
	assert.Equal(t, eval.OutcomeLimit, result.Outcome)
}
