package fsm

import (
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"

	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/model"
	"reachcore/internal/satx"
	"reachcore/internal/types"
)

func TestMirrorTimeIsDisjointFromForwardIndices(t *testing.T) {
	for k := int64(0); k < 5; k++ {
		m := MirrorTime(k)
		assert.Less(t, m, int64(0))
	}
	assert.Equal(t, MirrorTime(0), int64(-1))
	assert.Equal(t, MirrorTime(1), int64(-2))
}

func TestAssertInitAndFormulaAreSatisfiableTogether(t *testing.T) {
	b := model.NewBuilder("m")
	x := b.Var("x", types.Boolean{}, false)
	b.AddInit(b.Not(x))
	mod, err := b.Build()
	assert.NoError(t, err)

	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	comp := compiler.NewCompiler(d, e, mod)
	sat := satx.NewEngine(d)
	asrt := NewAsserter(mod, comp, d, e, sat)

	group := sat.NewGroup()
	sat.Enable(group)
	assert.NoError(t, asrt.AssertInit(0, group))

	st, _, err := sat.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Sat, st)
}

func TestAssertUniquenessForcesDistinctStates(t *testing.T) {
	b := model.NewBuilder("m")
	x := b.Var("x", types.Boolean{}, false)
	_ = x
	mod, err := b.Build()
	assert.NoError(t, err)

	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	comp := compiler.NewCompiler(d, e, mod)
	sat := satx.NewEngine(d)
	asrt := NewAsserter(mod, comp, d, e, sat)

	permanent := sat.NewGroup()
	sat.Enable(permanent)

	// Pin x at time 0 to false and assert time 1 must differ from time 0:
	// the only satisfying assignment then has x=true at time 1.
	assert.NoError(t, asrt.AssertFormula(b.Not(x), 0, permanent))
	assert.NoError(t, asrt.AssertUniqueness(1, 0, permanent))

	st, model, err := sat.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Sat, st)

	key := enc.Key{Context: "m", Ident: "x", Time: 1}
	encX, ok := e.Lookup(key)
	assert.True(t, ok)
	v, ok := sat.Bit(model, encX.Bits[0])
	assert.True(t, ok)
	assert.True(t, v)
}
