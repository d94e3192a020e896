package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reachcore/internal/enc"
	"reachcore/internal/model"
	"reachcore/internal/types"
)

func newFixture() (*model.Module, *Compiler) {
	b := model.NewBuilder("t")
	b.Var("c", types.UnsignedInt{NibbleWidth: 2}, false)
	b.Var("x", types.Boolean{}, false)
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	return mod, NewCompiler(d, e, mod)
}

func TestCompileIsMemoizedPerFQTE(t *testing.T) {
	mod, comp := newFixture()
	c := mod.Exprs.Ident("c")

	// Two independent Compile calls against the very same node and time
	// must return DD vectors built from identical underlying node
	// pointers (memoization via nodeCache, keyed by FQTE).
	cu1, err := comp.Compile(c, 0)
	assert.NoError(t, err)
	cu2, err := comp.Compile(c, 0)
	assert.NoError(t, err)
	assert.Equal(t, len(cu1.DDs), len(cu2.DDs))
	for i := range cu1.DDs {
		assert.True(t, comp.diagrams.BDD().Equal(cu1.DDs[i], cu2.DDs[i]))
	}
}

func TestCompileBooleanIdentProducesSingleBit(t *testing.T) {
	mod, comp := newFixture()
	x := mod.Exprs.Ident("x")
	cu, err := comp.Compile(x, 0)
	assert.NoError(t, err)
	assert.Equal(t, types.Boolean{}, cu.Type)
	assert.Equal(t, 1, len(cu.DDs))
}

func TestCompileBareLiteralMaterializesSmallestWidth(t *testing.T) {
	mod, comp := newFixture()
	five := mod.Exprs.IntLiteral("5")
	cu, err := comp.Compile(five, 0)
	assert.NoError(t, err)
	assert.Equal(t, types.KindUnsignedInt, cu.Type.Kind())
	assert.Equal(t, uint32(4), cu.Type.Width())
}

func TestCompileNextShiftsTimeIndex(t *testing.T) {
	mod, comp := newFixture()
	c := mod.Exprs.Ident("c")
	nextC := mod.Exprs.Next(c)

	atT1, err := comp.Compile(c, 1)
	assert.NoError(t, err)
	atNextT0, err := comp.Compile(nextC, 0)
	assert.NoError(t, err)

	assert.Equal(t, len(atT1.DDs), len(atNextT0.DDs))
	for i := range atT1.DDs {
		assert.True(t, comp.diagrams.BDD().Equal(atT1.DDs[i], atNextT0.DDs[i]))
	}
}
