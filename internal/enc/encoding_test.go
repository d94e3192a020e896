package enc

import (
	"math/big"
	"testing"

	"github.com/dalzilio/rudd"
	"github.com/stretchr/testify/assert"

	"reachcore/internal/literal"
	"reachcore/internal/types"
)

func TestMakeEncodingCachesByKey(t *testing.T) {
	d := NewDiagrams()
	e := NewEncoder(d)

	key := Key{Context: "m", Ident: "c", Time: 0}
	t1 := types.UnsignedInt{NibbleWidth: 2}

	first := e.MakeEncoding(key, t1)
	second := e.MakeEncoding(key, t1)
	assert.Same(t, first, second)

	_, ok := e.Lookup(key)
	assert.True(t, ok)

	_, ok = e.Lookup(Key{Context: "m", Ident: "other", Time: 0})
	assert.False(t, ok)
}

func TestMakeEncodingAllocatesDistinctBitsAcrossTime(t *testing.T) {
	d := NewDiagrams()
	e := NewEncoder(d)
	ty := types.Boolean{}

	e0 := e.MakeEncoding(Key{Context: "m", Ident: "x", Time: 0}, ty)
	e1 := e.MakeEncoding(Key{Context: "m", Ident: "x", Time: 1}, ty)
	assert.False(t, d.BDD().Equal(e0.Bits[0], e1.Bits[0]))
}

func TestExprRoundTripsUnsignedValue(t *testing.T) {
	d := NewDiagrams()
	e := NewEncoder(d)
	ty := types.UnsignedInt{NibbleWidth: 2}
	key := Key{Context: "m", Ident: "c", Time: 0}
	enc := e.MakeEncoding(key, ty)

	want := literal.Bits(big.NewInt(0xA5), ty.Width())
	assign := func(n rudd.Node) (bool, bool) {
		for i, b := range enc.Bits {
			if d.BDD().Equal(b, n) {
				return want[i], true
			}
		}
		return false, false
	}

	v, err := e.Expr(enc, assign)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0xA5), v.Int())
}

func TestExprUnassignedBitErrors(t *testing.T) {
	d := NewDiagrams()
	e := NewEncoder(d)
	enc := e.MakeEncoding(Key{Context: "m", Ident: "b", Time: 0}, types.Boolean{})

	_, err := e.Expr(enc, func(rudd.Node) (bool, bool) { return false, false })
	assert.ErrorIs(t, err, literal.ErrUnassignedBit)
}

func TestIndexEncodingCarvesArrayElement(t *testing.T) {
	d := NewDiagrams()
	e := NewEncoder(d)
	arr := types.Array{Elem: types.UnsignedInt{NibbleWidth: 1}, Size: 3}
	full := e.MakeEncoding(Key{Context: "m", Ident: "arr", Time: 0}, arr)

	elem1, err := IndexEncoding(full, 1)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(elem1.Bits))
	assert.True(t, d.BDD().Equal(elem1.Bits[0], full.Bits[4]))

	_, err = IndexEncoding(full, 3)
	assert.Error(t, err)
}
