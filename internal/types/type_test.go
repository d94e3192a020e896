package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidths(t *testing.T) {
	assert.Equal(t, uint32(1), Boolean{}.Width())
	assert.Equal(t, uint32(8), UnsignedInt{NibbleWidth: 2}.Width())
	assert.Equal(t, uint32(16), SignedInt{NibbleWidth: 4}.Width())
	assert.Equal(t, uint32(12), UnsignedFxd{NibbleWidth: 2, Fract: 1}.Width())
	assert.Equal(t, uint32(24), Array{Elem: UnsignedInt{NibbleWidth: 2}, Size: 3}.Width())
}

func TestEnumWidth(t *testing.T) {
	assert.Equal(t, uint32(1), Enum{Name: "e", Literals: []string{"A"}}.Width())
	assert.Equal(t, uint32(1), Enum{Name: "e", Literals: []string{"A", "B"}}.Width())
	assert.Equal(t, uint32(2), Enum{Name: "e", Literals: []string{"A", "B", "C"}}.Width())
	assert.Equal(t, uint32(3), Enum{Name: "e", Literals: []string{"A", "B", "C", "D", "E"}}.Width())
}

func TestIsAlgebraicIsMonolithic(t *testing.T) {
	assert.True(t, IsAlgebraic(UnsignedInt{NibbleWidth: 1}))
	assert.True(t, IsAlgebraic(SignedFxd{NibbleWidth: 1, Fract: 1}))
	assert.False(t, IsAlgebraic(Boolean{}))

	assert.True(t, IsMonolithic(Boolean{}))
	assert.True(t, IsMonolithic(Enum{Name: "e", Literals: []string{"A"}}))
	assert.False(t, IsMonolithic(UnsignedInt{NibbleWidth: 1}))
}

func TestPromoteConstant(t *testing.T) {
	assert.Equal(t, UnsignedInt{NibbleWidth: 2}, PromoteConstant(8, false))
	assert.Equal(t, SignedInt{NibbleWidth: 3}, PromoteConstant(9, true))
}

func TestSmallestUnsignedWidth(t *testing.T) {
	assert.Equal(t, uint32(4), SmallestUnsignedWidth(big.NewInt(0)))
	assert.Equal(t, uint32(4), SmallestUnsignedWidth(big.NewInt(5)))
	assert.Equal(t, uint32(8), SmallestUnsignedWidth(big.NewInt(200)))
	assert.Equal(t, uint32(12), SmallestUnsignedWidth(big.NewInt(4095)))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(UnsignedInt{NibbleWidth: 2}, UnsignedInt{NibbleWidth: 2}))
	assert.False(t, Equal(UnsignedInt{NibbleWidth: 2}, SignedInt{NibbleWidth: 2}))
	assert.False(t, Equal(UnsignedInt{NibbleWidth: 2}, UnsignedInt{NibbleWidth: 1}))

	e1 := Enum{Name: "color", Literals: []string{"RED", "BLUE"}}
	e2 := Enum{Name: "color", Literals: []string{"RED", "BLUE"}}
	e3 := Enum{Name: "color", Literals: []string{"RED", "GREEN"}}
	assert.True(t, Equal(e1, e2))
	assert.False(t, Equal(e1, e3))

	a1 := Array{Elem: UnsignedInt{NibbleWidth: 1}, Size: 4}
	a2 := Array{Elem: UnsignedInt{NibbleWidth: 1}, Size: 4}
	a3 := Array{Elem: UnsignedInt{NibbleWidth: 1}, Size: 5}
	assert.True(t, Equal(a1, a2))
	assert.False(t, Equal(a1, a3))
}
