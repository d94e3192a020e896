package micro

import (
	"math/big"
	"testing"

	"github.com/dalzilio/rudd"
	"github.com/stretchr/testify/assert"

	"reachcore/internal/literal"
)

func constVector(bdd *rudd.BDD, v int64, width uint32) []rudd.Node {
	bits := literal.Bits(literal.Wrap(big.NewInt(v), width, false), width)
	out := make([]rudd.Node, len(bits))
	for i, b := range bits {
		out[i] = bdd.From(b)
	}
	return out
}

func TestAddMatchesArithmeticModuloWidth(t *testing.T) {
	bdd, err := rudd.New(1)
	assert.NoError(t, err)

	a := constVector(bdd, 5, 8)
	b := constVector(bdd, 250, 8)

	sum, _ := Add(bdd, a, b)
	got := vectorToInt(bdd, sum)
	assert.Equal(t, int64((5+250)%256), got)
}

func TestSubMatchesArithmeticModuloWidth(t *testing.T) {
	bdd, err := rudd.New(1)
	assert.NoError(t, err)

	a := constVector(bdd, 5, 8)
	b := constVector(bdd, 7, 8)

	diff := Sub(bdd, a, b)
	got := vectorToInt(bdd, diff)
	assert.Equal(t, int64(254), got) // 5-7 mod 256
}

func TestLtUnsigned(t *testing.T) {
	bdd, err := rudd.New(1)
	assert.NoError(t, err)

	a := constVector(bdd, 3, 8)
	b := constVector(bdd, 9, 8)

	lt := Lt(bdd, a, b, false)
	assert.True(t, bdd.Equal(lt, bdd.True()))

	geq := Geq(bdd, a, b, false)
	assert.True(t, bdd.Equal(geq, bdd.False()))
}

func vectorToInt(bdd *rudd.BDD, v []rudd.Node) int64 {
	var r int64
	for i, n := range v {
		if bdd.Equal(n, bdd.True()) {
			r |= 1 << i
		}
	}
	return r
}
