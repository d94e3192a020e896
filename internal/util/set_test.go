package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddHas(t *testing.T) {
	s := NewSet[string]()
	assert.False(t, s.Has("a"))
	s.Add("a")
	assert.True(t, s.Has("a"))
	assert.Equal(t, 1, s.Len())
}

func TestSetAddIsIdempotent(t *testing.T) {
	s := NewSet[int]()
	s.Add(1)
	s.Add(1)
	assert.Equal(t, 1, s.Len())
}

func TestSetUnion(t *testing.T) {
	a := NewSet[int](1, 2)
	b := NewSet[int](2, 3)
	u := a.Union(b)
	assert.Equal(t, 3, u.Len())
	assert.True(t, u.Has(1))
	assert.True(t, u.Has(2))
	assert.True(t, u.Has(3))

	// Union must not mutate either operand.
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestSetElements(t *testing.T) {
	s := NewSet[int](1, 2, 3)
	els := s.Elements()
	assert.Equal(t, 3, len(els))
}
