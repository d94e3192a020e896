package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentInterning(t *testing.T) {
	s := NewStore()
	a := s.Ident("x")
	b := s.Ident("x")
	assert.Same(t, a, b)
	assert.NotSame(t, a, s.Ident("y"))
}

func TestBinaryInterning(t *testing.T) {
	s := NewStore()
	x := s.Ident("x")
	y := s.Ident("y")

	a := s.Binary(KindArith, OpAdd, x, y)
	b := s.Binary(KindArith, OpAdd, x, y)
	assert.Same(t, a, b)

	c := s.Binary(KindArith, OpSub, x, y)
	assert.NotSame(t, a, c)
}

func TestLiteralInterning(t *testing.T) {
	s := NewStore()
	assert.Same(t, s.IntLiteral("42"), s.IntLiteral("42"))
	assert.NotSame(t, s.IntLiteral("42"), s.IntLiteral("43"))

	assert.Same(t, s.BoolLiteral(true), s.BoolLiteral(true))
	assert.NotSame(t, s.BoolLiteral(true), s.BoolLiteral(false))
}

func TestIteAndNextDistinctFromBinary(t *testing.T) {
	s := NewStore()
	x := s.Ident("x")
	y := s.Ident("y")
	z := s.Ident("z")

	ite := s.Ite(x, y, z)
	assert.Equal(t, KindConditional, ite.Kind)
	assert.Equal(t, 3, ite.NumChild)

	nx := s.Next(x)
	assert.Equal(t, KindNext, nx.Kind)
	assert.NotSame(t, nx, x)
}

// walkRecorder is a Visitor that records every node it's given, including
// repeats reached through different parents, matching Walk's documented
// per-occurrence (not per-node) traversal semantics.
type walkRecorder struct {
	pre []*Node
}

func (w *walkRecorder) Pre(n *Node) bool { w.pre = append(w.pre, n); return true }
func (w *walkRecorder) In(n *Node)       {}
func (w *walkRecorder) Post(n *Node)     {}

func TestWalkVisitsSharedSubexpressionPerOccurrence(t *testing.T) {
	s := NewStore()
	x := s.Ident("x")
	shared := s.Binary(KindArith, OpAdd, x, x)
	top := s.Binary(KindArith, OpMul, shared, shared)

	rec := &walkRecorder{}
	Walk(rec, top)

	assert.Equal(t, 7, len(rec.pre)) // top, shared, x, x, shared, x, x
}
