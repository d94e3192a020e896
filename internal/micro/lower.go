package micro

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"reachcore/internal/compiler"
	"reachcore/internal/expr"
)

// Eval computes the result vector a micro-descriptor's operator would
// produce from its input operands. The caller (internal/fsm) is
// responsible for asserting that the descriptor's own Out vector equals
// this result — Eval only does the bit-circuit arithmetic, it does not
// touch the solver.
func Eval(bdd *rudd.BDD, m *compiler.MicroDescriptor) ([]rudd.Node, error) {
	switch m.Op {
	case expr.OpAdd:
		sum, _ := Add(bdd, m.In[0], m.In[1])
		return sum, nil
	case expr.OpSub:
		return Sub(bdd, m.In[0], m.In[1]), nil
	case expr.OpNeg:
		return Neg(bdd, m.In[0]), nil
	case expr.OpMul:
		return Mul(bdd, m.In[0], m.In[1]), nil
	case expr.OpDiv:
		q, _ := DivMod(bdd, m.In[0], m.In[1], m.Signed)
		return q, nil
	case expr.OpMod:
		_, r := DivMod(bdd, m.In[0], m.In[1], m.Signed)
		return r, nil
	case expr.OpLshift:
		return ShiftLeft(bdd, m.In[0], m.In[1]), nil
	case expr.OpRshift:
		return ShiftRight(bdd, m.In[0], m.In[1], m.Signed), nil
	case expr.OpLt:
		return []rudd.Node{Lt(bdd, m.In[0], m.In[1], m.Signed)}, nil
	case expr.OpLeq:
		return []rudd.Node{Leq(bdd, m.In[0], m.In[1], m.Signed)}, nil
	case expr.OpGt:
		return []rudd.Node{Gt(bdd, m.In[0], m.In[1], m.Signed)}, nil
	case expr.OpGeq:
		return []rudd.Node{Geq(bdd, m.In[0], m.In[1], m.Signed)}, nil
	default:
		return nil, fmt.Errorf("micro: unhandled operator %s", m.Op)
	}
}

// Equivalence returns the single DD node asserting that out matches
// computed bit for bit (the Tseitin-style definitional constraint a
// micro-descriptor contributes to the clause database).
func Equivalence(bdd *rudd.BDD, out, computed []rudd.Node) rudd.Node {
	acc := bdd.True()
	for i := range out {
		acc = bdd.And(acc, bdd.Equiv(out[i], computed[i]))
	}
	return acc
}

// EvalMux computes a mux descriptor's selected vector natively via
// rudd's ternary Ite, one call per bit.
func EvalMux(bdd *rudd.BDD, m *compiler.MuxDescriptor) []rudd.Node {
	out := make([]rudd.Node, len(m.Out))
	for i := range out {
		out[i] = bdd.Ite(m.Activation, m.Then[i], m.Else[i])
	}
	return out
}
