package compiler

import (
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"

	"reachcore/internal/expr"
	"reachcore/internal/literal"
	"reachcore/internal/types"
)

func isRelOp(op expr.Op) bool {
	switch op {
	case expr.OpLt, expr.OpLeq, expr.OpGt, expr.OpGeq:
		return true
	default:
		return false
	}
}

// materializeValue wraps v to t's width/signedness and renders it as a
// vector of constant DD terminals (no fresh variables allocated — a known
// value costs nothing in the solver's variable budget).
func (c *Compiler) materializeValue(v *big.Int, t types.Type) []rudd.Node {
	wrapped := literal.Wrap(v, t.Width(), t.Signed())
	bits := literal.Bits(wrapped, t.Width())
	bdd := c.diagrams.BDD()
	out := make([]rudd.Node, len(bits))
	for i, b := range bits {
		out[i] = bdd.From(b)
	}
	return out
}

// promoteOperand forces a pending literal operand to target's concrete
// type (Open Question #3), or checks a concrete operand already matches
// it.
func (c *Compiler) promoteOperand(op operand, target types.Type) (operand, error) {
	switch {
	case op.isBool:
		if target.Kind() != types.KindBoolean {
			return operand{}, fmt.Errorf("type error: boolean literal used where %s is expected", target)
		}
		return operand{dds: []rudd.Node{c.diagrams.BDD().From(op.boolVal)}, typ: target}, nil
	case op.isConst:
		if !types.IsAlgebraic(target) {
			return operand{}, fmt.Errorf("type error: integer literal cannot be promoted to non-algebraic type %s", target)
		}
		return operand{dds: c.materializeValue(op.constVal, target), typ: target}, nil
	default:
		if !types.Equal(op.typ, target) {
			return operand{}, fmt.Errorf("type error: operand of type %s does not match expected type %s", op.typ, target)
		}
		return op, nil
	}
}

// promotePair resolves two operands, at least one of which may be a
// pending literal, to a common concrete type. Used by equality and by
// conditional branches, which admit any matching pair of concrete types
// (not just algebraic ones).
func (c *Compiler) promotePair(a, b operand) (operand, operand, error) {
	aPending := a.isBool || a.isConst
	bPending := b.isBool || b.isConst

	switch {
	case aPending && bPending:
		target, err := commonPendingType(a, b)
		if err != nil {
			return operand{}, operand{}, err
		}
		pa, err := c.promoteOperand(a, target)
		if err != nil {
			return operand{}, operand{}, err
		}
		pb, err := c.promoteOperand(b, target)
		return pa, pb, err
	case aPending:
		pa, err := c.promoteOperand(a, b.typ)
		return pa, b, err
	case bPending:
		pb, err := c.promoteOperand(b, a.typ)
		return a, pb, err
	default:
		if !types.Equal(a.typ, b.typ) {
			return operand{}, operand{}, fmt.Errorf("type error: mismatched operand types %s and %s", a.typ, b.typ)
		}
		return a, b, nil
	}
}

func commonPendingType(a, b operand) (types.Type, error) {
	if a.isBool != b.isBool {
		return nil, fmt.Errorf("type error: cannot reconcile a boolean literal with an integer literal")
	}
	if a.isBool {
		return types.Boolean{}, nil
	}
	wa := types.SmallestUnsignedWidth(a.constVal)
	wb := types.SmallestUnsignedWidth(b.constVal)
	w := wa
	if wb > w {
		w = wb
	}
	return types.UnsignedInt{NibbleWidth: (w + 3) / 4}, nil
}

// promoteArithPair is promotePair's algebraic-only sibling: used for +, -,
// *, /, mod, shifts and ordered comparisons, which never accept a boolean
// or enum operand.
func (c *Compiler) promoteArithPair(a, b operand) (operand, operand, error) {
	aPending := a.isBool || a.isConst
	bPending := b.isBool || b.isConst
	if a.isBool || b.isBool {
		return operand{}, operand{}, fmt.Errorf("type error: boolean operand in arithmetic expression")
	}
	if !aPending && !types.IsAlgebraic(a.typ) {
		return operand{}, operand{}, fmt.Errorf("type error: non-algebraic operand %s in arithmetic expression", a.typ)
	}
	if !bPending && !types.IsAlgebraic(b.typ) {
		return operand{}, operand{}, fmt.Errorf("type error: non-algebraic operand %s in arithmetic expression", b.typ)
	}
	return c.promotePair(a, b)
}

func (c *Compiler) promoteArithSingle(a operand) (operand, error) {
	if a.isBool {
		return operand{}, fmt.Errorf("type error: boolean operand in arithmetic expression")
	}
	if a.isConst {
		w := types.SmallestUnsignedWidth(a.constVal)
		return c.promoteOperand(a, types.SignedInt{NibbleWidth: (w + 3) / 4})
	}
	if !types.IsAlgebraic(a.typ) {
		return operand{}, fmt.Errorf("type error: non-algebraic operand %s in arithmetic expression", a.typ)
	}
	return a, nil
}

func (c *Compiler) forceBoolean(a operand) (operand, error) {
	if a.isConst {
		return operand{}, fmt.Errorf("type error: integer literal used where a boolean is expected")
	}
	if a.isBool {
		return operand{dds: []rudd.Node{c.diagrams.BDD().From(a.boolVal)}, typ: types.Boolean{}}, nil
	}
	if a.typ.Kind() != types.KindBoolean {
		return operand{}, fmt.Errorf("type error: operand of type %s used where a boolean is expected", a.typ)
	}
	return a, nil
}

// bitwiseEqual reduces two equal-length bit vectors to a single DD node
// that is true exactly when every corresponding pair of bits agrees.
func bitwiseEqual(bdd *rudd.BDD, a, b []rudd.Node) rudd.Node {
	acc := bdd.True()
	for i := range a {
		acc = bdd.And(acc, bdd.Equiv(a[i], b[i]))
	}
	return acc
}

// eqConst reduces dds to a single DD node that is true exactly when the
// vector equals the constant j (rendered at width/signedness matching t).
func eqConst(bdd *rudd.BDD, dds []rudd.Node, t types.Type, j int64) rudd.Node {
	wrapped := literal.Wrap(big.NewInt(j), t.Width(), t.Signed())
	bits := literal.Bits(wrapped, t.Width())
	acc := bdd.True()
	for i, want := range bits {
		lit := dds[i]
		if !want {
			lit = bdd.Not(lit)
		}
		acc = bdd.And(acc, lit)
	}
	return acc
}
