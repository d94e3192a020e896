package compiler

import (
	"github.com/dalzilio/rudd"

	"reachcore/internal/expr"
	"reachcore/internal/types"
)

func (c *Compiler) freshVector(width uint32) []rudd.Node {
	out := make([]rudd.Node, width)
	for i := range out {
		out[i] = c.diagrams.FreshBit()
	}
	return out
}

// lowerArith handles the binary arithmetic operators (+, -, *, /, mod,
// <<, >>). All of them go through micro-descriptors: rudd has no native
// integer arithmetic, only boolean connectives.
func (c *Compiler) lowerArith(op expr.Op, a, b operand, micros *[]*MicroDescriptor) (operand, error) {
	pa, pb, err := c.promoteArithPair(a, b)
	if err != nil {
		return operand{}, err
	}
	width := pa.typ.Width()
	out := c.freshVector(width)
	*micros = append(*micros, &MicroDescriptor{
		Signed: pa.typ.Signed(),
		Op:     op,
		Width:  width,
		Out:    out,
		In:     [][]rudd.Node{pa.dds, pb.dds},
	})
	return operand{dds: out, typ: pa.typ}, nil
}

func (c *Compiler) lowerNeg(a operand, micros *[]*MicroDescriptor) (operand, error) {
	pa, err := c.promoteArithSingle(a)
	if err != nil {
		return operand{}, err
	}
	width := pa.typ.Width()
	out := c.freshVector(width)
	*micros = append(*micros, &MicroDescriptor{
		Signed: true,
		Op:     expr.OpNeg,
		Width:  width,
		Out:    out,
		In:     [][]rudd.Node{pa.dds},
	})
	return operand{dds: out, typ: pa.typ}, nil
}

// lowerRelational handles the four ordered comparisons, which need
// magnitude comparison and so always route through a micro-descriptor.
// Equality/inequality are handled separately in lowerEquality, which
// lowers directly to DD connectives.
func (c *Compiler) lowerRelational(op expr.Op, a, b operand, micros *[]*MicroDescriptor) (operand, error) {
	pa, pb, err := c.promoteArithPair(a, b)
	if err != nil {
		return operand{}, err
	}
	width := pa.typ.Width()
	out := c.freshVector(1)
	*micros = append(*micros, &MicroDescriptor{
		Signed: pa.typ.Signed(),
		Op:     op,
		Width:  width,
		Out:    out,
		In:     [][]rudd.Node{pa.dds, pb.dds},
	})
	return operand{dds: out, typ: types.Boolean{}}, nil
}

// lowerEquality handles = and !=, which are pure bitwise operators (no
// magnitude interpretation needed) and so lower directly to rudd
// connectives, same as AND/OR/XOR/NOT — no micro-descriptor is involved.
func (c *Compiler) lowerEquality(op expr.Op, a, b operand) (operand, error) {
	pa, pb, err := c.promotePair(a, b)
	if err != nil {
		return operand{}, err
	}
	bdd := c.diagrams.BDD()
	result := bitwiseEqual(bdd, pa.dds, pb.dds)
	if op == expr.OpNeq {
		result = bdd.Not(result)
	}
	return operand{dds: []rudd.Node{result}, typ: types.Boolean{}}, nil
}

func (c *Compiler) lowerNot(a operand) (operand, error) {
	pa, err := c.forceBoolean(a)
	if err != nil {
		return operand{}, err
	}
	return operand{dds: []rudd.Node{c.diagrams.BDD().Not(pa.dds[0])}, typ: types.Boolean{}}, nil
}

func (c *Compiler) lowerLogical(op expr.Op, a, b operand) (operand, error) {
	pa, err := c.forceBoolean(a)
	if err != nil {
		return operand{}, err
	}
	pb, err := c.forceBoolean(b)
	if err != nil {
		return operand{}, err
	}
	bdd := c.diagrams.BDD()
	var result rudd.Node
	switch op {
	case expr.OpAnd:
		result = bdd.And(pa.dds[0], pb.dds[0])
	case expr.OpOr:
		result = bdd.Or(pa.dds[0], pb.dds[0])
	case expr.OpXor:
		result = bdd.Not(bdd.Equiv(pa.dds[0], pb.dds[0]))
	case expr.OpXnor:
		result = bdd.Equiv(pa.dds[0], pb.dds[0])
	case expr.OpImplies:
		result = bdd.Imp(pa.dds[0], pb.dds[0])
	default:
		return operand{}, errUnhandledOp(op)
	}
	return operand{dds: []rudd.Node{result}, typ: types.Boolean{}}, nil
}

// lowerIte lowers a conditional expression to a mux descriptor covering
// its whole result vector: the output bits are fresh variables the FSM
// assertion layer constrains to agree with cond ? then : else once the
// clause database is built, rather than being computed in-place by a
// native per-bit BDD Ite — the same deferred-descriptor discipline
// subscripts use, so both forms of branching flow through one code path
// downstream.
func (c *Compiler) lowerIte(cond, then, els operand, muxes *[]*MuxDescriptor) (operand, error) {
	pc, err := c.forceBoolean(cond)
	if err != nil {
		return operand{}, err
	}
	pt, pe, err := c.promotePair(then, els)
	if err != nil {
		return operand{}, err
	}
	width := pt.typ.Width()
	out := c.freshVector(width)
	*muxes = append(*muxes, &MuxDescriptor{
		Width:      width,
		Out:        out,
		Cond:       pc.dds[0],
		Activation: pc.dds[0],
		Then:       pt.dds,
		Else:       pe.dds,
	})
	return operand{dds: out, typ: pt.typ}, nil
}

// lowerSubscript lowers base[idx]. A constant index resolves statically
// (a plain bit slice, no descriptor needed). A variable index expands
// into a right-folded chain of binary mux descriptors, one per candidate
// branch, each guarded by an equality test against that branch's index —
// the priority order runs from the highest index (innermost, default)
// down to 0 (outermost, highest priority), so exactly one guard fires for
// any in-range index and the chain degrades to the last branch if the
// index is out of range.
func (c *Compiler) lowerSubscript(base, idx operand, muxes *[]*MuxDescriptor) (operand, error) {
	arr, ok := base.typ.(types.Array)
	if !ok {
		return operand{}, errNotArray(base.typ)
	}
	elemW := arr.Elem.Width()
	size := int(arr.Size)
	if size == 0 {
		return operand{}, errEmptyArray()
	}

	if idx.isConst {
		j := int(idx.constVal.Int64())
		if j < 0 || j >= size {
			return operand{}, errIndexOOB(j, size)
		}
		start := j * int(elemW)
		return operand{dds: base.dds[start : start+int(elemW)], typ: arr.Elem}, nil
	}
	if idx.isBool {
		return operand{}, errBoolIndex()
	}
	if !types.IsAlgebraic(idx.typ) {
		return operand{}, errBadIndexType(idx.typ)
	}

	bdd := c.diagrams.BDD()
	last := size - 1
	acc := base.dds[last*int(elemW) : (last+1)*int(elemW)]
	for j := size - 2; j >= 0; j-- {
		cnd := eqConst(bdd, idx.dds, idx.typ, int64(j))
		branch := base.dds[j*int(elemW) : (j+1)*int(elemW)]
		out := c.freshVector(elemW)
		*muxes = append(*muxes, &MuxDescriptor{
			Width:      elemW,
			Out:        out,
			Cond:       cnd,
			Activation: cnd,
			Then:       branch,
			Else:       acc,
		})
		acc = out
	}
	return operand{dds: acc, typ: arr.Elem}, nil
}
