package compiler

import (
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"

	"reachcore/internal/enc"
	"reachcore/internal/expr"
	"reachcore/internal/model"
	"reachcore/internal/symb"
	"reachcore/internal/types"
)

// Compiler lowers typed expressions into decision-diagram bit vectors plus
// deferred micro- and mux-descriptors, memoized per timed expression
// occurrence so that a shared subexpression compiled twice at the same
// time index is only lowered once.
type Compiler struct {
	diagrams *enc.Diagrams
	encoder  *enc.Encoder
	mod      *model.Module

	nodeCache map[FQTE]operand
	tmpSeq    int
}

func NewCompiler(d *enc.Diagrams, e *enc.Encoder, mod *model.Module) *Compiler {
	return &Compiler{
		diagrams:  d,
		encoder:   e,
		mod:       mod,
		nodeCache: make(map[FQTE]operand),
	}
}

// Compile lowers n at the given time index into a CompilationUnit. The
// top-level result is always materialized to a concrete type: a bare
// integer or boolean literal reaching the top without a typed sibling to
// promote against settles on its own smallest representable width.
func (c *Compiler) Compile(n *expr.Node, time int64) (*CompilationUnit, error) {
	var micros []*MicroDescriptor
	var muxes []*MuxDescriptor

	op, err := c.compileNode(n, time, &micros, &muxes)
	if err != nil {
		return nil, err
	}
	op, err = c.materializeTop(op)
	if err != nil {
		return nil, err
	}
	return &CompilationUnit{DDs: op.dds, Type: op.typ, Micros: micros, Muxes: muxes}, nil
}

func (c *Compiler) materializeTop(op operand) (operand, error) {
	switch {
	case op.isBool:
		return c.promoteOperand(op, types.Boolean{})
	case op.isConst:
		w := types.SmallestUnsignedWidth(op.constVal)
		return c.promoteOperand(op, types.UnsignedInt{NibbleWidth: (w + 3) / 4})
	default:
		return op, nil
	}
}

func (c *Compiler) compileNode(n *expr.Node, time int64, micros *[]*MicroDescriptor, muxes *[]*MuxDescriptor) (operand, error) {
	key := FQTE{Context: c.mod.Name, Expr: n, Time: time}
	if cached, ok := c.nodeCache[key]; ok {
		return cached, nil
	}

	result, err := c.compileDispatch(n, time, micros, muxes)
	if err != nil {
		return operand{}, err
	}
	c.nodeCache[key] = result
	return result, nil
}

func (c *Compiler) compileDispatch(n *expr.Node, time int64, micros *[]*MicroDescriptor, muxes *[]*MuxDescriptor) (operand, error) {
	switch n.Kind {
	case expr.KindLiteral:
		return c.compileLiteral(n)

	case expr.KindIdent:
		return c.compileIdent(n, time, micros, muxes)

	case expr.KindNext:
		return c.compileNode(n.Children[0], time+1, micros, muxes)

	case expr.KindArith:
		if n.NumChild == 1 {
			a, err := c.compileNode(n.Children[0], time, micros, muxes)
			if err != nil {
				return operand{}, err
			}
			return c.lowerNeg(a, micros)
		}
		a, err := c.compileNode(n.Children[0], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		b, err := c.compileNode(n.Children[1], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		return c.lowerArith(n.Op, a, b, micros)

	case expr.KindRelational:
		a, err := c.compileNode(n.Children[0], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		b, err := c.compileNode(n.Children[1], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		if n.Op == expr.OpEq || n.Op == expr.OpNeq {
			return c.lowerEquality(n.Op, a, b)
		}
		return c.lowerRelational(n.Op, a, b, micros)

	case expr.KindLogical:
		if n.NumChild == 1 {
			a, err := c.compileNode(n.Children[0], time, micros, muxes)
			if err != nil {
				return operand{}, err
			}
			return c.lowerNot(a)
		}
		a, err := c.compileNode(n.Children[0], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		b, err := c.compileNode(n.Children[1], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		return c.lowerLogical(n.Op, a, b)

	case expr.KindConditional:
		cond, err := c.compileNode(n.Children[0], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		then, err := c.compileNode(n.Children[1], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		els, err := c.compileNode(n.Children[2], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		return c.lowerIte(cond, then, els, muxes)

	case expr.KindSubscript:
		base, err := c.compileNode(n.Children[0], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		idx, err := c.compileNode(n.Children[1], time, micros, muxes)
		if err != nil {
			return operand{}, err
		}
		return c.lowerSubscript(base, idx, muxes)

	case expr.KindDot:
		return operand{}, fmt.Errorf("type error: dotted module-field access has no target (submodule instantiation is not implemented)")

	case expr.KindComma:
		return operand{}, fmt.Errorf("model error: comma expression used outside an argument list")

	default:
		return operand{}, fmt.Errorf("model error: unhandled expression kind %s", n.Kind)
	}
}

func (c *Compiler) compileLiteral(n *expr.Node) (operand, error) {
	if n.IsBoolLit {
		return operand{isBool: true, boolVal: n.LiteralBool, typ: types.Boolean{}}, nil
	}
	v, ok := new(big.Int).SetString(n.LiteralText, 10)
	if !ok {
		return operand{}, fmt.Errorf("model error: malformed integer literal %q", n.LiteralText)
	}
	return operand{isConst: true, constVal: v, typ: types.IntConst{}}, nil
}

func (c *Compiler) compileIdent(n *expr.Node, time int64, micros *[]*MicroDescriptor, muxes *[]*MuxDescriptor) (operand, error) {
	sym, err := c.mod.Syms.Lookup(n.Ident)
	if err != nil {
		return operand{}, err
	}

	switch sym.Kind {
	case symb.KindDefine:
		return c.compileNode(sym.DefineBody, time, micros, muxes)

	case symb.KindEnumLiteral:
		et, ok := sym.Type.(types.Enum)
		if !ok {
			return operand{}, fmt.Errorf("model error: enum literal %q has non-enum type %s", n.Ident, sym.Type)
		}
		idx := et.IndexOf(sym.ConstValue)
		if idx < 0 {
			return operand{}, fmt.Errorf("model error: %q is not a literal of %s", sym.ConstValue, et.Name)
		}
		return operand{dds: c.materializeValue(big.NewInt(int64(idx)), et), typ: et}, nil

	case symb.KindConst:
		return c.compileConstSymbol(sym)

	case symb.KindVariable, symb.KindTemporary:
		if sym.Type.Kind() == types.KindInstance {
			return operand{}, fmt.Errorf("capability error: %q has module-instance type %s, which cannot be compiled", n.Ident, sym.Type)
		}
		key := enc.Key{Context: c.mod.Name, Ident: n.Ident, Time: time}
		e := c.encoder.MakeEncoding(key, sym.Type)
		return operand{dds: e.Bits, typ: sym.Type}, nil

	default:
		return operand{}, fmt.Errorf("model error: identifier %q has unhandled symbol kind %s", n.Ident, sym.Kind)
	}
}

func (c *Compiler) compileConstSymbol(sym *symb.Symbol) (operand, error) {
	if sym.Type.Kind() == types.KindBoolean {
		v := sym.ConstValue == "true"
		return operand{dds: []rudd.Node{c.diagrams.BDD().From(v)}, typ: types.Boolean{}}, nil
	}
	v, ok := new(big.Int).SetString(sym.ConstValue, 10)
	if !ok {
		return operand{}, fmt.Errorf("model error: malformed constant literal %q for %s", sym.ConstValue, sym.Name)
	}
	return operand{dds: c.materializeValue(v, sym.Type), typ: sym.Type}, nil
}

// newTemp synthesizes a compiler-private temporary variable of the given
// algebraic type and declares it in the module's symbol table. The name is
// unique for the lifetime of the Compiler. No lowering pass in this
// package calls it: mux and micro descriptors get unnamed fresh bits from
// freshVector instead.
func (c *Compiler) newTemp(t types.Type) (*symb.Symbol, error) {
	c.tmpSeq++
	name := fmt.Sprintf("__tmp%d", c.tmpSeq)
	sym := &symb.Symbol{Name: name, Kind: symb.KindTemporary, Type: t}
	if err := c.mod.Syms.Declare(sym); err != nil {
		return nil, err
	}
	return sym, nil
}
