package witness

import (
	"fmt"
	"math/big"

	"reachcore/internal/expr"
	"reachcore/internal/literal"
	"reachcore/internal/model"
	"reachcore/internal/symb"
	"reachcore/internal/types"
)

// Evaluator walks an expression DAG against one concrete witness Frame,
// computing literal.Value results with ordinary two's-complement/
// wraparound host arithmetic — the counterpart, at witness-reporting
// time, of internal/micro's symbolic bit-circuit arithmetic at solving
// time. Results are memoized per node for the lifetime of the Evaluator,
// since frame/time are fixed once constructed.
type Evaluator struct {
	mod   *model.Module
	frame Frame
	cache map[*expr.Node]literal.Value
}

func NewEvaluator(mod *model.Module, frame Frame) *Evaluator {
	return &Evaluator{mod: mod, frame: frame, cache: make(map[*expr.Node]literal.Value)}
}

func (ev *Evaluator) Eval(n *expr.Node) (literal.Value, error) {
	if v, ok := ev.cache[n]; ok {
		return v, nil
	}
	v, err := ev.evalDispatch(n)
	if err != nil {
		return literal.Value{}, err
	}
	ev.cache[n] = v
	return v, nil
}

func (ev *Evaluator) evalDispatch(n *expr.Node) (literal.Value, error) {
	switch n.Kind {
	case expr.KindLiteral:
		if n.IsBoolLit {
			return literal.NewBool(n.LiteralBool), nil
		}
		v, ok := new(big.Int).SetString(n.LiteralText, 10)
		if !ok {
			return literal.Value{}, fmt.Errorf("model error: malformed integer literal %q", n.LiteralText)
		}
		w := types.SmallestUnsignedWidth(v)
		return literal.NewUnsigned(v, w), nil

	case expr.KindIdent:
		return ev.evalIdent(n)

	case expr.KindArith:
		if n.NumChild == 1 {
			a, err := ev.Eval(n.Children[0])
			if err != nil {
				return literal.Value{}, err
			}
			return literal.NewSigned(new(big.Int).Neg(a.Int()), a.Width()), nil
		}
		a, err := ev.Eval(n.Children[0])
		if err != nil {
			return literal.Value{}, err
		}
		b, err := ev.Eval(n.Children[1])
		if err != nil {
			return literal.Value{}, err
		}
		return ev.evalArith(n.Op, a, b)

	case expr.KindRelational:
		a, err := ev.Eval(n.Children[0])
		if err != nil {
			return literal.Value{}, err
		}
		b, err := ev.Eval(n.Children[1])
		if err != nil {
			return literal.Value{}, err
		}
		return ev.evalRelational(n.Op, a, b)

	case expr.KindLogical:
		if n.NumChild == 1 {
			a, err := ev.Eval(n.Children[0])
			if err != nil {
				return literal.Value{}, err
			}
			return literal.NewBool(!a.Bool()), nil
		}
		a, err := ev.Eval(n.Children[0])
		if err != nil {
			return literal.Value{}, err
		}
		b, err := ev.Eval(n.Children[1])
		if err != nil {
			return literal.Value{}, err
		}
		return ev.evalLogical(n.Op, a, b)

	case expr.KindConditional:
		c, err := ev.Eval(n.Children[0])
		if err != nil {
			return literal.Value{}, err
		}
		if c.Bool() {
			return ev.Eval(n.Children[1])
		}
		return ev.Eval(n.Children[2])

	case expr.KindNext:
		return literal.Value{}, fmt.Errorf("model error: next() has no meaning evaluated against a single witness frame")

	default:
		return literal.Value{}, fmt.Errorf("model error: unsupported expression kind %s in witness evaluation", n.Kind)
	}
}

func (ev *Evaluator) evalIdent(n *expr.Node) (literal.Value, error) {
	if v, ok := ev.frame.Values[n.Ident]; ok {
		return v, nil
	}
	sym, err := ev.mod.Syms.Lookup(n.Ident)
	if err != nil {
		return literal.Value{}, err
	}
	switch sym.Kind {
	case symb.KindDefine:
		return ev.Eval(sym.DefineBody)
	case symb.KindEnumLiteral:
		et := sym.Type.(types.Enum)
		return literal.NewEnum(sym.ConstValue, et.Width()), nil
	case symb.KindConst:
		if sym.Type.Kind() == types.KindBoolean {
			return literal.NewBool(sym.ConstValue == "true"), nil
		}
		v, ok := new(big.Int).SetString(sym.ConstValue, 10)
		if !ok {
			return literal.Value{}, fmt.Errorf("model error: malformed constant literal %q", sym.ConstValue)
		}
		if sym.Type.Signed() {
			return literal.NewSigned(v, sym.Type.Width()), nil
		}
		return literal.NewUnsigned(v, sym.Type.Width()), nil
	default:
		return literal.Value{}, fmt.Errorf("model error: %q has no value in this witness frame", n.Ident)
	}
}

func (ev *Evaluator) evalArith(op expr.Op, a, b literal.Value) (literal.Value, error) {
	signed := a.Kind() == literal.KindSigned || b.Kind() == literal.KindSigned
	width := a.Width()
	if b.Width() > width {
		width = b.Width()
	}
	ai, bi := a.Int(), b.Int()
	var r *big.Int
	switch op {
	case expr.OpAdd:
		r = new(big.Int).Add(ai, bi)
	case expr.OpSub:
		r = new(big.Int).Sub(ai, bi)
	case expr.OpMul:
		r = new(big.Int).Mul(ai, bi)
	case expr.OpDiv:
		if bi.Sign() == 0 {
			return literal.Value{}, fmt.Errorf("model error: division by zero")
		}
		r = new(big.Int).Quo(ai, bi)
	case expr.OpMod:
		if bi.Sign() == 0 {
			return literal.Value{}, fmt.Errorf("model error: modulo by zero")
		}
		r = new(big.Int).Rem(ai, bi)
	case expr.OpLshift:
		r = new(big.Int).Lsh(ai, uint(bi.Int64()))
	case expr.OpRshift:
		r = new(big.Int).Rsh(ai, uint(bi.Int64()))
	default:
		return literal.Value{}, fmt.Errorf("model error: unhandled arithmetic operator %s", op)
	}
	if signed {
		return literal.NewSigned(r, width), nil
	}
	return literal.NewUnsigned(r, width), nil
}

func (ev *Evaluator) evalRelational(op expr.Op, a, b literal.Value) (literal.Value, error) {
	if op == expr.OpEq {
		return literal.NewBool(valuesEqual(a, b)), nil
	}
	if op == expr.OpNeq {
		return literal.NewBool(!valuesEqual(a, b)), nil
	}
	cmp := a.Int().Cmp(b.Int())
	switch op {
	case expr.OpLt:
		return literal.NewBool(cmp < 0), nil
	case expr.OpLeq:
		return literal.NewBool(cmp <= 0), nil
	case expr.OpGt:
		return literal.NewBool(cmp > 0), nil
	case expr.OpGeq:
		return literal.NewBool(cmp >= 0), nil
	default:
		return literal.Value{}, fmt.Errorf("model error: unhandled relational operator %s", op)
	}
}

func valuesEqual(a, b literal.Value) bool {
	if a.Kind() == literal.KindEnum || b.Kind() == literal.KindEnum {
		return a.EnumLiteral() == b.EnumLiteral()
	}
	if a.Kind() == literal.KindBool || b.Kind() == literal.KindBool {
		return a.Bool() == b.Bool()
	}
	return a.Int().Cmp(b.Int()) == 0
}

func (ev *Evaluator) evalLogical(op expr.Op, a, b literal.Value) (literal.Value, error) {
	switch op {
	case expr.OpAnd:
		return literal.NewBool(a.Bool() && b.Bool()), nil
	case expr.OpOr:
		return literal.NewBool(a.Bool() || b.Bool()), nil
	case expr.OpXor:
		return literal.NewBool(a.Bool() != b.Bool()), nil
	case expr.OpXnor:
		return literal.NewBool(a.Bool() == b.Bool()), nil
	case expr.OpImplies:
		return literal.NewBool(!a.Bool() || b.Bool()), nil
	default:
		return literal.Value{}, fmt.Errorf("model error: unhandled logical operator %s", op)
	}
}
