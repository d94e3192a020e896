package model

import (
	"reachcore/internal/expr"
	"reachcore/internal/symb"
	"reachcore/internal/types"
)

// Builder assembles a Module programmatically. It stands in for the
// surface-syntax parser (out of scope per spec.md §1): callers build the
// "fully parsed and resolved model graph" spec.md §6 says the core
// receives directly, the same way the teacher's analyze command hands a
// pre-disassembled contract to its analyzer instead of re-parsing source.
type Builder struct {
	mod *Module
}

func NewBuilder(name string) *Builder {
	return &Builder{mod: &Module{
		Name:  name,
		Exprs: expr.NewStore(),
		Syms:  symb.NewTable(name),
	}}
}

// Var declares a state variable (or, if input is true, an input variable
// exempt from uniqueness constraints) and returns its reference node.
func (b *Builder) Var(name string, t types.Type, input bool) *expr.Node {
	_ = b.mod.Syms.Declare(&symb.Symbol{Name: name, Kind: symb.KindVariable, Type: t, Input: input})
	return b.mod.Exprs.Ident(name)
}

// Const declares a named constant of a given type and literal text.
func (b *Builder) Const(name string, t types.Type, literal string) *expr.Node {
	_ = b.mod.Syms.Declare(&symb.Symbol{Name: name, Kind: symb.KindConst, Type: t, ConstValue: literal})
	return b.mod.Exprs.Ident(name)
}

// Enum declares an enumerated type and its literals as symbols, returning
// the Enum type for use in Var/Const declarations.
func (b *Builder) Enum(name string, literals ...string) types.Enum {
	et := types.Enum{Name: name, Literals: literals}
	for _, lit := range literals {
		_ = b.mod.Syms.Declare(&symb.Symbol{Name: lit, Kind: symb.KindEnumLiteral, Type: et, ConstValue: lit})
	}
	return et
}

// Define declares a define (an expression body that inlines on reference)
// and returns its reference node.
func (b *Builder) Define(name string, body *expr.Node) *expr.Node {
	_ = b.mod.Syms.Declare(&symb.Symbol{Name: name, Kind: symb.KindDefine, DefineBody: body})
	return b.mod.Exprs.Ident(name)
}

// Int returns an integer literal node (base-10 text).
func (b *Builder) Int(text string) *expr.Node { return b.mod.Exprs.IntLiteral(text) }

// Bool returns a boolean literal node.
func (b *Builder) Bool(v bool) *expr.Node { return b.mod.Exprs.BoolLiteral(v) }

func (b *Builder) Next(a *expr.Node) *expr.Node { return b.mod.Exprs.Next(a) }

func (b *Builder) Not(a *expr.Node) *expr.Node {
	return b.mod.Exprs.Unary(expr.KindLogical, expr.OpNot, a)
}
func (b *Builder) Neg(a *expr.Node) *expr.Node {
	return b.mod.Exprs.Unary(expr.KindArith, expr.OpNeg, a)
}

func (b *Builder) binArith(op expr.Op, a, c *expr.Node) *expr.Node {
	return b.mod.Exprs.Binary(expr.KindArith, op, a, c)
}
func (b *Builder) binLogical(op expr.Op, a, c *expr.Node) *expr.Node {
	return b.mod.Exprs.Binary(expr.KindLogical, op, a, c)
}
func (b *Builder) binRel(op expr.Op, a, c *expr.Node) *expr.Node {
	return b.mod.Exprs.Binary(expr.KindRelational, op, a, c)
}

func (b *Builder) Add(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpAdd, a, c) }
func (b *Builder) Sub(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpSub, a, c) }
func (b *Builder) Mul(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpMul, a, c) }
func (b *Builder) Div(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpDiv, a, c) }
func (b *Builder) Mod(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpMod, a, c) }
func (b *Builder) Lshift(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpLshift, a, c) }
func (b *Builder) Rshift(a, c *expr.Node) *expr.Node { return b.binArith(expr.OpRshift, a, c) }

func (b *Builder) And(a, c *expr.Node) *expr.Node     { return b.binLogical(expr.OpAnd, a, c) }
func (b *Builder) Or(a, c *expr.Node) *expr.Node      { return b.binLogical(expr.OpOr, a, c) }
func (b *Builder) Xor(a, c *expr.Node) *expr.Node     { return b.binLogical(expr.OpXor, a, c) }
func (b *Builder) Xnor(a, c *expr.Node) *expr.Node    { return b.binLogical(expr.OpXnor, a, c) }
func (b *Builder) Implies(a, c *expr.Node) *expr.Node { return b.binLogical(expr.OpImplies, a, c) }

func (b *Builder) Lt(a, c *expr.Node) *expr.Node  { return b.binRel(expr.OpLt, a, c) }
func (b *Builder) Leq(a, c *expr.Node) *expr.Node { return b.binRel(expr.OpLeq, a, c) }
func (b *Builder) Gt(a, c *expr.Node) *expr.Node  { return b.binRel(expr.OpGt, a, c) }
func (b *Builder) Geq(a, c *expr.Node) *expr.Node { return b.binRel(expr.OpGeq, a, c) }
func (b *Builder) Eq(a, c *expr.Node) *expr.Node  { return b.binRel(expr.OpEq, a, c) }
func (b *Builder) Neq(a, c *expr.Node) *expr.Node { return b.binRel(expr.OpNeq, a, c) }

func (b *Builder) Ite(cond, then, els *expr.Node) *expr.Node {
	return b.mod.Exprs.Ite(cond, then, els)
}

func (b *Builder) Subscript(base, index *expr.Node) *expr.Node {
	return b.mod.Exprs.Subscript(base, index)
}

// AddInit/AddTrans/AddInvar conjoin onto the existing predicate (nil means
// "true"), so callers can build INIT/TRANS/INVAR incrementally.
func (b *Builder) AddInit(e *expr.Node) { b.mod.Init = b.conjoin(b.mod.Init, e) }
func (b *Builder) AddTrans(e *expr.Node) { b.mod.Trans = b.conjoin(b.mod.Trans, e) }
func (b *Builder) AddInvar(e *expr.Node) { b.mod.Invar = b.conjoin(b.mod.Invar, e) }

func (b *Builder) conjoin(existing, e *expr.Node) *expr.Node {
	if existing == nil {
		return e
	}
	return b.And(existing, e)
}

// Build resolves defines (cycle-checking them) and returns the finished
// Module.
func (b *Builder) Build() (*Module, error) {
	if err := symb.ResolveDefines(b.mod.Syms); err != nil {
		return nil, err
	}
	if b.mod.Init == nil {
		b.mod.Init = b.Bool(true)
	}
	if b.mod.Trans == nil {
		b.mod.Trans = b.Bool(true)
	}
	if b.mod.Invar == nil {
		b.mod.Invar = b.Bool(true)
	}
	return b.mod, nil
}
