// Package compiler implements the compiler (C4): lowering a typed
// expression to a vector of decision-diagram bits plus a list of
// micro-operator descriptors, memoized on (context, expression, time)
// (spec.md §4.2).
package compiler

import (
	"math/big"

	"github.com/dalzilio/rudd"

	"reachcore/internal/expr"
	"reachcore/internal/types"
)

// FQTE is the fully-qualified timed expression key used for memoization
// throughout the encoder, compiler and witness layer (spec.md §3).
type FQTE struct {
	Context string
	Expr    *expr.Node
	Time    int64
}

// MicroDescriptor is a deferred instruction to expand an operation the DD
// package cannot represent directly (spec.md §3 "Micro-descriptor"). Out
// and In are little-endian bit vectors; In holds one vector per operand
// (2 for binary arithmetic/relational/shift ops, 1 for NEG).
type MicroDescriptor struct {
	Signed bool
	Op     expr.Op
	Width  uint32
	Out    []rudd.Node
	In     [][]rudd.Node
}

// MuxDescriptor is a deferred multiplexer used to lower subscripts and
// nested conditionals safely (spec.md §3 "Multiplexer descriptor").
type MuxDescriptor struct {
	Width      uint32
	Out        []rudd.Node
	Cond       rudd.Node
	Activation rudd.Node
	Then       []rudd.Node
	Else       []rudd.Node
}

// CompilationUnit is the result of lowering one top-level expression
// (spec.md §3 "Compilation unit").
type CompilationUnit struct {
	DDs    []rudd.Node
	Type   types.Type
	Micros []*MicroDescriptor
	Muxes  []*MuxDescriptor
}

// operand is compileNode's return value per visited node: either a
// materialized DD vector of a concrete type, or a pending constant
// (literal not yet promoted to a concrete width/signedness, Open
// Question #3).
type operand struct {
	dds      []rudd.Node
	typ      types.Type
	isConst  bool
	constVal *big.Int
	isBool   bool
	boolVal  bool
}
