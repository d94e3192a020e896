// Package literal represents scalar expression-level values — the things
// a witness frame or a constant-folding pass deals in, as opposed to the
// symbolic decision-diagram bits the compiler and encoder manipulate.
//
// The bit<->big.Int packing here is the same algorithm the teacher used to
// move values in and out of SMT bit-vector terms (internal/smt/bitvec.go in
// the original gscanner tree); it is repurposed here to pack/unpack plain
// Go values against a little-endian bit vector recovered from a SAT model.
package literal

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Kind discriminates the scalar literal variants a Value can hold.
type Kind int

const (
	KindBool Kind = iota
	KindUnsigned
	KindSigned
	KindEnum
)

// Value is a concrete, non-symbolic expression-level literal: a witness
// frame entry, a folded constant, or the right-hand side of a comparison
// emitted by a micro-descriptor template.
type Value struct {
	kind    Kind
	width   uint32 // in bits; 0 for Bool
	boolean bool
	magnitude *big.Int // unsigned two's-complement bit pattern
	enumLit string
}

func NewBool(v bool) Value {
	return Value{kind: KindBool, boolean: v}
}

func NewUnsigned(v *big.Int, width uint32) Value {
	return Value{kind: KindUnsigned, width: width, magnitude: Wrap(v, width, false)}
}

func NewSigned(v *big.Int, width uint32) Value {
	return Value{kind: KindSigned, width: width, magnitude: Wrap(v, width, true)}
}

func NewEnum(literal string, width uint32) Value {
	return Value{kind: KindEnum, width: width, enumLit: literal}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Width() uint32 { return v.width }
func (v Value) Bool() bool {
	return v.boolean
}

// Int returns the mathematical value: two's-complement-interpreted for
// KindSigned, plain magnitude otherwise.
func (v Value) Int() *big.Int {
	if v.kind != KindSigned {
		return new(big.Int).Set(v.magnitude)
	}
	return signedValueOf(v.magnitude, v.width)
}

func (v Value) EnumLiteral() string { return v.enumLit }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.boolean {
			return "TRUE"
		}
		return "FALSE"
	case KindEnum:
		return v.enumLit
	default:
		return hexutil.EncodeBig(v.Int())
	}
}

// Wrap reduces value modulo 2^width, producing the unsigned bit pattern a
// ripple adder's most-significant digit would leave behind once the final
// carry/borrow past the top bit is discarded (Open Question #2 in
// DESIGN.md: wrap-around for unsigned, two's-complement wrap for signed —
// both reduce to "keep the low `width` bits" at the representation level).
func Wrap(v *big.Int, width uint32, signed bool) *big.Int {
	if width == 0 {
		return big.NewInt(0)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	_ = signed // wrapping itself is identical; sign only affects interpretation (Int())
	return r
}

func signedValueOf(unsignedBits *big.Int, width uint32) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if unsignedBits.Cmp(half) < 0 {
		return new(big.Int).Set(unsignedBits)
	}
	full := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Sub(unsignedBits, full)
}

// Bits returns the little-endian bit pattern of the value's unsigned
// representation, padded/truncated to width bits. Index 0 is the least
// significant bit. This mirrors newBitVecValFromBigInt's bit-extraction
// loop in the teacher's SMT layer, retargeted to plain bools.
func Bits(v *big.Int, width uint32) []bool {
	bits := make([]bool, width)
	for i := uint32(0); i < width; i++ {
		bits[i] = v.Bit(int(i)) == 1
	}
	return bits
}

// FromBits packs a little-endian bit pattern back into a big.Int, the
// inverse of Bits. Used by the encoder's expr(assignment) evaluation
// (spec.md §4.1) to recover a literal from a total bit assignment.
func FromBits(bits []bool) *big.Int {
	r := new(big.Int)
	for i, b := range bits {
		if b {
			r.SetBit(r, i, 1)
		}
	}
	return r
}

// ErrUnassignedBit is returned by evaluators when a total assignment is
// required but some bit of the encoding has no value.
var ErrUnassignedBit = fmt.Errorf("assignment leaves a bit unassigned")
