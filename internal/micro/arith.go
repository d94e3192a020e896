// Package micro expands the bit-level arithmetic templates a
// micro-descriptor defers: ripple-carry add/subtract, shift-and-add
// multiply, restoring division, a barrel shifter and a magnitude
// comparator, all built from rudd boolean connectives since the wired
// decision-diagram package has no native arithmetic (see
// internal/compiler's lowerArith and DESIGN.md, Open Question 4).
//
// Every vector here is little-endian: index 0 is the least significant
// bit, matching internal/literal's bit packing.
package micro

import "github.com/dalzilio/rudd"

func xor2(bdd *rudd.BDD, a, b rudd.Node) rudd.Node { return bdd.Not(bdd.Equiv(a, b)) }

func xor3(bdd *rudd.BDD, a, b, c rudd.Node) rudd.Node { return xor2(bdd, xor2(bdd, a, b), c) }

func majority(bdd *rudd.BDD, a, b, c rudd.Node) rudd.Node {
	return bdd.Or(bdd.And(a, b), bdd.And(b, c), bdd.And(c, a))
}

func invertVector(bdd *rudd.BDD, v []rudd.Node) []rudd.Node {
	out := make([]rudd.Node, len(v))
	for i, x := range v {
		out[i] = bdd.Not(x)
	}
	return out
}

func zeroVector(bdd *rudd.BDD, n int) []rudd.Node {
	out := make([]rudd.Node, n)
	z := bdd.False()
	for i := range out {
		out[i] = z
	}
	return out
}

func selectVector(bdd *rudd.BDD, cond rudd.Node, then, els []rudd.Node) []rudd.Node {
	out := make([]rudd.Node, len(then))
	for i := range out {
		out[i] = bdd.Ite(cond, then[i], els[i])
	}
	return out
}

// addWithCarry is the shared ripple-carry core: carryIn seeds the first
// full adder, letting Sub reuse it with carryIn = true (the standard
// two's-complement a + ^b + 1 trick).
func addWithCarry(bdd *rudd.BDD, a, b []rudd.Node, carryIn rudd.Node) ([]rudd.Node, rudd.Node) {
	n := len(a)
	sum := make([]rudd.Node, n)
	carry := carryIn
	for i := 0; i < n; i++ {
		sum[i] = xor3(bdd, a[i], b[i], carry)
		carry = majority(bdd, a[i], b[i], carry)
	}
	return sum, carry
}

// Add returns a+b and the final carry-out.
func Add(bdd *rudd.BDD, a, b []rudd.Node) ([]rudd.Node, rudd.Node) {
	return addWithCarry(bdd, a, b, bdd.False())
}

// Sub returns a-b via two's-complement (a + ^b + 1); the borrow-out is
// the complement of the carry-out of that addition, which callers that
// need it can derive themselves.
func Sub(bdd *rudd.BDD, a, b []rudd.Node) []rudd.Node {
	sum, _ := addWithCarry(bdd, a, invertVector(bdd, b), bdd.True())
	return sum
}

// Neg returns two's-complement negation: 0 - a.
func Neg(bdd *rudd.BDD, a []rudd.Node) []rudd.Node {
	return Sub(bdd, zeroVector(bdd, len(a)), a)
}

// Mul returns the low len(a) bits of a*b (wraparound on overflow, matching
// the ripple-adder MSB overflow semantics used throughout this core).
func Mul(bdd *rudd.BDD, a, b []rudd.Node) []rudd.Node {
	n := len(a)
	acc := zeroVector(bdd, n)
	for i := 0; i < n; i++ {
		partial := make([]rudd.Node, n)
		for j := 0; j < n; j++ {
			if j < i {
				partial[j] = bdd.False()
			} else {
				partial[j] = bdd.And(a[i], b[j-i])
			}
		}
		acc, _ = Add(bdd, acc, partial)
	}
	return acc
}

// ltMagnitude compares two same-length vectors as plain unsigned
// magnitudes, MSB first.
func ltMagnitude(bdd *rudd.BDD, a, b []rudd.Node) rudd.Node {
	n := len(a)
	eqSoFar := bdd.True()
	lt := bdd.False()
	for i := n - 1; i >= 0; i-- {
		bitLt := bdd.And(bdd.Not(a[i]), b[i])
		lt = bdd.Or(lt, bdd.And(eqSoFar, bitLt))
		eqSoFar = bdd.And(eqSoFar, bdd.Not(xor2(bdd, a[i], b[i])))
	}
	return lt
}

func flipMSB(bdd *rudd.BDD, v []rudd.Node) []rudd.Node {
	out := append([]rudd.Node{}, v...)
	out[len(out)-1] = bdd.Not(out[len(out)-1])
	return out
}

// Lt is the ordered-comparison primitive every relational op in this
// package reduces to. For signed operands it flips the sign bit of both
// operands first — the standard trick that turns two's-complement
// ordering into plain unsigned magnitude ordering.
func Lt(bdd *rudd.BDD, a, b []rudd.Node, signed bool) rudd.Node {
	if signed {
		return ltMagnitude(bdd, flipMSB(bdd, a), flipMSB(bdd, b))
	}
	return ltMagnitude(bdd, a, b)
}

func Leq(bdd *rudd.BDD, a, b []rudd.Node, signed bool) rudd.Node { return bdd.Not(Lt(bdd, b, a, signed)) }
func Gt(bdd *rudd.BDD, a, b []rudd.Node, signed bool) rudd.Node  { return Lt(bdd, b, a, signed) }
func Geq(bdd *rudd.BDD, a, b []rudd.Node, signed bool) rudd.Node { return bdd.Not(Lt(bdd, a, b, signed)) }

// DivMod implements truncating division (C semantics: the remainder
// takes the dividend's sign) via the standard unsigned restoring-division
// circuit, with a magnitude/sign split layered on top for signed
// operands.
func DivMod(bdd *rudd.BDD, a, b []rudd.Node, signed bool) (quotient, remainder []rudd.Node) {
	if !signed {
		return divModUnsigned(bdd, a, b)
	}
	signA := a[len(a)-1]
	signB := b[len(b)-1]
	magA := selectVector(bdd, signA, Neg(bdd, a), a)
	magB := selectVector(bdd, signB, Neg(bdd, b), b)
	q, r := divModUnsigned(bdd, magA, magB)
	qSign := xor2(bdd, signA, signB)
	return selectVector(bdd, qSign, Neg(bdd, q), q), selectVector(bdd, signA, Neg(bdd, r), r)
}

func divModUnsigned(bdd *rudd.BDD, a, b []rudd.Node) (quotient, remainder []rudd.Node) {
	n := len(a)
	rem := zeroVector(bdd, n)
	quot := make([]rudd.Node, n)
	for i := n - 1; i >= 0; i-- {
		rem = shiftInOne(bdd, rem, a[i])
		ge := bdd.Not(ltMagnitude(bdd, rem, b))
		sub := Sub(bdd, rem, b)
		rem = selectVector(bdd, ge, sub, rem)
		quot[i] = ge
	}
	return quot, rem
}

// shiftInOne shifts v left by one bit, discarding the MSB and inserting
// bit at position 0 — one step of the restoring-division shift register.
func shiftInOne(bdd *rudd.BDD, v []rudd.Node, bit rudd.Node) []rudd.Node {
	n := len(v)
	out := make([]rudd.Node, n)
	out[0] = bit
	for i := 1; i < n; i++ {
		out[i] = v[i-1]
	}
	return out
}

func bitsNeeded(n int) int {
	s := 0
	for (1 << s) < n {
		s++
	}
	return s
}

// ShiftLeft is a barrel shifter: amt's low log2(width) bits select power-
// of-two shift stages; higher bits of amt are ignored (shift amounts
// saturate modulo width, the usual hardware-shifter convention).
func ShiftLeft(bdd *rudd.BDD, a, amt []rudd.Node) []rudd.Node {
	n := len(a)
	cur := append([]rudd.Node{}, a...)
	for s := 0; s < bitsNeeded(n) && s < len(amt); s++ {
		step := 1 << s
		shifted := make([]rudd.Node, n)
		for i := 0; i < n; i++ {
			if i-step >= 0 {
				shifted[i] = cur[i-step]
			} else {
				shifted[i] = bdd.False()
			}
		}
		cur = selectVector(bdd, amt[s], shifted, cur)
	}
	return cur
}

// ShiftRight is ShiftLeft's mirror; for signed operands the vacated high
// bits are filled with the sign bit (arithmetic shift) instead of zero.
func ShiftRight(bdd *rudd.BDD, a, amt []rudd.Node, signed bool) []rudd.Node {
	n := len(a)
	fill := bdd.False()
	if signed {
		fill = a[n-1]
	}
	cur := append([]rudd.Node{}, a...)
	for s := 0; s < bitsNeeded(n) && s < len(amt); s++ {
		step := 1 << s
		shifted := make([]rudd.Node, n)
		for i := 0; i < n; i++ {
			if i+step < n {
				shifted[i] = cur[i+step]
			} else {
				shifted[i] = fill
			}
		}
		cur = selectVector(bdd, amt[s], shifted, cur)
	}
	return cur
}
