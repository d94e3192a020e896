package enc

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"reachcore/internal/literal"
	"reachcore/internal/types"
)

// Encoding is the ordered vector of DD bits representing one symbol's
// value at one time-step (spec.md §3 "Encoding"). Bits is little-endian:
// Bits[0] is the least significant bit.
type Encoding struct {
	Bits []rudd.Node
	Type types.Type
}

// Key is the cache key for encodings: (context, identifier, time).
type Key struct {
	Context string
	Ident   string
	Time    int64
}

// Encoder allocates and caches Encodings and evaluates SAT assignments
// back through them into expression-level literals.
type Encoder struct {
	diagrams *Diagrams
	cache    map[Key]*Encoding
}

func NewEncoder(d *Diagrams) *Encoder {
	return &Encoder{diagrams: d, cache: make(map[Key]*Encoding)}
}

// MakeEncoding returns the encoding for key, creating and caching it on
// first request (spec.md §4.1: "produced at most once and cached; the
// cache survives compilations for correctness of memoization").
func (e *Encoder) MakeEncoding(key Key, t types.Type) *Encoding {
	if existing, ok := e.cache[key]; ok {
		return existing
	}
	width := t.Width()
	if width == 0 {
		width = 1
	}
	bits := make([]rudd.Node, width)
	for i := range bits {
		bits[i] = e.diagrams.FreshBit()
	}
	enc := &Encoding{Bits: bits, Type: t}
	e.cache[key] = enc
	return enc
}

// Lookup returns a previously created encoding without allocating one.
func (e *Encoder) Lookup(key Key) (*Encoding, bool) {
	enc, ok := e.cache[key]
	return enc, ok
}

// Assignment resolves a DD bit to its boolean value under some model; ok
// is false when the bit has no assignment.
type Assignment func(node rudd.Node) (value bool, ok bool)

// Expr maps a total assignment over enc's bits back to an expression-level
// literal (spec.md §4.1). It fails cleanly if any bit is unassigned or if
// evaluation is requested on an array encoding.
func (e *Encoder) Expr(enc *Encoding, assign Assignment) (literal.Value, error) {
	if enc.Type.Kind() == types.KindArray {
		return literal.Value{}, fmt.Errorf("enc: cannot evaluate an array encoding directly; index it first")
	}

	bits := make([]bool, len(enc.Bits))
	for i, node := range enc.Bits {
		v, ok := assign(node)
		if !ok {
			return literal.Value{}, literal.ErrUnassignedBit
		}
		bits[i] = v
	}

	switch t := enc.Type.(type) {
	case types.Boolean:
		return literal.NewBool(bits[0]), nil
	case types.Enum:
		idx := literal.FromBits(bits)
		i := int(idx.Int64())
		if i < 0 || i >= len(t.Literals) {
			return literal.Value{}, fmt.Errorf("enc: enum index %d out of range for %s", i, t.Name)
		}
		return literal.NewEnum(t.Literals[i], enc.Type.Width()), nil
	case types.UnsignedInt:
		return literal.NewUnsigned(literal.FromBits(bits), enc.Type.Width()), nil
	case types.UnsignedFxd:
		return literal.NewUnsigned(literal.FromBits(bits), enc.Type.Width()), nil
	case types.SignedInt:
		return literal.NewSigned(literal.FromBits(bits), enc.Type.Width()), nil
	case types.SignedFxd:
		return literal.NewSigned(literal.FromBits(bits), enc.Type.Width()), nil
	default:
		return literal.Value{}, fmt.Errorf("enc: unsupported type %s for evaluation", enc.Type)
	}
}

// IndexEncoding carves the sub-encoding for array element j out of an
// Array encoding (flat layout: element j occupies bits [j*elemWidth,
// (j+1)*elemWidth)).
func IndexEncoding(enc *Encoding, j int) (*Encoding, error) {
	arr, ok := enc.Type.(types.Array)
	if !ok {
		return nil, fmt.Errorf("enc: IndexEncoding called on non-array type %s", enc.Type)
	}
	if j < 0 || uint32(j) >= arr.Size {
		return nil, fmt.Errorf("enc: array index %d out of bounds (size %d)", j, arr.Size)
	}
	ew := int(arr.Elem.Width())
	start := j * ew
	return &Encoding{Bits: append([]rudd.Node{}, enc.Bits[start:start+ew]...), Type: arr.Elem}, nil
}
