package compiler

import (
	"fmt"

	"reachcore/internal/expr"
	"reachcore/internal/types"
)

func errUnhandledOp(op expr.Op) error {
	return fmt.Errorf("model error: unhandled logical operator %s", op)
}

func errNotArray(t types.Type) error {
	return fmt.Errorf("type error: subscript applied to non-array type %s", t)
}

func errEmptyArray() error {
	return fmt.Errorf("model error: subscript applied to a zero-size array")
}

func errIndexOOB(j, size int) error {
	return fmt.Errorf("type error: constant index %d out of bounds for array of size %d", j, size)
}

func errBoolIndex() error {
	return fmt.Errorf("type error: boolean literal used as an array index")
}

func errBadIndexType(t types.Type) error {
	return fmt.Errorf("type error: non-algebraic type %s used as an array index", t)
}
