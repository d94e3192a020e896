// Package model holds the value object spec.md's Design Notes call "what
// is conceptually the model": a Module built once by the driver and held
// by read-only reference from every other component for the duration of
// verification (spec.md §9 "Process-wide managers"). There is no
// process-wide singleton here — a Module is constructed explicitly and
// threaded through.
//
// The surface-syntax parser is out of scope (spec.md §1); Module is built
// programmatically via the Builder API in builder.go, playing the role of
// "a fully parsed and resolved model graph" that spec.md §6 says the core
// receives.
package model

import (
	"reachcore/internal/expr"
	"reachcore/internal/symb"
)

// Module is one FSM: its symbol table plus the INIT/TRANS/INVAR predicates
// that constrain it. A Context in the FQTE sense (spec.md §3) is simply a
// pointer to the owning Module.
type Module struct {
	Name string

	Exprs *expr.Store
	Syms  *symb.Table

	Init  *expr.Node
	Trans *expr.Node
	Invar *expr.Node
}

// Variables returns the module's state+input variables in declaration
// order.
func (m *Module) Variables() []*symb.Symbol {
	return m.Syms.Variables()
}

// StateVariables returns the module's variables excluding Input-marked
// ones — the set participating in loopback/uniqueness constraints.
func (m *Module) StateVariables() []*symb.Symbol {
	return m.Syms.StateVariables()
}
