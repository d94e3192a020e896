// Package symb implements the symbol table (spec.md §3 "Symbol"): the
// binding between an identifier in a context and its meaning — constant,
// enumeration literal, variable, compiler-synthesised temporary, or
// define.
package symb

import (
	"fmt"

	"reachcore/internal/expr"
	"reachcore/internal/types"
)

// Kind discriminates what an identifier is bound to.
type Kind int

const (
	KindConst Kind = iota
	KindEnumLiteral
	KindVariable
	KindTemporary
	KindDefine
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindEnumLiteral:
		return "enum-literal"
	case KindVariable:
		return "variable"
	case KindTemporary:
		return "temporary"
	case KindDefine:
		return "define"
	default:
		return "unknown"
	}
}

// Symbol ties an identifier to its meaning within a Context.
type Symbol struct {
	Name string
	Kind Kind
	Type types.Type

	// ConstValue holds the literal text for KindConst/KindEnumLiteral.
	ConstValue string

	// DefineBody is the expression a define inlines to on reference.
	DefineBody *expr.Node

	// Input marks a variable as a TRANS-free input (no next() constraint
	// of its own); state variables are Input == false. Only meaningful
	// for KindVariable.
	Input bool
}

// Table is the symbol table for one context (module), keyed by
// identifier, matching spec.md §3's "(context, identifier)" key — the
// context itself is the Table (or, for nested scopes, a chain rooted at
// one), so the composite key collapses to plain map lookup once you hold
// the right Table.
type Table struct {
	name    string
	symbols map[string]*Symbol
	order   []string // declaration order, for deterministic iteration (witness frames, uniqueness constraints)
}

func NewTable(name string) *Table {
	return &Table{name: name, symbols: make(map[string]*Symbol)}
}

func (t *Table) Name() string { return t.name }

func (t *Table) Declare(sym *Symbol) error {
	if _, exists := t.symbols[sym.Name]; exists {
		return fmt.Errorf("model error: identifier %q redeclared in context %q", sym.Name, t.name)
	}
	t.symbols[sym.Name] = sym
	t.order = append(t.order, sym.Name)
	return nil
}

func (t *Table) Lookup(name string) (*Symbol, error) {
	sym, ok := t.symbols[name]
	if !ok {
		return nil, fmt.Errorf("model error: unresolved identifier %q in context %q", name, t.name)
	}
	return sym, nil
}

// Variables returns every KindVariable symbol in declaration order. Used
// by the FSM assertion layer and witness layer to enumerate state/input
// variables deterministically.
func (t *Table) Variables() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		if s := t.symbols[name]; s.Kind == KindVariable {
			out = append(out, s)
		}
	}
	return out
}

// StateVariables returns variables that are not Input — the ones that
// participate in state-uniqueness constraints (spec.md §4.5).
func (t *Table) StateVariables() []*Symbol {
	var out []*Symbol
	for _, v := range t.Variables() {
		if !v.Input {
			out = append(out, v)
		}
	}
	return out
}
