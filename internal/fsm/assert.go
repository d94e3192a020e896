// Package fsm is the FSM assertion layer (C7): it compiles INIT/TRANS/
// INVAR and ad-hoc formulas at a given time index and pushes their CNF
// projection, plus every deferred micro/mux descriptor's definitional
// constraints, into a satx.Engine's clause database under a caller-
// supplied retractable group.
package fsm

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"reachcore/internal/cnf"
	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/expr"
	"reachcore/internal/micro"
	"reachcore/internal/model"
	"reachcore/internal/satx"
	"reachcore/internal/types"
)

// MirrorTime maps a backward-search frame index k to a time index
// disjoint from every forward-search index (which run 0, 1, 2, ...):
// the idiomatic equivalent of the source's `UINT_MAX - k` trick, done
// here with plain negative int64s rather than unsigned wraparound.
func MirrorTime(k int64) int64 {
	return -(k + 1)
}

// Asserter ties one Module's compiler, diagrams and encoder to one
// satx.Engine. Forward and backward reachability strategies each own
// their own Asserter (over their own Engine) but share the Module,
// Compiler and Diagrams, so a variable means the same bit in both.
type Asserter struct {
	mod      *model.Module
	comp     *compiler.Compiler
	diagrams *enc.Diagrams
	encoder  *enc.Encoder
	sat      *satx.Engine
}

func NewAsserter(mod *model.Module, comp *compiler.Compiler, d *enc.Diagrams, e *enc.Encoder, sat *satx.Engine) *Asserter {
	return &Asserter{mod: mod, comp: comp, diagrams: d, encoder: e, sat: sat}
}

func (a *Asserter) AssertInit(time int64, group int) error {
	return a.assertFormula(a.mod.Init, time, group)
}

func (a *Asserter) AssertTrans(time int64, group int) error {
	return a.assertFormula(a.mod.Trans, time, group)
}

func (a *Asserter) AssertInvar(time int64, group int) error {
	return a.assertFormula(a.mod.Invar, time, group)
}

// AssertFormula asserts an arbitrary boolean-typed expression — the
// target and forward/backward/global constraint expressions a reach
// query supplies.
func (a *Asserter) AssertFormula(e *expr.Node, time int64, group int) error {
	return a.assertFormula(e, time, group)
}

func (a *Asserter) assertFormula(e *expr.Node, time int64, group int) error {
	cu, err := a.comp.Compile(e, time)
	if err != nil {
		return err
	}
	root, err := asBoolean(cu)
	if err != nil {
		return err
	}

	bdd := a.diagrams.BDD()
	var clauses []cnf.Clause
	clauses = append(clauses, cnf.ProjectNoCut(bdd, root, group)...)

	for _, m := range cu.Micros {
		computed, err := micro.Eval(bdd, m)
		if err != nil {
			return err
		}
		eq := micro.Equivalence(bdd, m.Out, computed)
		clauses = append(clauses, cnf.ProjectNoCut(bdd, eq, group)...)
	}
	for _, mx := range cu.Muxes {
		computed := micro.EvalMux(bdd, mx)
		eq := micro.Equivalence(bdd, mx.Out, computed)
		clauses = append(clauses, cnf.ProjectNoCut(bdd, eq, group)...)
	}

	a.sat.AddClauses(clauses)
	return nil
}

// AssertUniqueness asserts that the state at time differs from the state
// at other in at least one state variable (not input), the constraint a
// loop-free bounded search asserts pairwise across already-visited
// frames to keep forcing the search toward new states.
func (a *Asserter) AssertUniqueness(time, other int64, group int) error {
	bdd := a.diagrams.BDD()
	eqAll := bdd.True()
	for _, sym := range a.mod.StateVariables() {
		et := a.encoder.MakeEncoding(enc.Key{Context: a.mod.Name, Ident: sym.Name, Time: time}, sym.Type)
		eo := a.encoder.MakeEncoding(enc.Key{Context: a.mod.Name, Ident: sym.Name, Time: other}, sym.Type)
		for i := range et.Bits {
			eqAll = bdd.And(eqAll, bdd.Equiv(et.Bits[i], eo.Bits[i]))
		}
	}
	distinct := bdd.Not(eqAll)
	a.sat.AddClauses(cnf.ProjectNoCut(bdd, distinct, group))
	return nil
}

func asBoolean(cu *compiler.CompilationUnit) (rudd.Node, error) {
	if cu.Type.Kind() != types.KindBoolean {
		return nil, fmt.Errorf("model error: expression used as a formula has non-boolean type %s", cu.Type)
	}
	return cu.DDs[0], nil
}
