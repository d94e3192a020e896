package fsm

import (
	"github.com/crillab/gophersat/solver"

	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/expr"
	"reachcore/internal/model"
	"reachcore/internal/satx"
)

// InitConsistency asserts INIT ∧ INVAR ∧ the given global constraints at
// time 0 under a fresh group and reports OK (satisfiable, there is at
// least one consistent initial state), KO (unsatisfiable — every
// reachability query over this module can short-circuit UNREACHABLE,
// spec.md §8 S6), or UNDECIDED (the solver was interrupted or returned
// unknown). This is the supplemented `init-consistency` command spec.md
// §6 names but leaves undetailed; see SPEC_FULL.md §4.
func InitConsistency(mod *model.Module, diagrams *enc.Diagrams, encoder *enc.Encoder, comp *compiler.Compiler, constraints []*expr.Node) (string, error) {
	sat := satx.NewEngine(diagrams)
	asrt := NewAsserter(mod, comp, diagrams, encoder, sat)

	group := sat.NewGroup()
	sat.Enable(group)

	if err := asrt.AssertInit(0, group); err != nil {
		return "", err
	}
	if err := asrt.AssertInvar(0, group); err != nil {
		return "", err
	}
	for _, c := range constraints {
		if err := asrt.AssertFormula(c, 0, group); err != nil {
			return "", err
		}
	}

	st, _, err := sat.Solve()
	if err != nil {
		if err == satx.ErrInterrupted {
			return "UNDECIDED", nil
		}
		return "", err
	}
	switch st {
	case solver.Sat:
		return "OK", nil
	case solver.Unsat:
		return "KO", nil
	default:
		return "UNDECIDED", nil
	}
}
