// Package satx is the SAT engine facade (C6): an incremental, add-only
// clause database with retractable "groups" layered on top of
// github.com/crillab/gophersat/solver, plus cooperative interruption so a
// long-running bounded search can be cancelled from outside its goroutine.
package satx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/crillab/gophersat/solver"
	"github.com/dalzilio/rudd"
	"go.uber.org/atomic"

	"reachcore/internal/cnf"
	"reachcore/internal/enc"
)

// ErrInterrupted is returned by Solve once Interrupt has been called.
var ErrInterrupted = errors.New("satx: engine interrupted")

// Engine owns one clause database built against one shared decision
// diagram. Each reachability search strategy (forward, backward) gets its
// own Engine over the same Diagrams so their CNF variable spaces agree on
// what a given bit means, even though their group/assumption state is
// independent.
type Engine struct {
	bdd *rudd.BDD

	mu           sync.Mutex
	clauses      [][]int
	nextExtraVar int
	groups       map[int]bool // group activation var -> enabled

	interrupted atomic.Bool
}

func NewEngine(d *enc.Diagrams) *Engine {
	bdd := d.BDD()
	return &Engine{
		bdd:          bdd,
		nextExtraVar: bdd.Varnum() + 1,
		groups:       make(map[int]bool),
	}
}

// FindDDVar returns the DIMACS variable for a diagram node — stable for
// the lifetime of the run since every diagram variable is allocated
// exactly once (enc.Diagrams.FreshBit).
func (e *Engine) FindDDVar(n rudd.Node) int {
	return cnf.VarOf(e.bdd, n)
}

// AddClauses pushes cs to the database permanently (spec.md's "add-only"
// contract: nothing already pushed is ever removed).
func (e *Engine) AddClauses(cs []cnf.Clause) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range cs {
		e.clauses = append(e.clauses, []int(c))
	}
}

// NewGroup allocates a fresh retractable assumption group and returns its
// id, which doubles as the DIMACS variable of its activation literal.
// Groups start disabled. Pass the id back into cnf.ProjectNoCut as
// groupLit so every clause in the group carries ¬id, making the whole
// group's contribution vacuous until Enable is called.
func (e *Engine) NewGroup() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.nextExtraVar
	e.nextExtraVar++
	e.groups[v] = false
	return v
}

func (e *Engine) Enable(group int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.groups[group] = true
}

func (e *Engine) Retract(group int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.groups[group] = false
}

// Solve rebuilds a solver.Problem from the accumulated clause database
// every call (DESIGN.md Open Question 5): gophersat's solver package
// exposes no incremental assumption push/pop, so each enabled group's
// activation literal is resubmitted as a unit clause for this call only,
// and each disabled group's negation is submitted instead so its clauses
// stay inert. The underlying clause slice itself is never rewritten.
func (e *Engine) Solve() (solver.Status, []bool, error) {
	if e.interrupted.Load() {
		return solver.Indet, nil, ErrInterrupted
	}

	e.mu.Lock()
	all := make([][]int, 0, len(e.clauses)+len(e.groups))
	all = append(all, e.clauses...)
	for g, enabled := range e.groups {
		if enabled {
			all = append(all, []int{g})
		} else {
			all = append(all, []int{-g})
		}
	}
	e.mu.Unlock()

	pb := solver.ParseSlice(all)
	s := solver.New(pb)
	status := s.Solve()
	if e.interrupted.Load() {
		return solver.Indet, nil, ErrInterrupted
	}
	var model []bool
	if status == solver.Sat {
		model = s.Model()
	}
	return status, model, nil
}

// Interrupt requests cooperative cancellation: the in-flight or next
// Solve call returns ErrInterrupted. Safe to call from another goroutine.
func (e *Engine) Interrupt() { e.interrupted.Store(true) }

func (e *Engine) Interrupted() bool { return e.interrupted.Load() }

// String renders a short end-of-run report: variable/clause/group counts,
// used by the reach driver's summary output.
func (e *Engine) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	enabled := 0
	for _, on := range e.groups {
		if on {
			enabled++
		}
	}
	return fmt.Sprintf("satx.Engine{vars=%d, clauses=%d, groups=%d (enabled=%d)}",
		e.nextExtraVar-1, len(e.clauses), len(e.groups), enabled)
}

// Bit evaluates a single diagram node under a solved model, returning
// false (with ok=false) if the node's variable index falls outside the
// model (should not happen for a node that was actually asserted).
func (e *Engine) Bit(model []bool, n rudd.Node) (value bool, ok bool) {
	v := e.FindDDVar(n) - 1 // gophersat model is 0-indexed by Var
	if v < 0 || v >= len(model) {
		return false, false
	}
	return model[v], true
}
