package satx

import (
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"

	"reachcore/internal/cnf"
	"reachcore/internal/enc"
)

func TestSolveUnsatClauseSet(t *testing.T) {
	d := enc.NewDiagrams()
	e := NewEngine(d)

	// x and !x, both permanently asserted: unsatisfiable regardless of
	// groups.
	x := d.FreshBit()
	v := e.FindDDVar(x)
	e.AddClauses([]cnf.Clause{{v}, {-v}})

	st, model, err := e.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Unsat, st)
	assert.Nil(t, model)
}

func TestSolveSatisfiableClauseSet(t *testing.T) {
	d := enc.NewDiagrams()
	e := NewEngine(d)

	x := d.FreshBit()
	v := e.FindDDVar(x)
	e.AddClauses([]cnf.Clause{{v}})

	st, model, err := e.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Sat, st)
	value, ok := e.Bit(model, x)
	assert.True(t, ok)
	assert.True(t, value)
}

func TestGroupRetractMakesClausesInert(t *testing.T) {
	d := enc.NewDiagrams()
	e := NewEngine(d)

	x := d.FreshBit()
	v := e.FindDDVar(x)

	group := e.NewGroup()
	e.AddClauses([]cnf.Clause{{-group, v}, {-group, -v}}) // unsat once enabled

	e.Retract(group)
	st, _, err := e.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Sat, st)

	e.Enable(group)
	st, _, err = e.Solve()
	assert.NoError(t, err)
	assert.Equal(t, solver.Unsat, st)
}

func TestInterruptStopsSolve(t *testing.T) {
	d := enc.NewDiagrams()
	e := NewEngine(d)
	e.Interrupt()

	_, _, err := e.Solve()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.True(t, e.Interrupted())
}

func TestEngineMgrInterruptAll(t *testing.T) {
	d := enc.NewDiagrams()
	e1 := NewEngine(d)
	e2 := NewEngine(d)
	mgr := NewEngineMgr()
	mgr.Register(e1)
	mgr.Register(e2)

	mgr.InterruptAll()
	assert.True(t, e1.Interrupted())
	assert.True(t, e2.Interrupted())
}
