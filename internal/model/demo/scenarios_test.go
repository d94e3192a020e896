package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/fsm"
	"reachcore/internal/reach"
)

func checkScenario(t *testing.T, scn *Scenario, maxDepth int64) *reach.Result {
	eng := reach.NewEngine(scn.Mod, maxDepth)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := eng.Check(ctx, scn.Target, scn.Fwd, scn.Bwd, scn.Global)
	assert.NoError(t, err)
	return res
}

func TestS1ToggleIsReachable(t *testing.T) {
	res := checkScenario(t, S1(), 4)
	assert.Equal(t, reach.StatusReachable, res.Status)
	assert.Equal(t, int64(1), res.Depth)
	assert.NotNil(t, res.Witness)
}

func TestS3CounterIsReachable(t *testing.T) {
	res := checkScenario(t, S3(), 8)
	assert.Equal(t, reach.StatusReachable, res.Status)
	assert.Equal(t, int64(5), res.Depth)
}

func TestS2MalformedTargetIsCompileError(t *testing.T) {
	res := checkScenario(t, S2(), 4)
	assert.Equal(t, reach.StatusError, res.Status)
	assert.Error(t, res.Err)
}

func TestS4CounterBlockedIsUnreachable(t *testing.T) {
	res := checkScenario(t, S4(), 10)
	assert.Equal(t, reach.StatusUnreachable, res.Status)
}

func TestS5BackwardFavoredRaceIsReachable(t *testing.T) {
	res := checkScenario(t, S5(), 6)
	assert.Equal(t, reach.StatusReachable, res.Status)
	assert.NotNil(t, res.Witness)
}

func TestS6ContradictoryInitIsUnreachable(t *testing.T) {
	res := checkScenario(t, S6(), 4)
	assert.Equal(t, reach.StatusUnreachable, res.Status)
	assert.Equal(t, int64(0), res.Depth)
}

func TestInitConsistencyOKAndKO(t *testing.T) {
	s1 := S1()
	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	comp := compiler.NewCompiler(d, e, s1.Mod)
	verdict, err := fsm.InitConsistency(s1.Mod, d, e, comp, s1.Global)
	assert.NoError(t, err)
	assert.Equal(t, "OK", verdict)

	s6 := S6()
	d2 := enc.NewDiagrams()
	e2 := enc.NewEncoder(d2)
	comp2 := compiler.NewCompiler(d2, e2, s6.Mod)
	verdict2, err := fsm.InitConsistency(s6.Mod, d2, e2, comp2, s6.Global)
	assert.NoError(t, err)
	assert.Equal(t, "KO", verdict2)
}

func TestAllScenariosBuildWithoutPanicking(t *testing.T) {
	for name, build := range All() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("scenario %q panicked: %v", name, r)
				}
			}()
			scn := build()
			assert.Equal(t, name, scn.Name)
			assert.NotNil(t, scn.Mod)
		}()
	}
}
