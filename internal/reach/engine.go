// Package reach is the bounded reachability engine (C8): it races a
// forward and a backward bounded model-checking strategy against one
// shared decision-diagram space, each deepening its own bound until one
// of them decides REACHABLE or UNREACHABLE, or a configured depth limit
// is hit first.
package reach

import (
	"context"
	"sync"

	"github.com/crillab/gophersat/solver"

	"reachcore/internal/compiler"
	"reachcore/internal/enc"
	"reachcore/internal/expr"
	"reachcore/internal/fsm"
	"reachcore/internal/model"
	"reachcore/internal/satx"
	"reachcore/internal/witness"
)

// Result is the outcome of a Check call.
type Result struct {
	Status  Status
	Depth   int64
	Witness *witness.Witness
	Err     error
	// Winner names which strategy produced the decision ("forward",
	// "backward", or "" if neither decided before the bound/context ran out).
	Winner string
}

// shared bundles the mutable decision-diagram state both strategies
// compile and encode against. None of rudd.BDD, enc.Encoder or
// compiler.Compiler guard their own internal maps/tables against
// concurrent use, so every access funnels through mu: the two strategies
// still solve concurrently (the expensive part), they just take turns
// compiling/asserting/decoding.
type shared struct {
	mu       sync.Mutex
	mod      *model.Module
	diagrams *enc.Diagrams
	encoder  *enc.Encoder
	comp     *compiler.Compiler
}

// Engine ties one Module to the two independent search strategies and the
// witness registry their winner reports into.
type Engine struct {
	sh       *shared
	mgr      *satx.EngineMgr
	wit      *witness.Mgr
	maxDepth int64
}

// NewEngine builds a reachability engine over mod. maxDepth bounds both
// strategies' search depth; a non-positive value means unbounded (limited
// only by the caller's context).
func NewEngine(mod *model.Module, maxDepth int64) *Engine {
	d := enc.NewDiagrams()
	e := enc.NewEncoder(d)
	comp := compiler.NewCompiler(d, e, mod)
	return &Engine{
		sh:       &shared{mod: mod, diagrams: d, encoder: e, comp: comp},
		mgr:      satx.NewEngineMgr(),
		wit:      witness.NewMgr(),
		maxDepth: maxDepth,
	}
}

// Witnesses exposes the registry the winning strategy stores its witness
// into, so a driver can look up past results by id.
func (eng *Engine) Witnesses() *witness.Mgr { return eng.wit }

// Check runs the forward and backward strategies concurrently against
// target, plus any additional constraint expressions each strategy should
// hold permanently (fwd/bwd) or both should hold (global — e.g. a
// type-safety invariant). It returns once either strategy reaches a
// decision, the context is cancelled, or both exhaust maxDepth.
func (eng *Engine) Check(ctx context.Context, target *expr.Node, fwd, bwd, global []*expr.Node) (*Result, error) {
	status := newStatusCell()
	results := make(chan *Result, 2)

	fe := satx.NewEngine(eng.sh.diagrams)
	be := satx.NewEngine(eng.sh.diagrams)
	eng.mgr.Register(fe)
	eng.mgr.Register(be)

	go func() {
		results <- eng.runForward(ctx, status, fe, target, append(append([]*expr.Node{}, fwd...), global...))
	}()
	go func() {
		results <- eng.runBackward(ctx, status, be, target, append(append([]*expr.Node{}, bwd...), global...))
	}()

	first := <-results
	if first.Status != StatusUnknown {
		eng.mgr.InterruptAll()
	}
	second := <-results

	if first.Status != StatusUnknown {
		if first.Witness != nil {
			eng.wit.Store(first.Witness)
		}
		return first, nil
	}
	if second.Status != StatusUnknown {
		if second.Witness != nil {
			eng.wit.Store(second.Witness)
		}
		return second, nil
	}
	if first.Err != nil {
		return first, first.Err
	}
	if second.Err != nil {
		return second, second.Err
	}
	return &Result{Status: StatusUnknown}, nil
}

// runForward implements iterative-deepening BMC: INIT and the global/
// forward constraints are asserted once, permanently, at time 0; at each
// depth k the transition relation and invariant are extended permanently
// up to time k, target is tried in a fresh retractable group, and — if
// that fails — a saturation check decides whether the reachable state
// space has been fully enumerated (i.e. UNREACHABLE can be declared
// soundly for this finite-state system) before deepening further.
func (eng *Engine) runForward(ctx context.Context, status *statusCell, sat *satx.Engine, target *expr.Node, constraints []*expr.Node) *Result {
	sh := eng.sh
	asrt := fsm.NewAsserter(sh.mod, sh.comp, sh.diagrams, sh.encoder, sat)

	permanent := sat.NewGroup()
	sat.Enable(permanent)

	sh.mu.Lock()
	err := asrt.AssertInit(0, permanent)
	if err == nil {
		err = asrt.AssertInvar(0, permanent)
	}
	for _, c := range constraints {
		if err != nil {
			break
		}
		err = asrt.AssertFormula(c, 0, permanent)
	}
	sh.mu.Unlock()
	if err != nil {
		return &Result{Status: StatusError, Err: err, Winner: "forward"}
	}

	var depth int64
	for eng.maxDepth <= 0 || depth <= eng.maxDepth {
		if ctxDone(ctx) || sat.Interrupted() {
			return &Result{Status: StatusUnknown, Winner: "forward"}
		}

		targetGroup := sat.NewGroup()
		sh.mu.Lock()
		err := asrt.AssertFormula(target, depth, targetGroup)
		sh.mu.Unlock()
		if err != nil {
			return &Result{Status: StatusError, Err: err, Winner: "forward"}
		}
		sat.Enable(targetGroup)

		st, model, err := sat.Solve()
		if err != nil {
			if err == satx.ErrInterrupted {
				return &Result{Status: StatusUnknown, Winner: "forward"}
			}
			return &Result{Status: StatusError, Err: err, Winner: "forward"}
		}
		if st == solver.Sat {
			if !status.TrySet(StatusReachable) {
				return &Result{Status: StatusUnknown, Winner: "forward"}
			}
			w, werr := collectForwardWitness(sh, sat, model, depth)
			if werr != nil {
				return &Result{Status: StatusError, Err: werr, Winner: "forward"}
			}
			return &Result{Status: StatusReachable, Depth: depth, Witness: w, Winner: "forward"}
		}
		sat.Retract(targetGroup)

		// Saturation check: with the target disabled, is there still a
		// state at this depth distinct from every earlier one? If not,
		// the whole reachable space has been enumerated without ever
		// satisfying target, so UNREACHABLE holds for all deeper bounds.
		uniqGroup := sat.NewGroup()
		sh.mu.Lock()
		for j := int64(0); j < depth; j++ {
			if err := asrt.AssertUniqueness(depth, j, permanent); err != nil {
				sh.mu.Unlock()
				return &Result{Status: StatusError, Err: err, Winner: "forward"}
			}
		}
		sh.mu.Unlock()
		sat.Enable(uniqGroup)
		st, _, err = sat.Solve()
		sat.Retract(uniqGroup)
		if err != nil {
			if err == satx.ErrInterrupted {
				return &Result{Status: StatusUnknown, Winner: "forward"}
			}
			return &Result{Status: StatusError, Err: err, Winner: "forward"}
		}
		if st != solver.Sat {
			if !status.TrySet(StatusUnreachable) {
				return &Result{Status: StatusUnknown, Winner: "forward"}
			}
			return &Result{Status: StatusUnreachable, Depth: depth, Winner: "forward"}
		}

		depth++
		sh.mu.Lock()
		err = asrt.AssertTrans(depth-1, permanent)
		if err == nil {
			err = asrt.AssertInvar(depth, permanent)
		}
		for _, c := range constraints {
			if err != nil {
				break
			}
			err = asrt.AssertFormula(c, depth, permanent)
		}
		sh.mu.Unlock()
		if err != nil {
			return &Result{Status: StatusError, Err: err, Winner: "forward"}
		}
	}
	return &Result{Status: StatusUnknown, Winner: "forward"}
}

// runBackward mirrors runForward using fsm.MirrorTime: it starts with
// target asserted at MirrorTime(0) and extends backward one transition per
// depth, checking at each depth whether INIT is satisfiable at the current
// mirrored frame.
func (eng *Engine) runBackward(ctx context.Context, status *statusCell, sat *satx.Engine, target *expr.Node, constraints []*expr.Node) *Result {
	sh := eng.sh
	asrt := fsm.NewAsserter(sh.mod, sh.comp, sh.diagrams, sh.encoder, sat)

	permanent := sat.NewGroup()
	sat.Enable(permanent)

	sh.mu.Lock()
	err := asrt.AssertFormula(target, fsm.MirrorTime(0), permanent)
	if err == nil {
		err = asrt.AssertInvar(fsm.MirrorTime(0), permanent)
	}
	for _, c := range constraints {
		if err != nil {
			break
		}
		err = asrt.AssertFormula(c, fsm.MirrorTime(0), permanent)
	}
	sh.mu.Unlock()
	if err != nil {
		return &Result{Status: StatusError, Err: err, Winner: "backward"}
	}

	var depth int64
	for eng.maxDepth <= 0 || depth <= eng.maxDepth {
		if ctxDone(ctx) || sat.Interrupted() {
			return &Result{Status: StatusUnknown, Winner: "backward"}
		}

		initGroup := sat.NewGroup()
		sh.mu.Lock()
		err := asrt.AssertInit(fsm.MirrorTime(depth), initGroup)
		sh.mu.Unlock()
		if err != nil {
			return &Result{Status: StatusError, Err: err, Winner: "backward"}
		}
		sat.Enable(initGroup)

		st, model, err := sat.Solve()
		if err != nil {
			if err == satx.ErrInterrupted {
				return &Result{Status: StatusUnknown, Winner: "backward"}
			}
			return &Result{Status: StatusError, Err: err, Winner: "backward"}
		}
		if st == solver.Sat {
			if !status.TrySet(StatusReachable) {
				return &Result{Status: StatusUnknown, Winner: "backward"}
			}
			w, werr := collectBackwardWitness(sh, sat, model, depth)
			if werr != nil {
				return &Result{Status: StatusError, Err: werr, Winner: "backward"}
			}
			return &Result{Status: StatusReachable, Depth: depth, Witness: w, Winner: "backward"}
		}
		sat.Retract(initGroup)

		uniqGroup := sat.NewGroup()
		sh.mu.Lock()
		for j := int64(0); j < depth; j++ {
			if err := asrt.AssertUniqueness(fsm.MirrorTime(depth), fsm.MirrorTime(j), permanent); err != nil {
				sh.mu.Unlock()
				return &Result{Status: StatusError, Err: err, Winner: "backward"}
			}
		}
		sh.mu.Unlock()
		sat.Enable(uniqGroup)
		st, _, err = sat.Solve()
		sat.Retract(uniqGroup)
		if err != nil {
			if err == satx.ErrInterrupted {
				return &Result{Status: StatusUnknown, Winner: "backward"}
			}
			return &Result{Status: StatusError, Err: err, Winner: "backward"}
		}
		if st != solver.Sat {
			if !status.TrySet(StatusUnreachable) {
				return &Result{Status: StatusUnknown, Winner: "backward"}
			}
			return &Result{Status: StatusUnreachable, Depth: depth, Winner: "backward"}
		}

		depth++
		sh.mu.Lock()
		err = asrt.AssertTrans(fsm.MirrorTime(depth), permanent)
		if err == nil {
			err = asrt.AssertInvar(fsm.MirrorTime(depth), permanent)
		}
		for _, c := range constraints {
			if err != nil {
				break
			}
			err = asrt.AssertFormula(c, fsm.MirrorTime(depth), permanent)
		}
		sh.mu.Unlock()
		if err != nil {
			return &Result{Status: StatusError, Err: err, Winner: "backward"}
		}
	}
	return &Result{Status: StatusUnknown, Winner: "backward"}
}

func collectForwardWitness(sh *shared, sat *satx.Engine, model []bool, depth int64) (*witness.Witness, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	times := make([]int64, depth+1)
	for i := range times {
		times[i] = int64(i)
	}
	return witness.Collect(sh.mod, sh.encoder, sat, model, times)
}

func collectBackwardWitness(sh *shared, sat *satx.Engine, model []bool, depth int64) (*witness.Witness, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	times := make([]int64, depth+1)
	for i := range times {
		times[i] = fsm.MirrorTime(int64(i))
	}
	w, err := witness.Collect(sh.mod, sh.encoder, sat, model, times)
	if err != nil {
		return nil, err
	}
	return w.Reverse(), nil
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
