// Package demo builds the S1-S6 scenario models from spec.md §8 using
// internal/model's Builder, standing in for the surface-syntax parser
// (out of scope per spec.md §1) so cmd/ and package tests have concrete
// fixtures to drive the reachability engine against.
package demo

import (
	"reachcore/internal/expr"
	"reachcore/internal/model"
	"reachcore/internal/types"
)

// Scenario bundles a built Module with the target/constraint expressions
// its spec.md §8 description names.
type Scenario struct {
	Name   string
	Mod    *model.Module
	Target *expr.Node
	Fwd    []*expr.Node
	Bwd    []*expr.Node
	Global []*expr.Node
}

// S1 is the trivial reachable toggle: INIT x=0, TRANS next(x)=!x,
// target x=1. Expected REACHABLE at depth 1 (witness length 2).
func S1() *Scenario {
	b := model.NewBuilder("s1_toggle")
	x := b.Var("x", types.Boolean{}, false)
	b.AddInit(b.Not(x))
	b.AddTrans(b.Eq(b.Next(x), b.Not(x)))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	return &Scenario{Name: "s1", Mod: mod, Target: x}
}

// S2 is S1's model with a malformed target (x compared against the
// integer literal 2, which does not type-check against a Boolean
// variable). Expected: model/type error at compile time, not a
// reachability verdict.
func S2() *Scenario {
	b := model.NewBuilder("s2_toggle_bad_target")
	x := b.Var("x", types.Boolean{}, false)
	b.AddInit(b.Not(x))
	b.AddTrans(b.Eq(b.Next(x), b.Not(x)))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	target := b.Eq(x, b.Int("2"))
	return &Scenario{Name: "s2", Mod: mod, Target: target}
}

// S3 is the modular counter: c: UnsignedInt of 2 nibbles (8 bits), INIT
// c=0, TRANS next(c)=c+1, target c=5. Expected REACHABLE at depth 5.
func S3() *Scenario {
	b := model.NewBuilder("s3_counter")
	ct := types.UnsignedInt{NibbleWidth: 2}
	c := b.Var("c", ct, false)
	b.AddInit(b.Eq(c, b.Int("0")))
	b.AddTrans(b.Eq(b.Next(c), b.Add(c, b.Int("1"))))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	target := b.Eq(c, b.Int("5"))
	return &Scenario{Name: "s3", Mod: mod, Target: target}
}

// S4 layers INVAR c!=5 onto S3. Expected UNREACHABLE: the invariant
// contradicts the target in every frame, so backward's permanent
// target-and-INVAR assertion is unsatisfiable at depth 0, and forward's
// counter can only step 0,1,2,3,4 before INVAR leaves frame 5 without a
// state, where its saturation check fails.
func S4() *Scenario {
	b := model.NewBuilder("s4_counter_blocked")
	ct := types.UnsignedInt{NibbleWidth: 2}
	c := b.Var("c", ct, false)
	b.AddInit(b.Eq(c, b.Int("0")))
	b.AddTrans(b.Eq(b.Next(c), b.Add(c, b.Int("1"))))
	b.AddInvar(b.Neq(c, b.Int("5")))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	target := b.Eq(c, b.Int("5"))
	return &Scenario{Name: "s4", Mod: mod, Target: target}
}

// S5 is a small system where the target sits one transition away from a
// unique initial state, but a free-running pair of input bits drives an
// 8-bit counter that is otherwise irrelevant to the target, which makes
// the forward state space large enough that its uniqueness-saturation
// path is slow, while backward search reaches the same answer via a
// single direct INIT check at depth 1. Both strategies race; the
// scenario exists to exercise that race (spec.md §8 S5's testable
// property: whichever strategy wins, its witness satisfies INIT, TRANS
// and target).
func S5() *Scenario {
	b := model.NewBuilder("s5_backward_favored")
	s := b.Var("s", types.Boolean{}, false)
	d1 := b.Var("d1", types.Boolean{}, true)
	d2 := b.Var("d2", types.Boolean{}, true)
	ct := types.UnsignedInt{NibbleWidth: 2}
	c := b.Var("c", ct, false)

	b.AddInit(b.And(b.Not(s), b.Eq(c, b.Int("0"))))
	bumped1 := b.Ite(d1, b.Add(c, b.Int("1")), c)
	nextC := b.Ite(d2, b.Add(bumped1, b.Int("2")), bumped1)
	b.AddTrans(b.And(b.Eq(b.Next(s), b.Bool(true)), b.Eq(b.Next(c), nextC)))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	return &Scenario{Name: "s5", Mod: mod, Target: s}
}

// S6 has a contradictory INIT (x and !x simultaneously), used to exercise
// the init-consistency command's KO path: every reachability query over
// this module should short-circuit UNREACHABLE because the initial state
// set is empty.
func S6() *Scenario {
	b := model.NewBuilder("s6_contradictory_init")
	x := b.Var("x", types.Boolean{}, false)
	b.AddInit(b.And(x, b.Not(x)))
	b.AddTrans(b.Bool(true))
	mod, err := b.Build()
	if err != nil {
		panic(err)
	}
	target := x
	return &Scenario{Name: "s6", Mod: mod, Target: target}
}

// All returns every named scenario, keyed by its short name, for the
// cmd/ CLI's --model flag and for tests that want to iterate all of them.
func All() map[string]func() *Scenario {
	return map[string]func() *Scenario{
		"s1": S1,
		"s2": S2,
		"s3": S3,
		"s4": S4,
		"s5": S5,
		"s6": S6,
	}
}
