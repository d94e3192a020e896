// Package cnf implements the no-cut Tseitin CNF projector (C5), grounded
// verbatim in the algorithm shape of sat/cnf_nocut.cc: walk a decision
// diagram with a recursion-stack polarity trace and emit one blocking
// clause for every zero-terminal reached.
//
// Because every rudd.BDD variable allocated by this core is already a
// stable, globally meaningful boolean signal (the encoder allocates one
// fresh Ithvar per (context, symbol, time, bit), never reusing or
// reordering them), the CNF variable for a diagram node is simply that
// node's own label — there is no separate node-to-variable table to
// build, unlike a general CUDD-level ADD walker that must look one up.
package cnf

import (
	"github.com/dalzilio/rudd"

	"reachcore/internal/util"
)

// VarOf resolves a non-terminal node to its 1-based DIMACS variable
// number (rudd variables are 0-indexed).
func VarOf(bdd *rudd.BDD, n rudd.Node) int {
	return bdd.Label(n) + 1
}

// Clause is a DIMACS-convention disjunction: positive ints are plain
// literals, negative ints are negated literals, magnitude is the
// 1-based variable number.
type Clause []int

// frame records, for one node on the current path, which branch was
// taken to continue the walk.
type frame struct {
	v    int
	high bool
}

// ProjectNoCut returns the CNF clauses that forbid every assignment
// reaching the False terminal of root, i.e. a clause set equisatisfiable
// with "root is true". If groupLit is non-zero, its negation is
// prepended to every clause, so the whole clause set can be disabled
// later by asserting groupLit false (spec.md's retractable assumption
// group).
//
// This walks every root-to-leaf path explicitly rather than memoizing
// per shared node: a node reached through two different parents
// generally needs two different blocking clauses (same suffix, different
// prefix), so per-node memoization would be unsound here. Diagrams built
// by this core stay small enough (one bit-vector arithmetic template or
// comparator at a time, see internal/compiler) that full path
// enumeration does not blow up in practice; fully-duplicated clauses
// (same literal set reached via unrelated paths) are still deduplicated
// before being returned.
func ProjectNoCut(bdd *rudd.BDD, root rudd.Node, groupLit int) []Clause {
	var out []Clause
	seen := make(map[string]bool)
	stack := util.NewStack[frame]()
	walk(bdd, root, stack, groupLit, &out, seen)
	return out
}

func walk(bdd *rudd.BDD, node rudd.Node, stack *util.Stack[frame], groupLit int, out *[]Clause, seenClause map[string]bool) {
	if bdd.Equal(node, bdd.True()) {
		return
	}
	if bdd.Equal(node, bdd.False()) {
		emit(stack, groupLit, out, seenClause)
		return
	}

	v := VarOf(bdd, node)
	lo := bdd.Low(node)
	hi := bdd.High(node)

	stack.Push(frame{v: v, high: false})
	walk(bdd, lo, stack, groupLit, out, seenClause)
	stack.Pop()

	stack.Push(frame{v: v, high: true})
	walk(bdd, hi, stack, groupLit, out, seenClause)
	stack.Pop()
}

func emit(stack *util.Stack[frame], groupLit int, out *[]Clause, seenClause map[string]bool) {
	items := stack.Items()
	clause := make(Clause, 0, len(items)+1)
	if groupLit != 0 {
		clause = append(clause, -groupLit)
	}
	for _, f := range items {
		if f.high {
			clause = append(clause, -f.v)
		} else {
			clause = append(clause, f.v)
		}
	}
	sig := signature(clause)
	if seenClause[sig] {
		return
	}
	seenClause[sig] = true
	*out = append(*out, clause)
}

func signature(c Clause) string {
	b := make([]byte, 0, len(c)*5)
	for _, lit := range c {
		b = appendInt(b, lit)
		b = append(b, ',')
	}
	return string(b)
}

func appendInt(b []byte, v int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	if v == 0 {
		return append(b, '0')
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	end := len(b) - 1
	for start < end {
		b[start], b[end] = b[end], b[start]
		start++
		end--
	}
	return b
}
