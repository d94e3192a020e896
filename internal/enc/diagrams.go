// Package enc implements the encoder (C3): it allocates decision-diagram
// bit variables for (context, symbol, time) triples and maps solver
// assignments back to expression-level literals (spec.md §4.1).
//
// The wired decision-diagram package is github.com/dalzilio/rudd, a
// pure-Go boolean BDD library. rudd, like the BuDDy library it is modeled
// on, fixes its variable count at construction time (see its doc comment:
// "Each BDD has a fixed number of variables, Varnum, declared when it is
// initialized"). Diagrams hands out that fixed budget one bit at a time
// via FreshBit, playing the role of spec.md §6's "bit() to allocate a
// fresh boolean variable".
package enc

import (
	"fmt"

	"github.com/dalzilio/rudd"
)

// maxVars bounds how many distinct (context, symbol, time, bit) triples a
// single run can allocate. Generous enough for any bounded-model-checking
// run this core is sized for (spec.md's size budget); a deployment driving
// much deeper unrollings would need to size this at construction time.
const maxVars = 1 << 18

// Diagrams owns the single rudd.BDD instance for one verification run and
// the monotonic counter behind bit allocation.
type Diagrams struct {
	bdd     *rudd.BDD
	nextVar int
}

func NewDiagrams() *Diagrams {
	bdd, err := rudd.New(maxVars)
	if err != nil {
		panic(fmt.Sprintf("enc: initializing decision-diagram manager: %v", err))
	}
	return &Diagrams{bdd: bdd}
}

// BDD exposes the underlying package for the compiler (C4) and CNF
// projector (C5), which both need to apply boolean operators over nodes
// this type hands out.
func (d *Diagrams) BDD() *rudd.BDD { return d.bdd }

// FreshBit allocates and returns a new boolean DD variable.
func (d *Diagrams) FreshBit() rudd.Node {
	if d.nextVar >= maxVars {
		panic("enc: exhausted decision-diagram variable budget")
	}
	n := d.bdd.Ithvar(d.nextVar)
	d.nextVar++
	return n
}
