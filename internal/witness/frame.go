// Package witness implements the witness layer (C9): collecting a
// per-frame variable valuation out of a solved SAT model, and evaluating
// arbitrary expressions against such a frame with ordinary two's-
// complement/wraparound arithmetic (as opposed to the symbolic
// decision-diagram arithmetic internal/compiler and internal/micro
// perform during solving).
package witness

import (
	"fmt"
	"strings"

	"github.com/dalzilio/rudd"

	"reachcore/internal/enc"
	"reachcore/internal/literal"
	"reachcore/internal/model"
	"reachcore/internal/satx"
)

// Frame is one time-step's full variable valuation.
type Frame struct {
	Time   int64
	Values map[string]literal.Value
}

// Witness is an ordered sequence of frames, init-first, demonstrating a
// reachability result.
type Witness struct {
	Frames []Frame
}

// Collect reads every (state+input) variable's value at each requested
// time out of a solved model, skipping variables that were never
// referenced (and so never encoded) at a given time.
func Collect(mod *model.Module, encoder *enc.Encoder, eng *satx.Engine, sm []bool, times []int64) (*Witness, error) {
	w := &Witness{}
	for _, t := range times {
		frame := Frame{Time: t, Values: make(map[string]literal.Value)}
		for _, sym := range mod.Variables() {
			e, ok := encoder.Lookup(enc.Key{Context: mod.Name, Ident: sym.Name, Time: t})
			if !ok {
				continue
			}
			assign := func(n rudd.Node) (bool, bool) { return eng.Bit(sm, n) }
			v, err := encoder.Expr(e, assign)
			if err != nil {
				return nil, fmt.Errorf("witness: evaluating %s at time %d: %w", sym.Name, t, err)
			}
			frame.Values[sym.Name] = v
		}
		w.Frames = append(w.Frames, frame)
	}
	return w, nil
}

// Reverse returns a copy of w with frames in reverse order — a backward
// search finds frames running from the target back to init, but a
// witness is always reported init-first.
func (w *Witness) Reverse() *Witness {
	out := &Witness{Frames: make([]Frame, len(w.Frames))}
	for i, f := range w.Frames {
		out.Frames[len(w.Frames)-1-i] = f
	}
	return out
}

func (w *Witness) String() string {
	var b strings.Builder
	for i, f := range w.Frames {
		fmt.Fprintf(&b, "-- frame %d (time %d) --\n", i, f.Time)
		for _, sym := range f.orderedNames() {
			fmt.Fprintf(&b, "  %s = %s\n", sym, f.Values[sym])
		}
	}
	return b.String()
}

func (f Frame) orderedNames() []string {
	names := make([]string, 0, len(f.Values))
	for n := range f.Values {
		names = append(names, n)
	}
	// deterministic output without importing sort twice over; simple
	// insertion sort is plenty for frame sizes this core deals with.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
