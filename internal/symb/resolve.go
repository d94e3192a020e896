package symb

import (
	"fmt"
	"strings"

	"reachcore/internal/expr"
	"reachcore/internal/util"
)

// color is the three-state DFS marking used for cycle detection.
type color int

const (
	white color = iota
	gray
	black
)

// ResolveDefines implements the "closed fixed point with cycle detection"
// called for in spec.md §9: a define may reference another define, so
// before any define is safe to inline, the table of defines must be a DAG.
// Self- and mutually-recursive defines are rejected with a diagnostic
// naming the cycle.
func ResolveDefines(table *Table) error {
	colors := make(map[string]color)
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch colors[name] {
		case black:
			return nil
		case gray:
			cycle := append(append([]string{}, path...), name)
			return fmt.Errorf("model error: cyclic define: %s", strings.Join(cycle, " -> "))
		}
		sym, err := table.Lookup(name)
		if err != nil {
			return err
		}
		if sym.Kind != KindDefine {
			return nil
		}
		colors[name] = gray
		path = append(path, name)
		for _, dep := range referencedIdents(sym.DefineBody) {
			depSym, ok := table.symbols[dep]
			if !ok || depSym.Kind != KindDefine {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		colors[name] = black
		return nil
	}

	for _, name := range table.order {
		if table.symbols[name].Kind == KindDefine {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// identCollector is an expr.Visitor that gathers every identifier name
// reachable from a root node, without following into nested defines
// (that's the caller's job in visit() above — we only need the direct
// reference graph here). seen guards against revisiting a node reached
// through more than one path in the DAG, which expr.Walk itself does not
// deduplicate.
type identCollector struct {
	seen   *util.Set[*expr.Node]
	idents []string
}

func (c *identCollector) Pre(n *expr.Node) bool {
	if c.seen.Has(n) {
		return false
	}
	c.seen.Add(n)
	if n.Kind == expr.KindIdent {
		c.idents = append(c.idents, n.Ident)
	}
	return true
}

func (c *identCollector) In(n *expr.Node)   {}
func (c *identCollector) Post(n *expr.Node) {}

func referencedIdents(n *expr.Node) []string {
	c := &identCollector{seen: util.NewSet[*expr.Node]()}
	expr.Walk(c, n)
	return c.idents
}
