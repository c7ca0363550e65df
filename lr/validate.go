package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/Lailouezzz/microparser"
)

// Validate checks the tables for structural consistency: dimensions of the
// ACTION and GOTO tables must match the production and free tables, every shift
// and GOTO target must be a valid state and every reduce action must refer to an
// existing production.
//
// Parsers trust their tables and never call Validate. It is intended for
// table generators and tests. States not reachable from the initial state are
// traced, but are not considered an error.
func (t *Tables) Validate() error {
	if t.Actions == nil || t.Gotos == nil {
		return Errorf(InternalError, "tables %q incomplete: ACTION or GOTO table missing", t.Name)
	}
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	states := t.Actions.M()
	if states == 0 {
		report("automaton has no states")
	}
	if t.Gotos.M() != states {
		report("GOTO table has %d states, ACTION table has %d", t.Gotos.M(), states)
	}
	if t.Gotos.N() != len(t.Productions) {
		report("GOTO table has %d columns for %d productions", t.Gotos.N(), len(t.Productions))
	}
	if len(t.TokenFree) != 0 && len(t.TokenFree) != t.Actions.N() {
		report("token free table has %d entries for %d terminals", len(t.TokenFree), t.Actions.N())
	}
	for i, p := range t.Productions {
		if p.Arity < 0 {
			report("production %d (%v) has negative arity", i, p)
		}
	}
	accepting := 0
	for s := 0; s < states; s++ {
		for sym := 0; sym < t.Actions.N(); sym++ {
			a, _ := t.Actions.Value(StateID(s), microparser.TokType(sym))
			switch a.Type {
			case ShiftAction:
				if a.Target < 0 || a.Target >= states {
					report("ACTION(%d,%s) shifts to unknown state %d", s, t.SymbolName(microparser.TokType(sym)), a.Target)
				}
			case ReduceAction:
				if a.Target < 0 || a.Target >= len(t.Productions) {
					report("ACTION(%d,%s) reduces unknown production %d", s, t.SymbolName(microparser.TokType(sym)), a.Target)
				}
			case AcceptAction:
				accepting++
			}
		}
		for p := 0; p < t.Gotos.N(); p++ {
			g, _ := t.Gotos.Value(StateID(s), ProdID(p))
			if g != NoState && (g < 0 || int(g) >= states) {
				report("GOTO(%d,%d) refers to unknown state %d", s, p, g)
			}
		}
	}
	if accepting == 0 && states > 0 {
		report("no state accepts input")
	}
	if len(problems) > 0 {
		return Errorf(InternalError, "tables %q: %s", t.Name, strings.Join(problems, "; "))
	}
	if reachable := t.Reachable(); len(reachable) < states {
		tracer().Infof("tables %q: %d of %d states unreachable", t.Name, states-len(reachable), states)
	}
	return nil
}

// Reachable returns the states reachable from the initial state by shift and
// GOTO transitions, in ascending order.
func (t *Tables) Reachable() []StateID {
	if t.Actions == nil || t.Actions.M() == 0 {
		return nil
	}
	seen := treeset.NewWithIntComparator()
	worklist := arraylist.New()
	visit := func(s int) {
		if s >= 0 && s < t.Actions.M() && !seen.Contains(s) {
			seen.Add(s)
			worklist.Add(s)
		}
	}
	visit(0)
	for !worklist.Empty() {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		state := StateID(x.(int))
		for sym := 0; sym < t.Actions.N(); sym++ {
			if a, _ := t.Actions.Value(state, microparser.TokType(sym)); a.Type == ShiftAction {
				visit(a.Target)
			}
		}
		if t.Gotos == nil {
			continue
		}
		for p := 0; p < t.Gotos.N(); p++ {
			if g, _ := t.Gotos.Value(state, ProdID(p)); g != NoState {
				visit(int(g))
			}
		}
	}
	r := make([]StateID, 0, seen.Size())
	for _, x := range seen.Values() {
		r = append(r, StateID(x.(int)))
	}
	return r
}

// Fingerprint returns a hash over the automaton: both tables, the production
// arities and which terminals carry a free callback. Callbacks themselves do not
// contribute. Tables with equal fingerprints drive parsers identically.
func (t *Tables) Fingerprint() (string, error) {
	if t.Actions == nil || t.Gotos == nil {
		return "", Errorf(InternalError, "tables %q incomplete: ACTION or GOTO table missing", t.Name)
	}
	shape := struct {
		States    int
		Symbols   int
		Actions   []Action
		Gotos     []StateID
		Arities   []int
		TokenFree []bool
	}{
		States:  t.Actions.M(),
		Symbols: t.Actions.N(),
		Actions: t.Actions.entries,
		Gotos:   t.Gotos.entries,
	}
	for _, p := range t.Productions {
		shape.Arities = append(shape.Arities, p.Arity)
	}
	for _, f := range t.TokenFree {
		shape.TokenFree = append(shape.TokenFree, f != nil)
	}
	return structhash.Hash(shape, 1)
}
