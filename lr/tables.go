package lr

import (
	"fmt"

	"github.com/Lailouezzz/microparser"
)

// --- Callbacks -------------------------------------------------------------

// ReduceFunc builds the value of a production from the slots of its handle.
// rhs holds the top Arity slots of the parse stack, bottom to top, and is a copy
// owned by the callback. The callback takes over the payloads of these slots:
// it may return one of them unchanged, wrap several of them or build a new value
// and destroy the inputs. After the call the parser drops the slots without
// destroying anything.
//
// A reduce callback signals failure by returning an error or a nil value. In this
// case it must have released everything it took over from rhs. A value returned
// together with an error is destroyed by the parser with the production's free
// callback.
type ReduceFunc func(rhs []Slot, uctx interface{}) (interface{}, error)

// FreeFunc destroys a value (a token payload or the result of a reduction)
// which is still owned by a parse stack when the stack is torn down.
type FreeFunc func(value interface{}, uctx interface{})

// Production describes a grammar production to the parser.
// A production without Reduce yields a nil value and never fails.
type Production struct {
	Name   string // for tracing only
	Arity  int    // length of the right hand side
	Reduce ReduceFunc
	Free   FreeFunc
}

func (p Production) String() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("production/%d", p.Arity)
}

// --- Dense tables ----------------------------------------------------------

// ActionTable is a dense matrix of actions, indexed by state and terminal symbol.
// Create one with NewActionTable; all entries are initially ErrorAction.
type ActionTable struct {
	entries []Action
	rowcnt  int
	colcnt  int
}

// NewActionTable creates an ACTION table for m states and n terminal symbols.
func NewActionTable(m, n int) *ActionTable {
	if m < 0 || n < 0 {
		panic(fmt.Sprintf("lr.NewActionTable() with negative dimension: %d x %d", m, n))
	}
	return &ActionTable{
		entries: make([]Action, m*n),
		rowcnt:  m,
		colcnt:  n,
	}
}

// M returns the number of states.
func (t *ActionTable) M() int {
	return t.rowcnt
}

// N returns the number of terminal symbols.
func (t *ActionTable) N() int {
	return t.colcnt
}

// Set sets the action at (state, sym). It panics for indices out of range,
// as this is a programming error while constructing tables.
func (t *ActionTable) Set(state StateID, sym microparser.TokType, a Action) *ActionTable {
	if !t.inRange(state, sym) {
		panic(fmt.Sprintf("lr.ActionTable.Set() with index out of range: (%d,%d)", state, sym))
	}
	t.entries[int(state)*t.colcnt+int(sym)] = a
	return t
}

// Value returns the action at (state, sym). If either index is out of range, an
// error action and false is returned.
func (t *ActionTable) Value(state StateID, sym microparser.TokType) (Action, bool) {
	if !t.inRange(state, sym) {
		return Fail(), false
	}
	return t.entries[int(state)*t.colcnt+int(sym)], true
}

func (t *ActionTable) inRange(state StateID, sym microparser.TokType) bool {
	return state >= 0 && int(state) < t.rowcnt && sym >= 0 && int(sym) < t.colcnt
}

// GotoTable is a dense matrix of states, indexed by state and production.
// Create one with NewGotoTable; all entries are initially NoState.
type GotoTable struct {
	entries []StateID
	rowcnt  int
	colcnt  int
}

// NewGotoTable creates a GOTO table for m states and n productions.
func NewGotoTable(m, n int) *GotoTable {
	if m < 0 || n < 0 {
		panic(fmt.Sprintf("lr.NewGotoTable() with negative dimension: %d x %d", m, n))
	}
	t := &GotoTable{
		entries: make([]StateID, m*n),
		rowcnt:  m,
		colcnt:  n,
	}
	for i := range t.entries {
		t.entries[i] = NoState
	}
	return t
}

// M returns the number of states.
func (t *GotoTable) M() int {
	return t.rowcnt
}

// N returns the number of productions.
func (t *GotoTable) N() int {
	return t.colcnt
}

// Set sets the target state at (state, prod). Panics for indices out of range.
func (t *GotoTable) Set(state StateID, prod ProdID, target StateID) *GotoTable {
	if !t.inRange(state, prod) {
		panic(fmt.Sprintf("lr.GotoTable.Set() with index out of range: (%d,%d)", state, prod))
	}
	t.entries[int(state)*t.colcnt+int(prod)] = target
	return t
}

// Value returns the state at (state, prod), or NoState and false if either index
// is out of range.
func (t *GotoTable) Value(state StateID, prod ProdID) (StateID, bool) {
	if !t.inRange(state, prod) {
		return NoState, false
	}
	return t.entries[int(state)*t.colcnt+int(prod)], true
}

func (t *GotoTable) inRange(state StateID, prod ProdID) bool {
	return state >= 0 && int(state) < t.rowcnt && prod >= 0 && int(prod) < t.colcnt
}

// --- Tables ----------------------------------------------------------------

// Tables bundles everything a parser needs to know about a grammar.
// Tables are borrowed by parsers and must not be changed while any parser uses them.
type Tables struct {
	Name        string
	Actions     *ActionTable
	Gotos       *GotoTable
	Productions []Production                // indexed by ProdID
	TokenFree   []FreeFunc                  // indexed by terminal symbol, entries may be nil
	SymbolNames microparser.TokTypeStringer // optional, for diagnostics
}

// States returns the number of automaton states.
func (t *Tables) States() int {
	return t.Actions.M()
}

// Symbols returns the number of terminal symbols.
func (t *Tables) Symbols() int {
	return t.Actions.N()
}

// Action looks up the action for (state, sym). A state out of range is an
// internal error, a symbol out of range is a syntax error (the tokenizer delivered
// something the grammar does not know about).
func (t *Tables) Action(state StateID, sym microparser.TokType) (Action, error) {
	if state < 0 || int(state) >= t.Actions.M() {
		return Fail(), Errorf(InternalError, "state %d out of range for ACTION table", state)
	}
	a, ok := t.Actions.Value(state, sym)
	if !ok {
		return Fail(), &Error{
			Kind:     SyntaxError,
			State:    state,
			Msg:      fmt.Sprintf("unknown terminal symbol %s", t.SymbolName(sym)),
			Expected: t.Expected(state),
		}
	}
	return a, nil
}

// Goto looks up the state to resume in after reducing prod on top of state.
func (t *Tables) Goto(state StateID, prod ProdID) (StateID, error) {
	s, ok := t.Gotos.Value(state, prod)
	if !ok || s == NoState {
		return NoState, &Error{
			Kind:       InternalError,
			State:      state,
			Production: prod,
			Msg:        fmt.Sprintf("no GOTO entry for (%d,%d)", state, prod),
		}
	}
	return s, nil
}

// Production returns the descriptor of production prod.
func (t *Tables) Production(prod ProdID) (Production, error) {
	if prod < 0 || int(prod) >= len(t.Productions) {
		return Production{}, &Error{
			Kind:       InternalError,
			Production: prod,
			Msg:        fmt.Sprintf("production %d out of range", prod),
		}
	}
	return t.Productions[prod], nil
}

// TokenFreeFunc returns the free callback for payloads of terminal sym, or nil.
func (t *Tables) TokenFreeFunc(sym microparser.TokType) FreeFunc {
	if sym < 0 || int(sym) >= len(t.TokenFree) {
		return nil
	}
	return t.TokenFree[sym]
}

// Expected returns the terminal symbols for which state has a non-error action,
// in ascending order.
func (t *Tables) Expected(state StateID) []microparser.TokType {
	var syms []microparser.TokType
	for sym := 0; sym < t.Actions.N(); sym++ {
		if a, ok := t.Actions.Value(state, microparser.TokType(sym)); ok && !a.IsError() {
			syms = append(syms, microparser.TokType(sym))
		}
	}
	return syms
}

// SymbolName returns a printable name for a terminal symbol. Symbols unknown to
// the ACTION table are never passed to SymbolNames.
func (t *Tables) SymbolName(sym microparser.TokType) string {
	if t.SymbolNames != nil && t.Actions != nil && sym >= 0 && int(sym) < t.Actions.N() {
		return t.SymbolNames(sym)
	}
	return fmt.Sprintf("#%d", sym)
}
