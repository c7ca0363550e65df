package lr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/Lailouezzz/microparser"
)

// S → a, with terminals a=0 and $=1.
func singleTables() *Tables {
	A := NewActionTable(3, 2)
	A.Set(0, 0, Shift(1))
	A.Set(1, 1, Reduce(0))
	A.Set(2, 1, Accept())
	G := NewGotoTable(3, 1)
	G.Set(0, 0, 2)
	return &Tables{
		Name:        "single",
		Actions:     A,
		Gotos:       G,
		Productions: []Production{{Name: "S → a", Arity: 1}},
		SymbolNames: func(sym microparser.TokType) string {
			if names := [...]string{"a", "$"}; sym >= 0 && int(sym) < len(names) {
				return names[sym]
			}
			return "?"
		},
	}
}

func TestActions(t *testing.T) {
	if Fail() != (Action{}) || !Fail().IsError() {
		t.Errorf("expected zero action to be an error action")
	}
	if a := Shift(4); a.State() != 4 || a.String() != "s4" {
		t.Errorf("unexpected shift action %v", a)
	}
	if a := Reduce(2); a.Production() != 2 || a.String() != "r2" {
		t.Errorf("unexpected reduce action %v", a)
	}
	if Accept().String() != "acc" || Accept().IsError() {
		t.Errorf("unexpected accept action %v", Accept())
	}
}

func TestTableLookups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	tables := singleTables()
	if a, err := tables.Action(0, 0); err != nil || a != Shift(1) {
		t.Errorf("expected ACTION(0,a) = s1, have %v, %v", a, err)
	}
	if a, err := tables.Action(0, 1); err != nil || !a.IsError() {
		t.Errorf("expected ACTION(0,$) = error, have %v, %v", a, err)
	}
	if _, err := tables.Action(0, 7); !errors.Is(err, SyntaxError) {
		t.Errorf("expected unknown terminal to be a syntax error, have %v", err)
	}
	if tables.SymbolName(1) != "$" || tables.SymbolName(7) != "#7" || tables.SymbolName(-1) != "#-1" {
		t.Errorf("expected symbols unknown to the ACTION table to be named by number")
	}
	if _, err := tables.Action(9, 0); !errors.Is(err, InternalError) {
		t.Errorf("expected state out of range to be an internal error, have %v", err)
	}
	if s, err := tables.Goto(0, 0); err != nil || s != 2 {
		t.Errorf("expected GOTO(0,P0) = 2, have %d, %v", s, err)
	}
	if _, err := tables.Goto(1, 0); !errors.Is(err, InternalError) {
		t.Errorf("expected missing GOTO entry to be an internal error, have %v", err)
	}
	if _, err := tables.Production(1); !errors.Is(err, InternalError) {
		t.Errorf("expected unknown production to be an internal error, have %v", err)
	}
	if tables.TokenFreeFunc(0) != nil {
		t.Errorf("expected no token free callbacks")
	}
	if exp := tables.Expected(1); len(exp) != 1 || exp[0] != 1 {
		t.Errorf("expected state 1 to expect only $, have %v", exp)
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	if err := singleTables().Validate(); err != nil {
		t.Fatal(err)
	}
	if r := singleTables().Reachable(); len(r) != 3 || r[0] != 0 || r[2] != 2 {
		t.Errorf("expected states 0…2 to be reachable, have %v", r)
	}
	broken := singleTables()
	broken.Actions.Set(0, 1, Shift(5)).Set(1, 0, Reduce(3))
	broken.TokenFree = make([]FreeFunc, 5)
	err := broken.Validate()
	if !errors.Is(err, InternalError) {
		t.Fatalf("expected broken tables to be rejected, have %v", err)
	}
	for _, problem := range []string{"unknown state 5", "unknown production 3", "token free table"} {
		if !strings.Contains(err.Error(), problem) {
			t.Errorf("expected error to report %q, have %v", problem, err)
		}
	}
	noAccept := singleTables()
	noAccept.Actions.Set(2, 1, Fail())
	if err := noAccept.Validate(); err == nil {
		t.Errorf("expected tables without accepting state to be rejected")
	}
	if err := (&Tables{}).Validate(); !errors.Is(err, InternalError) {
		t.Errorf("expected incomplete tables to be rejected, have %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	fp1, err := singleTables().Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	other := singleTables()
	other.Productions[0].Reduce = func(rhs []Slot, uctx interface{}) (interface{}, error) {
		return rhs[0].Payload(), nil
	}
	other.Name = "renamed"
	if fp2, _ := other.Fingerprint(); fp1 != fp2 {
		t.Errorf("expected callbacks and names not to change the fingerprint")
	}
	other.Actions.Set(1, 0, Shift(1))
	if fp3, _ := other.Fingerprint(); fp1 == fp3 {
		t.Errorf("expected changed ACTION table to change the fingerprint")
	}
}

func TestExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	tables := singleTables()
	var html bytes.Buffer
	if err := ActionTableAsHTML(tables, &html); err != nil {
		t.Fatal(err)
	}
	if err := GotoTableAsHTML(tables, &html); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"ACTION table of size = 3 x 2", "<td>s1</td>", "<td>acc</td>", "S → a"} {
		if !strings.Contains(html.String(), s) {
			t.Errorf("expected HTML to contain %q", s)
		}
	}
	var dot bytes.Buffer
	if err := AutomatonAsDot(tables, &dot); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"digraph {", `s000 -> s001 [label="a"]`, "s000 -> s002 [style=dashed"} {
		if !strings.Contains(dot.String(), s) {
			t.Errorf("expected Dot output to contain %q", s)
		}
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("out of memory")
	var err error = &Error{Kind: ProductionError, Production: 3, Err: cause}
	if !errors.Is(err, ProductionError) || errors.Is(err, SyntaxError) {
		t.Errorf("expected error to match its kind only")
	}
	if !errors.Is(err, cause) || errors.Unwrap(err) != cause {
		t.Errorf("expected error to unwrap to its cause")
	}
	wrapped := fmt.Errorf("line 1: %w", err)
	if KindOf(wrapped) != ProductionError || KindOf(cause) != NoError || KindOf(nil) != NoError {
		t.Errorf("unexpected error kinds")
	}
	tok := MakeToken(2, "x")
	err = &Error{Kind: SyntaxError, State: 4, Token: &tok, Expected: []microparser.TokType{0, 1}}
	if !strings.Contains(err.Error(), "token <2|x> in state 4") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestSlots(t *testing.T) {
	if s := Axiom(); s.Kind != AxiomSlot || s.State != 0 || s.Payload() != nil {
		t.Errorf("unexpected axiom slot %v", s)
	}
	if s := Shifted(MakeToken(1, "w"), 3); s.Payload() != "w" || s.String() != "[3:<1|w>]" {
		t.Errorf("unexpected token slot %v", s)
	}
	if s := Derived(42, 2, nil, 5); s.Payload() != 42 || s.String() != "[5:P2]" {
		t.Errorf("unexpected derived slot %v", s)
	}
}
