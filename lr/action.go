package lr

import "fmt"

// StateID is the serial ID of an automaton state. The initial state always has ID 0.
type StateID int

// ProdID is the serial ID of a production, i.e. its index into Tables.Productions.
type ProdID int

// NoState marks an empty entry in a GOTO table.
const NoState StateID = -1

// ActionType is the kind of an entry of an ACTION table.
type ActionType int8

// Kinds of actions. The zero value is ErrorAction, so an uninitialized
// table entry will reject its input.
const (
	ErrorAction ActionType = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

func (t ActionType) String() string {
	switch t {
	case ErrorAction:
		return "error"
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return fmt.Sprintf("ActionType(%d)", int8(t))
}

// Action is an entry of an ACTION table. For shift actions, Target is the state
// to move to. For reduce actions, Target is the ID of the production to reduce.
type Action struct {
	Type   ActionType
	Target int
}

// Shift creates a shift action to a state.
func Shift(state StateID) Action {
	return Action{Type: ShiftAction, Target: int(state)}
}

// Reduce creates a reduce action for a production.
func Reduce(prod ProdID) Action {
	return Action{Type: ReduceAction, Target: int(prod)}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Type: AcceptAction}
}

// Fail creates an error action. It is identical to the zero value.
func Fail() Action {
	return Action{}
}

// State returns the target state of a shift action.
func (a Action) State() StateID {
	return StateID(a.Target)
}

// Production returns the production of a reduce action.
func (a Action) Production() ProdID {
	return ProdID(a.Target)
}

// IsError is a predicate: will this action reject the input?
func (a Action) IsError() bool {
	return a.Type == ErrorAction
}

func (a Action) String() string {
	switch a.Type {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	}
	return "<none>"
}
