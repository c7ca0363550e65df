package lr

import "fmt"

// SlotKind tags the variants of parse stack slots.
type SlotKind int8

const (
	AxiomSlot   SlotKind = iota // bottom of stack, owns nothing
	TokenSlot                   // a shifted input token
	DerivedSlot                 // a value produced by a reduction
)

func (k SlotKind) String() string {
	switch k {
	case AxiomSlot:
		return "axiom"
	case TokenSlot:
		return "token"
	case DerivedSlot:
		return "derived"
	}
	return fmt.Sprintf("SlotKind(%d)", int8(k))
}

// Slot is an entry of a parse stack. Each slot remembers the automaton state
// reached right after it had been pushed.
//
// For derived slots, Free is the free callback of the producing production.
// It is bound at reduction time and never looked up again.
type Slot struct {
	Kind       SlotKind
	State      StateID
	Token      Token       // valid for TokenSlot
	Value      interface{} // valid for DerivedSlot
	Production ProdID      // valid for DerivedSlot
	Free       FreeFunc    // valid for DerivedSlot, may be nil
}

// Axiom creates the bottom slot of a parse stack.
func Axiom() Slot {
	return Slot{Kind: AxiomSlot, State: 0}
}

// Shifted creates a slot for a shifted token.
func Shifted(tok Token, state StateID) Slot {
	return Slot{Kind: TokenSlot, State: state, Token: tok}
}

// Derived creates a slot for the value of a reduction.
func Derived(value interface{}, prod ProdID, free FreeFunc, state StateID) Slot {
	return Slot{
		Kind:       DerivedSlot,
		State:      state,
		Value:      value,
		Production: prod,
		Free:       free,
	}
}

// Payload returns the token payload for token slots and the value
// for derived slots. Axiom slots return nil.
func (s Slot) Payload() interface{} {
	switch s.Kind {
	case TokenSlot:
		return s.Token.Payload
	case DerivedSlot:
		return s.Value
	}
	return nil
}

func (s Slot) String() string {
	switch s.Kind {
	case TokenSlot:
		return fmt.Sprintf("[%d:%v]", s.State, s.Token)
	case DerivedSlot:
		return fmt.Sprintf("[%d:P%d]", s.State, s.Production)
	}
	return fmt.Sprintf("[%d:⊥]", s.State)
}
