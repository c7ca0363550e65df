/*
Package stack implements the parse stack of LR parsers.

A parse stack is a growable sequence of slots (see lr.Slot). It exclusively
owns the payloads of its slots: token payloads of shifted tokens and values
produced by reductions. When a stack is destroyed, every payload still on it
is destroyed with the callback appropriate for its slot kind. Slots removed
with Pop or PopN are not destroyed, their payloads pass to the caller.

Storage grows geometrically. Growth allocates the new storage before the old
one is given up, thus a failing allocation leaves the stack unchanged.

Stacks are not safe for concurrent use.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package stack

import (
	"fmt"

	"github.com/Lailouezzz/microparser"
	"github.com/Lailouezzz/microparser/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.lr'.
func tracer() tracing.Trace {
	return tracing.Select("microparser.lr")
}

// DefaultCapacity is the initial capacity of stacks created with a capacity < 1.
const DefaultCapacity = 16

// Allocator allocates storage for n slots. It may fail, e.g. if a memory budget
// is exhausted, and the stack will report an lr.AllocationFailure.
type Allocator func(n int) ([]lr.Slot, error)

func makeSlots(n int) ([]lr.Slot, error) {
	return make([]lr.Slot, n), nil
}

// Option configures a stack.
type Option func(s *Stack)

// WithAllocator sets the allocator for the stack's storage.
func WithAllocator(a Allocator) Option {
	return func(s *Stack) {
		if a != nil {
			s.alloc = a
		}
	}
}

// MaxDepth limits the number of slots a stack may hold. Pushing beyond the limit
// is an allocation failure. A limit < 1 means no limit.
func MaxDepth(n int) Option {
	return func(s *Stack) {
		s.maxDepth = n
	}
}

// Stack is a parse stack. Create one with New.
type Stack struct {
	slots     []lr.Slot     // storage, len(slots) is the capacity
	used      int           // number of slots in use
	tokenFree []lr.FreeFunc // free callbacks for token payloads, by symbol
	uctx      interface{}   // user context for free callbacks
	alloc     Allocator
	maxDepth  int
	destroyed bool
}

// New creates an empty stack with room for capacity slots. tokenFree holds the free
// callbacks for token payloads, indexed by terminal symbol; uctx will be passed
// to every free callback.
//
// New returns an lr.AllocationFailure if the initial storage cannot be allocated.
func New(capacity int, tokenFree []lr.FreeFunc, uctx interface{}, opts ...Option) (*Stack, error) {
	s := &Stack{
		tokenFree: tokenFree,
		uctx:      uctx,
		alloc:     makeSlots,
	}
	for _, opt := range opts {
		opt(s)
	}
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if s.maxDepth > 0 && capacity > s.maxDepth {
		capacity = s.maxDepth
	}
	slots, err := s.alloc(capacity)
	if err != nil || len(slots) < capacity {
		return nil, allocationFailure(capacity, err)
	}
	s.slots = slots
	return s, nil
}

func allocationFailure(n int, cause error) error {
	tracer().Errorf("parse stack: cannot allocate %d slots", n)
	return &lr.Error{
		Kind: lr.AllocationFailure,
		Msg:  fmt.Sprintf("cannot allocate parse stack of %d slots", n),
		Err:  cause,
	}
}

// Len returns the number of slots on the stack.
func (s *Stack) Len() int {
	return s.used
}

// Cap returns the number of slots the stack can hold without growing.
func (s *Stack) Cap() int {
	return len(s.slots)
}

// IsEmpty is a predicate: does the stack hold no slots?
func (s *Stack) IsEmpty() bool {
	return s.used == 0
}

// Push appends a slot on top of the stack, growing the stack if necessary.
// If growing fails, the stack is left unchanged and an lr.AllocationFailure
// is returned. The payload of slot is then still owned by the caller.
func (s *Stack) Push(slot lr.Slot) error {
	if s.destroyed {
		return lr.Errorf(lr.InternalError, "push onto destroyed parse stack")
	}
	if s.used == len(s.slots) {
		if err := s.grow(); err != nil {
			return err
		}
	}
	s.slots[s.used] = slot
	s.used++
	return nil
}

// grow doubles the capacity. The old storage is replaced only after the new
// one has been allocated.
func (s *Stack) grow() error {
	newcap := 2 * len(s.slots)
	if newcap == 0 {
		newcap = 1
	}
	if s.maxDepth > 0 && newcap > s.maxDepth {
		if len(s.slots) >= s.maxDepth {
			return allocationFailure(newcap, nil)
		}
		newcap = s.maxDepth
	}
	slots, err := s.alloc(newcap)
	if err != nil || len(slots) < newcap {
		return allocationFailure(newcap, err)
	}
	copy(slots, s.slots[:s.used])
	tracer().Debugf("parse stack grown from %d to %d slots", len(s.slots), newcap)
	s.slots = slots
	return nil
}

// Pop removes the top slot and returns it. Ownership of its payload passes to
// the caller. Popping from an empty stack is an lr.InternalError.
func (s *Stack) Pop() (lr.Slot, error) {
	if s.used == 0 {
		return lr.Slot{}, lr.Errorf(lr.InternalError, "pop from empty parse stack")
	}
	s.used--
	slot := s.slots[s.used]
	s.slots[s.used] = lr.Slot{}
	return slot, nil
}

// PopN removes the top n slots without destroying their payloads. If the stack
// holds fewer than n slots, it is left unmodified and an lr.InternalError is
// returned.
func (s *Stack) PopN(n int) error {
	if n < 0 || n > s.used {
		return lr.Errorf(lr.InternalError, "cannot pop %d slots from parse stack of height %d", n, s.used)
	}
	for i := s.used - n; i < s.used; i++ {
		s.slots[i] = lr.Slot{}
	}
	s.used -= n
	return nil
}

// Peek returns the top slot without removing it.
func (s *Stack) Peek() (lr.Slot, error) {
	if s.used == 0 {
		return lr.Slot{}, lr.Errorf(lr.InternalError, "peek into empty parse stack")
	}
	return s.slots[s.used-1], nil
}

// Top returns a copy of the top n slots, bottom to top.
func (s *Stack) Top(n int) ([]lr.Slot, error) {
	if n < 0 || n > s.used {
		return nil, lr.Errorf(lr.InternalError, "cannot view %d slots of parse stack of height %d", n, s.used)
	}
	handle := make([]lr.Slot, n)
	copy(handle, s.slots[s.used-n:s.used])
	return handle, nil
}

// CurrentState returns the automaton state recorded on the top slot.
func (s *Stack) CurrentState() (lr.StateID, error) {
	if s.used == 0 {
		return lr.NoState, lr.Errorf(lr.InternalError, "no current state for empty parse stack")
	}
	return s.slots[s.used-1].State, nil
}

// Slots returns a copy of all slots, bottom to top.
func (s *Stack) Slots() []lr.Slot {
	r := make([]lr.Slot, s.used)
	copy(r, s.slots[:s.used])
	return r
}

// Destroy destroys the payloads of all remaining slots, bottom to top, and releases
// the storage. Token payloads are destroyed with the free callback for their
// symbol, derived values with the free callback bound to their slot. Axiom slots
// own nothing. Calling Destroy more than once is a no-op.
func (s *Stack) Destroy() {
	if s.destroyed {
		return
	}
	tracer().Debugf("destroying parse stack of height %d", s.used)
	for i := 0; i < s.used; i++ {
		s.destroySlot(s.slots[i])
	}
	s.slots = nil
	s.used = 0
	s.destroyed = true
}

func (s *Stack) destroySlot(slot lr.Slot) {
	switch slot.Kind {
	case lr.DerivedSlot:
		if slot.Free != nil {
			slot.Free(slot.Value, s.uctx)
		}
	case lr.TokenSlot:
		if free := s.tokenFreeFunc(slot.Token.Symbol); free != nil {
			free(slot.Token.Payload, s.uctx)
		}
	}
}

func (s *Stack) tokenFreeFunc(sym microparser.TokType) lr.FreeFunc {
	if sym < 0 || int(sym) >= len(s.tokenFree) {
		return nil
	}
	return s.tokenFree[sym]
}

// IsDestroyed is a predicate: has Destroy been called?
func (s *Stack) IsDestroyed() bool {
	return s.destroyed
}
