package stack

import (
	"errors"
	"testing"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrowthPreservesData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	s, err := New(1, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	const N = 100
	for i := 0; i < N; i++ {
		tok := lr.MakeToken(0, i)
		if err := s.Push(lr.Shifted(tok, lr.StateID(i))); err != nil {
			t.Fatalf("push #%d failed: %v", i, err)
		}
	}
	if s.Len() != N {
		t.Errorf("expected height %d, is %d", N, s.Len())
	}
	if s.Cap() < N {
		t.Errorf("expected capacity >= %d, is %d", N, s.Cap())
	}
	for i := N - 1; i >= 0; i-- {
		slot, err := s.Pop()
		if err != nil {
			t.Fatal(err)
		}
		if slot.State != lr.StateID(i) || slot.Token.Payload.(int) != i {
			t.Errorf("expected slot #%d to be intact, is %v", i, slot)
		}
	}
	if _, err := s.Pop(); !errors.Is(err, lr.InternalError) {
		t.Errorf("expected pop from empty stack to fail with internal error, got %v", err)
	}
}

func TestGrowthFailureLeavesStackUnchanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	calls := 0
	alloc := func(n int) ([]lr.Slot, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("out of memory")
		}
		return make([]lr.Slot, n), nil
	}
	s, err := New(2, nil, nil, WithAllocator(alloc))
	if err != nil {
		t.Fatal(err)
	}
	s.Push(lr.Axiom())
	s.Push(lr.Shifted(lr.MakeToken(1, "a"), 3))
	err = s.Push(lr.Shifted(lr.MakeToken(1, "b"), 4))
	if !errors.Is(err, lr.AllocationFailure) {
		t.Fatalf("expected allocation failure, got %v", err)
	}
	if s.Len() != 2 || s.Cap() != 2 {
		t.Errorf("expected stack to be unchanged, height=%d, capacity=%d", s.Len(), s.Cap())
	}
	top, _ := s.Peek()
	if top.Token.Payload != "a" || top.State != 3 {
		t.Errorf("expected top slot to be intact, is %v", top)
	}
	state, _ := s.CurrentState()
	if state != 3 {
		t.Errorf("expected current state 3, is %d", state)
	}
}

func TestMaxDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	s, err := New(2, nil, nil, MaxDepth(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Push(lr.Axiom()); err != nil {
			t.Fatalf("push #%d failed: %v", i, err)
		}
	}
	if s.Cap() != 3 {
		t.Errorf("expected growth to be clipped to 3, capacity is %d", s.Cap())
	}
	if err := s.Push(lr.Axiom()); !errors.Is(err, lr.AllocationFailure) {
		t.Errorf("expected allocation failure beyond max depth, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("expected height 3, is %d", s.Len())
	}
}

func TestNewFailsWithAllocationFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	alloc := func(n int) ([]lr.Slot, error) {
		return nil, errors.New("out of memory")
	}
	s, err := New(4, nil, nil, WithAllocator(alloc))
	if s != nil || lr.KindOf(err) != lr.AllocationFailure {
		t.Errorf("expected allocation failure, got %v", err)
	}
}

func TestPopNTooMany(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	s, _ := New(4, nil, nil)
	s.Push(lr.Axiom())
	s.Push(lr.Shifted(lr.MakeToken(0, nil), 1))
	if err := s.PopN(3); !errors.Is(err, lr.InternalError) {
		t.Errorf("expected internal error, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected stack to be unmodified, height is %d", s.Len())
	}
	if err := s.PopN(1); err != nil {
		t.Error(err)
	}
	if state, _ := s.CurrentState(); state != 0 || s.Len() != 1 {
		t.Errorf("expected axiom on top, have state %d at height %d", state, s.Len())
	}
}

func TestTopIsACopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	s, _ := New(4, nil, nil)
	s.Push(lr.Axiom())
	s.Push(lr.Shifted(lr.MakeToken(0, "x"), 1))
	s.Push(lr.Shifted(lr.MakeToken(1, "y"), 2))
	handle, err := s.Top(2)
	if err != nil {
		t.Fatal(err)
	}
	if handle[0].Token.Payload != "x" || handle[1].Token.Payload != "y" {
		t.Errorf("expected handle bottom to top, is %v", handle)
	}
	handle[0].State = 99
	if s.Slots()[1].State != 1 {
		t.Errorf("expected handle to be a copy")
	}
}

func TestDestroyFreesEachPayloadOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "microparser.lr")
	defer teardown()
	//
	freed := map[string]int{}
	type ctx struct{ name string }
	uctx := &ctx{name: "ctx"}
	free := func(v interface{}, u interface{}) {
		if u != uctx {
			t.Errorf("expected user context to be passed to free callback")
		}
		freed[v.(string)]++
	}
	tokenFree := []lr.FreeFunc{free, nil} // symbol 1 needs no destruction
	s, _ := New(1, tokenFree, uctx)
	s.Push(lr.Axiom())
	s.Push(lr.Shifted(lr.MakeToken(0, "tok0"), 1))
	s.Push(lr.Shifted(lr.MakeToken(1, "tok1"), 2))
	s.Push(lr.Derived("derived", 0, free, 3))
	s.Push(lr.Derived("nofree", 1, nil, 4))
	s.Push(lr.Derived("popped", 0, free, 5))
	popped, _ := s.Pop()
	if popped.Value != "popped" {
		t.Fatalf("unexpected slot popped: %v", popped)
	}
	s.Destroy()
	s.Destroy()
	expected := map[string]int{"tok0": 1, "derived": 1}
	if len(freed) != len(expected) {
		t.Errorf("expected %v to be freed, freed %v", expected, freed)
	}
	for k, n := range expected {
		if freed[k] != n {
			t.Errorf("expected %q to be freed %d time(s), was freed %d time(s)", k, n, freed[k])
		}
	}
	if !s.IsDestroyed() || s.Len() != 0 {
		t.Errorf("expected stack to be destroyed and empty")
	}
	if err := s.Push(lr.Axiom()); !errors.Is(err, lr.InternalError) {
		t.Errorf("expected push onto destroyed stack to fail, got %v", err)
	}
}
