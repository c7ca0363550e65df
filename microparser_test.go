package microparser

import "testing"

func TestSpanExtend(t *testing.T) {
	s := Span{3, 5}
	if x := s.Extend(Span{1, 4}); x != (Span{1, 5}) {
		t.Errorf("expected (1…5), got %v", x)
	}
	if x := s.Extend(Span{}); x != s {
		t.Errorf("expected null span to be neutral, got %v", x)
	}
	if x := (Span{}).Extend(s); x != s {
		t.Errorf("expected null span to be neutral, got %v", x)
	}
	if s.Len() != 2 {
		t.Errorf("expected length 2, got %d", s.Len())
	}
	if s.String() != "(3…5)" {
		t.Errorf("unexpected string %q", s.String())
	}
}
