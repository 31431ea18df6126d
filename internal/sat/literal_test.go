package sat

import "testing"

func TestLiteralEncoding(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	pos := s.PositiveLiteral(v)
	neg := s.NegativeLiteral(v)

	if !pos.IsPositive() {
		t.Errorf("PositiveLiteral(%d) should be positive", v)
	}
	if neg.IsPositive() {
		t.Errorf("NegativeLiteral(%d) should not be positive", v)
	}
	if pos.VarID() != v || neg.VarID() != v {
		t.Errorf("VarID mismatch: pos=%d neg=%d want %d", pos.VarID(), neg.VarID(), v)
	}
	if pos.Opposite() != neg || neg.Opposite() != pos {
		t.Errorf("Opposite() did not round-trip: pos=%v neg=%v", pos, neg)
	}
}

func TestLBoolOpposite(t *testing.T) {
	cases := []struct {
		in   LBool
		want LBool
	}{
		{True, False},
		{False, True},
		{Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLift(t *testing.T) {
	if Lift(true) != True {
		t.Errorf("Lift(true) != True")
	}
	if Lift(false) != False {
		t.Errorf("Lift(false) != False")
	}
}
