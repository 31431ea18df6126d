package sat

import "testing"

// buildSolver returns a fresh default solver with n fresh variables.
func buildSolver(t *testing.T, n int) *Solver {
	t.Helper()
	s := NewDefaultSolver()
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
	return s
}

func TestPropagateUnitClause(t *testing.T) {
	s := buildSolver(t, 1)
	if res := s.addOriginalClause([]Literal{s.PositiveLiteral(0)}); res != clauseUnit {
		t.Fatalf("addOriginalClause(unit) = %v, want clauseUnit", res)
	}
	if s.VarValue(0) != True {
		t.Fatalf("variable 0 should be forced True by a unit clause")
	}
	if c := s.Propagate(); c.found {
		t.Fatalf("Propagate() found an unexpected conflict on a single satisfied unit")
	}
}

func TestPropagateBinaryClauseForcesLiteral(t *testing.T) {
	s := buildSolver(t, 2)
	// (x0 v x1), force x0 true, expect x1 forced true by the binary watcher.
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1)})

	s.trail.NewDecisionLevel()
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)

	if c := s.Propagate(); c.found {
		t.Fatalf("unexpected conflict: %+v", c)
	}
	if s.VarValue(1) != True {
		t.Fatalf("binary clause should have forced x1 true, got %v", s.VarValue(1))
	}
}

func TestPropagateLongClauseConflict(t *testing.T) {
	s := buildSolver(t, 3)
	// (x0 v x1 v x2). Force all three false: this must conflict.
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1), s.PositiveLiteral(2)})

	for _, v := range []int{0, 1} {
		s.trail.NewDecisionLevel()
		lit := s.NegativeLiteral(v)
		s.trail.Push(lit, decisionReason)
		s.setAssign(lit, True)
		if c := s.Propagate(); c.found {
			t.Fatalf("unexpected early conflict after forcing x%d false: %+v", v, c)
		}
	}

	s.trail.NewDecisionLevel()
	lit := s.NegativeLiteral(2)
	s.trail.Push(lit, decisionReason)
	s.setAssign(lit, True)

	c := s.Propagate()
	if !c.found {
		t.Fatalf("expected a conflict once all three literals are false")
	}
	if c.reason.Kind != ReasonLong {
		t.Fatalf("conflict reason kind = %v, want ReasonLong", c.reason.Kind)
	}
}

func TestPropagateBinaryClauseConflictKeepsWatcher(t *testing.T) {
	s := buildSolver(t, 2)
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1)})

	s.trail.NewDecisionLevel()
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)
	s.Propagate() // forces x1 true

	undone := s.trail.Backtrack(0)
	s.undoAssigns(undone)

	// Force both literals false this time: must conflict via the binary watcher.
	s.trail.NewDecisionLevel()
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)
	s.trail.NewDecisionLevel()
	s.trail.Push(s.NegativeLiteral(1), decisionReason)
	s.setAssign(s.NegativeLiteral(1), True)

	c := s.Propagate()
	if !c.found {
		t.Fatalf("expected a conflict, binary watcher invariant broken after prior propagation")
	}
	if c.reason.Kind != ReasonBinary {
		t.Fatalf("conflict reason kind = %v, want ReasonBinary", c.reason.Kind)
	}
}
