package sat

import "testing"

func TestProbeFailedLiteralsForcesOppositePolarity(t *testing.T) {
	s := buildSolver(t, 2)
	// (!x0 v x1) ^ (!x0 v !x1): deciding x0=true always conflicts, so the
	// opposite polarity (x0=false) must be forced as a root unit.
	s.addOriginalClause([]Literal{s.NegativeLiteral(0), s.PositiveLiteral(1)})
	s.addOriginalClause([]Literal{s.NegativeLiteral(0), s.NegativeLiteral(1)})

	unsat := s.probeFailedLiterals(10)
	if unsat {
		t.Fatalf("probeFailedLiterals() reported UNSAT for a satisfiable instance")
	}
	if s.VarValue(0) != False {
		t.Fatalf("var 0 should have been forced false, got %v", s.VarValue(0))
	}
}

func TestProbeFailedLiteralsRespectsBudget(t *testing.T) {
	s := buildSolver(t, 3)
	s.addOriginalClause([]Literal{s.NegativeLiteral(0), s.PositiveLiteral(1)})
	s.addOriginalClause([]Literal{s.NegativeLiteral(0), s.NegativeLiteral(1)})

	// a budget of 0 must try nothing and leave every variable untouched.
	s.probeFailedLiterals(0)
	if s.VarValue(0) != Unknown {
		t.Errorf("probeFailedLiterals(0) should not have assigned anything, var 0 = %v", s.VarValue(0))
	}
}

func TestProbeFailedLiteralsPanicsAboveRootLevel(t *testing.T) {
	s := buildSolver(t, 1)
	s.trail.NewDecisionLevel()
	s.trail.Push(s.PositiveLiteral(0), decisionReason)
	s.setAssign(s.PositiveLiteral(0), True)

	defer func() {
		if recover() == nil {
			t.Fatalf("probeFailedLiterals() above decision level 0 should panic via contractViolation")
		}
	}()
	s.probeFailedLiterals(10)
}
