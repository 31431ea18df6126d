package sat

import "testing"

func TestExtenderReconstructsForcedLiteralWhenRestFalse(t *testing.T) {
	var e extender
	// witness clause (x0 v x1): if x1 ends up false, x0 must be forced true.
	e.push(Literal(0), []Literal{Literal(2)})

	values := map[Literal]LBool{Literal(2): False}
	get := func(l Literal) LBool { return values[l] }
	set := func(l Literal, v LBool) { values[l] = v }

	e.apply(get, set)
	if values[Literal(0)] != True {
		t.Fatalf("forced literal should be true when the rest of the clause is false, got %v", values[Literal(0)])
	}
}

func TestExtenderLeavesForcedLiteralFalseWhenRestSatisfied(t *testing.T) {
	var e extender
	e.push(Literal(0), []Literal{Literal(2)})

	values := map[Literal]LBool{Literal(2): True}
	get := func(l Literal) LBool { return values[l] }
	set := func(l Literal, v LBool) { values[l] = v }

	e.apply(get, set)
	if values[Literal(0)] != False {
		t.Fatalf("forced literal should be false once the rest of the clause is already satisfied, got %v", values[Literal(0)])
	}
}

func TestExtenderReplaysInLIFOOrder(t *testing.T) {
	var e extender
	// the first elimination depends on the value the second one will produce;
	// apply() must resolve the second (pushed last) before the first.
	e.push(Literal(0), []Literal{Literal(2)}) // pushed first: x0 depends on x1
	e.push(Literal(2), nil)                   // pushed second: x1 forced true unconditionally

	values := map[Literal]LBool{}
	get := func(l Literal) LBool { return values[l] }
	set := func(l Literal, v LBool) { values[l] = v }

	e.apply(get, set)
	if values[Literal(2)] != True {
		t.Fatalf("unconditionally forced literal should be true, got %v", values[Literal(2)])
	}
	if values[Literal(0)] != False {
		t.Fatalf("x0 should resolve false since x1 (now true) satisfies its witness clause, got %v", values[Literal(0)])
	}
}

func TestEliminateSingletonsRemovesLoneOccurrenceVariable(t *testing.T) {
	s := buildSolver(t, 4)
	// var 3 occurs only here, and in no binary clause: eligible.
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1), s.PositiveLiteral(3)})
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.NegativeLiteral(1)})

	n := s.eliminateSingletons()
	if n != 1 {
		t.Fatalf("eliminateSingletons() eliminated %d variables, want 1", n)
	}
	if s.Active(3) {
		t.Errorf("eliminated variable should be deactivated")
	}
	if !s.importTable[3].eliminated {
		t.Errorf("importTable entry for the eliminated variable should be flagged")
	}
}

func TestEliminateSingletonsSkipsVariableInBinaryClause(t *testing.T) {
	s := buildSolver(t, 3)
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1), s.PositiveLiteral(2)})
	s.addOriginalClause([]Literal{s.PositiveLiteral(2), s.NegativeLiteral(0)}) // var 2 also in a binary

	s.eliminateSingletons()
	if !s.Active(2) {
		t.Errorf("a variable that also occurs in a binary clause should never be singleton-eliminated")
	}
}

func TestValueRoundTripsThroughEliminationAndExtension(t *testing.T) {
	s := buildSolver(t, 4)
	// vars 0 and 3 each occur in one long clause and in no binary: eligible.
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1), s.PositiveLiteral(2)})
	s.addOriginalClause([]Literal{s.NegativeLiteral(1), s.PositiveLiteral(2), s.PositiveLiteral(3)})

	s.eliminateSingletons()
	if !s.importTable[3].eliminated && !s.importTable[0].eliminated {
		t.Skip("neither variable was eligible for singleton elimination in this fixture")
	}

	// whichever variable survived the search gets a value on the trail; the
	// eliminated one must come back through Value()'s lazy extension path.
	for v := 0; v < s.NumVariables(); v++ {
		if s.Active(v) && s.VarValue(v) == Unknown {
			s.trail.Push(s.PositiveLiteral(v), decisionReason)
			s.setAssign(s.PositiveLiteral(v), True)
		}
	}

	for v := 0; v < s.NumVariables(); v++ {
		if got := s.Value(v+1, false); got == 0 {
			t.Errorf("Value(%d) returned 0, want a definite literal", v+1)
		}
	}
}

func TestValuePartialSkipsExtensionForEliminatedVariable(t *testing.T) {
	s := buildSolver(t, 4)
	s.addOriginalClause([]Literal{s.PositiveLiteral(0), s.PositiveLiteral(1), s.PositiveLiteral(2)})
	s.addOriginalClause([]Literal{s.NegativeLiteral(1), s.PositiveLiteral(2), s.PositiveLiteral(3)})

	s.eliminateSingletons()
	var eliminated int
	switch {
	case s.importTable[0].eliminated:
		eliminated = 0
	case s.importTable[3].eliminated:
		eliminated = 3
	default:
		t.Skip("neither variable was eligible for singleton elimination in this fixture")
	}

	if got := s.Value(eliminated+1, true); got != 0 {
		t.Errorf("Value(partial=true) on an eliminated variable = %d, want 0 (don't-care)", got)
	}
	if s.extended {
		t.Errorf("Value(partial=true) should not have triggered model extension")
	}
}

func TestValueRejectsZeroLiteral(t *testing.T) {
	s := buildSolver(t, 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("Value(0) should panic via contractViolation")
		}
	}()
	s.Value(0, false)
}
