package sat

import "testing"

func TestMaybeExportRespectsGlueThreshold(t *testing.T) {
	s := buildSolver(t, 3)
	s.exportGlueLimit = 4

	var gotLBD int
	var gotLits []int
	s.SetSharing("me", func(issuer any, lbd int, extLits []int) {
		gotLBD = lbd
		gotLits = extLits
	}, nil, nil)

	s.maybeExport([]Literal{s.PositiveLiteral(0), s.NegativeLiteral(1)}, 5)
	if gotLits != nil {
		t.Fatalf("export fired for lbd=5 above the threshold of 4")
	}

	s.maybeExport([]Literal{s.PositiveLiteral(0), s.NegativeLiteral(1)}, 3)
	if gotLBD != 3 {
		t.Fatalf("gotLBD = %d, want 3", gotLBD)
	}
	want := []int{1, -2}
	if len(gotLits) != len(want) || gotLits[0] != want[0] || gotLits[1] != want[1] {
		t.Errorf("gotLits = %v, want %v", gotLits, want)
	}
}

func TestIncreaseDecreaseClauseProductionClampsAtFloor(t *testing.T) {
	s := buildSolver(t, 1)
	s.exportGlueLimit = minExportGlue

	s.DecreaseClauseProduction()
	if s.exportGlueLimit != minExportGlue {
		t.Fatalf("DecreaseClauseProduction crossed the floor: got %d, want %d", s.exportGlueLimit, minExportGlue)
	}

	s.IncreaseClauseProduction()
	if s.exportGlueLimit != minExportGlue+1 {
		t.Errorf("IncreaseClauseProduction() = %d, want %d", s.exportGlueLimit, minExportGlue+1)
	}
}

func TestImportUnitsAssignsActiveUnassignedVariables(t *testing.T) {
	s := buildSolver(t, 2)
	queue := []int{1, -2, 0}
	i := 0
	s.SetSharing("me", nil, func(issuer any) int {
		if i >= len(queue) {
			return 0
		}
		v := queue[i]
		i++
		return v
	}, nil)

	if !s.importUnits() {
		t.Fatalf("importUnits() reported no import despite a pending unit")
	}
	if s.VarValue(0) != True {
		t.Errorf("var 0 should have been assigned true from imported unit 1")
	}
	if s.VarValue(1) != False {
		t.Errorf("var 1 should have been assigned false from imported unit -2")
	}
}

func TestImportUnitsSkipsAlreadyAssignedVariable(t *testing.T) {
	s := buildSolver(t, 1)
	s.trail.Push(s.PositiveLiteral(0), decisionReason)
	s.setAssign(s.PositiveLiteral(0), True)

	delivered := false
	s.SetSharing("me", nil, func(issuer any) int {
		if delivered {
			return 0
		}
		delivered = true
		return -1 // contradicts the existing assignment
	}, nil)

	s.importUnits()
	if s.VarValue(0) != True {
		t.Errorf("importUnits() overwrote an already-assigned variable")
	}
}

func TestImportClausesAssertingUnitPropagates(t *testing.T) {
	s := buildSolver(t, 3)
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)
	s.trail.Push(s.NegativeLiteral(1), decisionReason)
	s.setAssign(s.NegativeLiteral(1), True)

	delivered := false
	s.SetSharing("me", nil, nil, func(issuer any) (int, []int, bool) {
		if delivered {
			return 0, nil, false
		}
		delivered = true
		return 3, []int{1, 2, 3}, true // var1 false, var2 false, var3 unassigned
	})

	s.importClauses()
	if s.VarValue(2) != True {
		t.Fatalf("asserting literal from imported clause was not propagated")
	}
}

func TestImportClausesOrdersWatchesAwayFromFalsifiedLiterals(t *testing.T) {
	s := buildSolver(t, 4)
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)
	s.trail.Push(s.NegativeLiteral(1), decisionReason)
	s.setAssign(s.NegativeLiteral(1), True)

	delivered := false
	s.SetSharing("me", nil, nil, func(issuer any) (int, []int, bool) {
		if delivered {
			return 0, nil, false
		}
		delivered = true
		return 4, []int{1, 2, 3, 4}, true // var1, var2 false; var3, var4 unassigned
	})

	s.importClauses()
	if s.arena.NumClauses() != 1 {
		t.Fatalf("expected exactly one registered clause, got %d", s.arena.NumClauses())
	}
	stored := s.arena.Literals(0)
	for i := 0; i < 2; i++ {
		if s.LitValue(stored[i]) == False {
			t.Errorf("watched literal at index %d is already falsified: %v", i, stored)
		}
	}
}

func TestImportClausesSetsUsedPerTierFormula(t *testing.T) {
	s := buildSolver(t, 3)
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)
	s.trail.Push(s.NegativeLiteral(1), decisionReason)
	s.setAssign(s.NegativeLiteral(1), True)

	delivered := false
	s.SetSharing("me", nil, nil, func(issuer any) (int, []int, bool) {
		if delivered {
			return 0, nil, false
		}
		delivered = true
		return s.reducer.tier2Glue, []int{1, 2, 3}, true // glue within tier2 band
	})

	s.importClauses()
	r := s.trail.VarReason(2)
	if r.Kind != ReasonLong {
		t.Fatalf("asserting literal's reason = %v, want ReasonLong", r.Kind)
	}
	if got := s.arena.Used(r.Ref); got != 2 {
		t.Errorf("arena.Used(imported clause) = %d, want 2 (1 + glue<=tier2)", got)
	}
}

func TestImportClausesAllFalseMarksInconsistent(t *testing.T) {
	s := buildSolver(t, 1)
	s.trail.Push(s.NegativeLiteral(0), decisionReason)
	s.setAssign(s.NegativeLiteral(0), True)

	delivered := false
	s.SetSharing("me", nil, nil, func(issuer any) (int, []int, bool) {
		if delivered {
			return 0, nil, false
		}
		delivered = true
		return 1, []int{1}, true
	})

	s.importClauses()
	if !s.inconsistent {
		t.Errorf("importing an everywhere-falsified clause should mark the solver inconsistent")
	}
}

func TestReorderFirstPreservesRest(t *testing.T) {
	lits := []Literal{2, 4, 6, 8}
	out := reorderFirst(lits, 6)
	if out[0] != 6 {
		t.Fatalf("reorderFirst() did not move the target literal to index 0: %v", out)
	}
	if len(out) != len(lits) {
		t.Fatalf("reorderFirst() changed length: got %d, want %d", len(out), len(lits))
	}
}
