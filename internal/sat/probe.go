package sat

// probeFailedLiterals is the concrete §4.7 simplification instance run
// between search epochs: for each still-undecided variable, tentatively
// assign one polarity and propagate; if that leads to a conflict, the
// opposite polarity is implied and is added as a root unit. Grounded on the
// assign/propagate/undo shape of gophersat's solver/preprocess.go, adapted
// onto the Trail/Propagate pair instead of a flat trail slice.
//
// Only valid at decision level 0, per the general simplifier contract.
func (s *Solver) probeFailedLiterals(budget int) (unsat bool) {
	if s.trail.Level() != 0 {
		contractViolation("probeFailedLiterals", "must run at decision level 0")
	}

	tried := 0
	for v := 0; v < s.NumVariables() && tried < budget; v++ {
		if !s.Active(v) || s.VarValue(v) != Unknown {
			continue
		}
		tried++

		for _, lit := range [2]Literal{s.PositiveLiteral(v), s.NegativeLiteral(v)} {
			if s.VarValue(v) != Unknown {
				break // fixed by the first branch already
			}

			s.trail.NewDecisionLevel()
			s.trail.Push(lit, decisionReason)
			s.setAssign(lit, True)
			c := s.Propagate()

			undone := s.trail.Backtrack(0)
			s.undoAssigns(undone)

			if c.found {
				res := s.addOriginalClause([]Literal{lit.Opposite()})
				if res == clauseConflict {
					return true
				}
			}
		}
	}
	return false
}
