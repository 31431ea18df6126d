package sat

// ExportClauseFunc is invoked after a learned clause is registered locally,
// only when its glue is within the current export threshold. Literals use
// external (DIMACS-style, signed, 1-based) numbering.
type ExportClauseFunc func(issuer any, lbd int, extLits []int)

// ImportUnitFunc is polled at decision level 0 until it returns 0.
type ImportUnitFunc func(issuer any) int

// ImportClauseFunc is polled at decision level 0 until it returns ok=false.
type ImportClauseFunc func(issuer any) (lbd int, extLits []int, ok bool)

// minExportGlue is the floor IncreaseClauseProduction/DecreaseClauseProduction
// cannot cross, matching Kissat::decreaseClauseProduction's "if (lbdLimit > 2)"
// guard in original_source/painless/painless-src/solvers/Kissat.cpp.
const minExportGlue = 2

// SetSharing registers the inter-worker clause-sharing callbacks (§4.8). Any
// of export/importUnit/importClause may be nil to disable that direction;
// issuer is an opaque handle passed back unchanged, matching
// setSharingClauseFunctions(kissat, issuer, export, importUnit, import) in
// original_source/painless/kissat/src/application.h.
func (s *Solver) SetSharing(issuer any, export ExportClauseFunc, importUnit ImportUnitFunc, importClause ImportClauseFunc) {
	s.shareIssuer = issuer
	s.exportClauseFn = export
	s.importUnitFn = importUnit
	s.importClauseFn = importClause
}

// IncreaseClauseProduction widens the export glue threshold by one, letting
// more learned clauses reach peers.
func (s *Solver) IncreaseClauseProduction() {
	s.exportGlueLimit++
}

// DecreaseClauseProduction narrows the export glue threshold by one, down to
// minExportGlue.
func (s *Solver) DecreaseClauseProduction() {
	if s.exportGlueLimit > minExportGlue {
		s.exportGlueLimit--
	}
}

func (s *Solver) externalLiteral(l Literal) int {
	ext := l.VarID() + 1
	if !l.IsPositive() {
		ext = -ext
	}
	return ext
}

func (s *Solver) internalLiteral(ext int) Literal {
	v := abs(ext) - 1
	if ext > 0 {
		return s.PositiveLiteral(v)
	}
	return s.NegativeLiteral(v)
}

// maybeExport calls exportClauseFn if the just-learned clause's glue passes
// the current threshold.
func (s *Solver) maybeExport(lits []Literal, lbd int) {
	if s.exportClauseFn == nil || lbd > s.exportGlueLimit {
		return
	}
	extLits := make([]int, len(lits))
	for i, l := range lits {
		extLits[i] = s.externalLiteral(l)
	}
	s.exportClauseFn(s.shareIssuer, lbd, extLits)
}

// importUnits drains the unit-import queue, matching kissat's
// importUnitClauses (search.cc): each accepted literal is mapped, checked
// for an active and unassigned variable, then assigned at level 0.
func (s *Solver) importUnits() bool {
	if s.importUnitFn == nil {
		return false
	}
	imported := false
	for {
		extLit := s.importUnitFn(s.shareIssuer)
		if extLit == 0 {
			break
		}
		lit := s.internalLiteral(extLit)
		v := lit.VarID()
		if v >= s.NumVariables() || !s.Active(v) || s.VarValue(v) != Unknown {
			continue
		}
		s.trail.Push(lit, decisionReason)
		s.setAssign(lit, True)
		if s.proofLearn != nil {
			s.proofLearn([]int{extLit})
		}
		imported = true
	}
	return imported
}

// importClauses drains the clause-import queue, matching kissat's
// importClauses (search.cc): falsified-everywhere clauses report UNSAT,
// clauses with exactly one unassigned literal are registered and
// immediately propagated, everything else is registered as an ordinary
// learned clause for the watch scheme to pick up later.
func (s *Solver) importClauses() bool {
	if s.importClauseFn == nil {
		return false
	}
	for {
		lbd, extLits, ok := s.importClauseFn(s.shareIssuer)
		if !ok {
			break
		}
		if len(extLits) == 0 {
			continue
		}

		lits := make([]Literal, 0, len(extLits))
		valid := true
		falseCount := 0
		var unassigned Literal
		unassignedCount := 0
		for _, e := range extLits {
			lit := s.internalLiteral(e)
			v := lit.VarID()
			if v >= s.NumVariables() || !s.Active(v) {
				valid = false
				break
			}
			lits = append(lits, lit)
			switch s.LitValue(lit) {
			case False:
				falseCount++
			case Unknown:
				unassigned = lit
				unassignedCount++
			}
		}
		if !valid {
			continue
		}
		if falseCount == len(lits) {
			s.inconsistent = true
			return true
		}
		if unassignedCount == 1 && falseCount == len(lits)-1 {
			ordered := reorderFirst(lits, unassigned)
			reason := s.registerLearnt(ordered, lbd)
			s.setImportedUsed(reason, lbd)
			s.trail.Push(unassigned, reason)
			s.setAssign(unassigned, True)
		} else if len(lits) >= 2 {
			ordered := s.orderForWatching(lits)
			reason := s.registerLearnt(ordered, lbd)
			s.setImportedUsed(reason, lbd)
		}
	}
	return false
}

// orderForWatching moves every literal whose value is not False ahead of the
// falsified ones, so registerLearnt's watchLong sees two not-yet-falsified
// literals in the first two slots (§3 Watches (ii)/(iii)). Without this,
// propagate.go never revisits a watch registered at an already-passed trail
// position, permanently losing the clause's propagation power. Mirrors
// kissat_sort_literals ahead of its cpt/ind counting in
// original_source/painless/kissat/src/search.cc.
func (s *Solver) orderForWatching(lits []Literal) []Literal {
	out := make([]Literal, 0, len(lits))
	var falseLits []Literal
	for _, l := range lits {
		if s.LitValue(l) == False {
			falseLits = append(falseLits, l)
		} else {
			out = append(out, l)
		}
	}
	return append(out, falseLits...)
}

// setImportedUsed applies §4.8's formula for clauses entering the database
// through sharing rather than local conflict analysis: used = 1 + (glue <=
// tier2). Binary clauses have no arena header to carry a used count.
func (s *Solver) setImportedUsed(r Reason, lbd int) {
	if r.Kind != ReasonLong {
		return
	}
	used := 1
	if lbd <= s.reducer.tier2Glue {
		used = 2
	}
	s.arena.SetUsed(r.Ref, used)
}

// reorderFirst returns lits with first moved to index 0, preserving order
// of the rest.
func reorderFirst(lits []Literal, first Literal) []Literal {
	out := make([]Literal, 0, len(lits))
	out = append(out, first)
	for _, l := range lits {
		if l != first {
			out = append(out, l)
		}
	}
	return out
}
