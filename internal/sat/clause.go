package sat

import "sort"

// addClauseResult distinguishes the four outcomes of registering an
// original (non-learnt) clause at decision level 0, mirroring kissat's
// kissat_add root simplification (internal.cc): a clause satisfied by a
// root-level literal, or containing a complementary pair, is dropped
// entirely rather than stored.
type addClauseResult int

const (
	clauseAdded addClauseResult = iota
	clauseTrivial                // tautology or root-satisfied: dropped, no-op
	clauseUnit                   // reduced to a single literal, already enqueued
	clauseConflict                // falsified at level 0: solver becomes UNSAT
)

// normalizeClause sorts lits, removes duplicates, and reports whether the
// clause is a tautology (contains a literal and its negation).
func normalizeClause(lits []Literal) (out []Literal, tautology bool) {
	sorted := append([]Literal(nil), lits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out = sorted[:0]
	for i, l := range sorted {
		if i > 0 && l == sorted[i-1] {
			continue // duplicate
		}
		if len(out) > 0 && out[len(out)-1] == l.Opposite() {
			return nil, true
		}
		out = append(out, l)
	}
	return out, false
}

// addOriginalClause registers a problem clause at decision level 0. It
// performs root-level simplification (drop satisfied/tautological clauses,
// remove falsified literals) the way kissat_add does, then stores what
// remains as a binary watch pair, a long clause in the arena, or an
// immediate unit assignment.
func (s *Solver) addOriginalClause(lits []Literal) addClauseResult {
	norm, tautology := normalizeClause(lits)
	if tautology {
		return clauseTrivial
	}

	filtered := norm[:0]
	satisfied := false
	for _, l := range norm {
		switch s.LitValue(l) {
		case True:
			satisfied = true
		case False:
			// root-falsified literal: drop it, matching kissat's root
			// simplification.
		default:
			filtered = append(filtered, l)
		}
	}
	if satisfied {
		return clauseTrivial
	}

	s.numConstraints++
	switch len(filtered) {
	case 0:
		s.inconsistent = true
		return clauseConflict
	case 1:
		lit := filtered[0]
		if s.LitValue(lit) == False {
			s.inconsistent = true
			return clauseConflict
		}
		if s.LitValue(lit) == Unknown {
			s.trail.Push(lit, decisionReason)
			s.setAssign(lit, True)
		}
		return clauseUnit
	case 2:
		s.addBinary(filtered[0], filtered[1], false)
		return clauseAdded
	default:
		ref := s.arena.Alloc(filtered, false, 0)
		s.watchLong(ref, filtered)
		return clauseAdded
	}
}

func (s *Solver) addBinary(a, b Literal, redundant bool) {
	s.watches.Add(a, binaryWatcher(b, redundant))
	s.watches.Add(b, binaryWatcher(a, redundant))
	if redundant {
		s.numBinaryLearnts++
	}
}

// watchLong installs the first two literals of lits as the watched pair for
// ref, matching NewClause's watch-selection in the teacher's clauses.go.
func (s *Solver) watchLong(ref Reference, lits []Literal) {
	s.watches.Add(lits[0], longWatcher(ref, lits[1]))
	s.watches.Add(lits[1], longWatcher(ref, lits[0]))
}

// registerLearnt stores a conflict-analysis result: lits[0] is the asserting
// literal, the clause is already ordered so lits[1] sits at the backjump
// level (§4.2). It returns the Reason the asserting literal should carry.
func (s *Solver) registerLearnt(lits []Literal, lbd int) Reason {
	switch len(lits) {
	case 1:
		return decisionReason // unit learnt clauses are root assignments, no antecedent to store
	case 2:
		s.addBinary(lits[0], lits[1], true)
		return Reason{Kind: ReasonBinary, Other: lits[1]}
	default:
		ref := s.arena.Alloc(lits, true, lbd)
		s.watchLong(ref, lits)
		s.numLongLearnts++
		return Reason{Kind: ReasonLong, Ref: ref}
	}
}

// reasonLiterals reconstructs the literals of a clause from its Reason. lit
// is the (possibly conflicting) literal the reason was looked up from; it is
// only needed for the binary case, where the clause is never materialized
// as a standalone slice.
func (s *Solver) reasonLiterals(lit Literal, r Reason) []Literal {
	switch r.Kind {
	case ReasonBinary:
		return []Literal{lit, r.Other}
	case ReasonLong:
		return s.arena.Literals(r.Ref)
	default:
		return nil
	}
}
