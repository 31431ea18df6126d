package sat

import "sort"

// analyzeResult is the outcome of conflict analysis (§4.2): the learned
// clause (asserting literal at index 0), its glue/LBD, and the level to
// backjump to.
type analyzeResult struct {
	learnt        []Literal
	lbd           int
	backjumpLevel int
}

// analyze performs first-UIP resolution starting from a conflict, following
// the teacher's analyze/explain pair (solver.go) generalized to read
// literals through reasonLiterals instead of always holding a *Clause, and
// extended with recursive minimization (gophersat's solver/learn.go
// minimizeLearned is the non-recursive starting point this generalizes, per
// DESIGN.md).
func (s *Solver) analyze(c conflict) analyzeResult {
	s.seen.Clear()
	level := s.trail.Level()
	open := 0
	learnt := make([]Literal, 1, 8) // index 0 reserved for the asserting literal

	resolve := func(lits []Literal, skip Literal, hasSkip bool) {
		for _, q := range lits {
			if hasSkip && q == skip {
				continue
			}
			v := q.VarID()
			if s.seen.Contains(v) {
				continue
			}
			s.seen.Add(v)
			s.bumpVariable(v)
			lvl := s.trail.VarLevel(v)
			switch {
			case lvl == level:
				open++
			case lvl > 0:
				learnt = append(learnt, q)
			}
		}
	}

	resolve(s.reasonLiterals(c.lit, c.reason), 0, false)

	idx := s.trail.Len() - 1
	var p Literal
	for {
		for !s.seen.Contains(s.trail.At(idx).VarID()) {
			idx--
		}
		p = s.trail.At(idx)
		idx--
		open--
		if open == 0 {
			break
		}
		reason := s.trail.VarReason(p.VarID())
		resolve(s.reasonLiterals(p, reason), p, true)
	}
	learnt[0] = p.Opposite()

	learnt = s.minimize(learnt)

	lbd, backjump := s.orderByLevel(learnt)
	return analyzeResult{learnt: learnt, lbd: lbd, backjumpLevel: backjump}
}

// minimize drops literals whose reason clause is entirely subsumed by
// literals already in the learned clause, following the resolution graph
// recursively. A per-call memo (the "poison set" of the design note) bounds
// the work to one pass per distinct variable instead of recomputing
// redundancy for shared ancestors, and a depth cap prevents pathological
// recursion on deep reason chains.
func (s *Solver) minimize(learnt []Literal) []Literal {
	if len(learnt) <= 1 {
		return learnt
	}

	memo := make(map[int]bool, 4*len(learnt))
	const maxDepth = 64

	var redundant func(lit Literal, depth int) bool
	redundant = func(lit Literal, depth int) bool {
		v := lit.VarID()
		if r, ok := memo[v]; ok {
			return r
		}
		if depth >= maxDepth {
			memo[v] = false
			return false
		}
		reason := s.trail.VarReason(v)
		if reason.Kind == ReasonDecision {
			memo[v] = false
			return false
		}
		for _, q := range s.reasonLiterals(lit, reason) {
			if q == lit {
				continue
			}
			qv := q.VarID()
			if s.trail.VarLevel(qv) == 0 || s.seen.Contains(qv) {
				continue
			}
			if !redundant(q, depth+1) {
				memo[v] = false
				return false
			}
		}
		memo[v] = true
		return true
	}

	out := learnt[:1]
	for _, lit := range learnt[1:] {
		if !redundant(lit, 0) {
			out = append(out, lit)
		}
	}
	return out
}

// orderByLevel sorts learnt[1:] by decreasing decision level so that
// learnt[1] is the backjump literal, and returns the clause's LBD/glue
// together with the backjump level.
func (s *Solver) orderByLevel(learnt []Literal) (lbd int, backjumpLevel int) {
	rest := learnt[1:]
	sort.Slice(rest, func(i, j int) bool {
		return s.trail.VarLevel(rest[i].VarID()) > s.trail.VarLevel(rest[j].VarID())
	})

	levels := make(map[int]struct{}, len(learnt))
	levels[s.trail.VarLevel(learnt[0].VarID())] = struct{}{}
	for _, l := range rest {
		levels[s.trail.VarLevel(l.VarID())] = struct{}{}
	}

	if len(rest) == 0 {
		return len(levels), 0
	}
	return len(levels), s.trail.VarLevel(rest[0].VarID())
}
