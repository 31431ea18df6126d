package sat

import "sort"

// reduceScheduler decides when to shrink the learned clause database and
// implements the tiered keep policy of §4.5: glue <= tier1 survives forever,
// tier1 < glue <= tier2 survives a bounded number of reductions, anything
// worse is reclaimed first. Grounded on the teacher's Solver.ReduceDB and
// gophersat's solver/watcher.go reduceLearned (sort-by-quality-then-drop-half
// shape), adapted onto the arena/Reference model instead of a flat slice of
// *Clause.
type reduceScheduler struct {
	conflictsSinceReduce int64
	nextReduce           int64
	growth               int64
	tier1Glue            int
	tier2Glue            int
	tier2Budget          int32
}

func newReduceScheduler() *reduceScheduler {
	return &reduceScheduler{
		nextReduce:  2000,
		growth:      300,
		tier1Glue:   2,
		tier2Glue:   6,
		tier2Budget: 8,
	}
}

func (r *reduceScheduler) Conflict() { r.conflictsSinceReduce++ }

func (r *reduceScheduler) ShouldReduce() bool {
	return r.conflictsSinceReduce >= r.nextReduce
}

func (r *reduceScheduler) DidReduce() {
	r.conflictsSinceReduce = 0
	r.nextReduce += r.growth
}

// locked reports whether ref is currently serving as the reason for an
// assigned literal: by construction a learnt clause's first literal is the
// asserting literal at registration time, so checking position 0 is enough.
func (s *Solver) locked(ref Reference) bool {
	lits := s.arena.Literals(ref)
	lit0 := lits[0]
	if s.LitValue(lit0) != True {
		return false
	}
	r := s.trail.VarReason(lit0.VarID())
	return r.Kind == ReasonLong && r.Ref == ref
}

// reduce marks a portion of the redundant long clause database as garbage
// and, once the garbage ratio exceeds 0.2, compacts the arena, rewriting
// every stored Reference.
func (s *Solver) reduce() {
	type candidate struct {
		ref  Reference
		lbd  int
		used int
	}
	var candidates []candidate

	for i := 0; i < s.arena.NumClauses(); i++ {
		ref := Reference(i)
		if !s.arena.Redundant(ref) || s.arena.Garbage(ref) {
			continue
		}
		lbd := s.arena.LBD(ref)
		if lbd <= s.reducer.tier1Glue {
			s.arena.SetKeep(ref, true)
			continue
		}
		if s.locked(ref) {
			continue
		}
		if lbd <= s.reducer.tier2Glue {
			if s.arena.Tier2Left(ref) == 0 && !s.arena.Keep(ref) {
				s.arena.SetTier2Left(ref, int(s.reducer.tier2Budget))
			}
			if s.arena.Tier2Left(ref) > 0 {
				s.arena.DecTier2Left(ref)
				s.arena.SetKeep(ref, true)
				continue
			}
		}
		s.arena.SetKeep(ref, false)
		candidates = append(candidates, candidate{ref: ref, lbd: lbd, used: s.arena.Used(ref)})
		s.arena.DecayUsed(ref)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].lbd != candidates[j].lbd {
			return candidates[i].lbd > candidates[j].lbd
		}
		return candidates[i].used < candidates[j].used
	})

	for i := 0; i < len(candidates)/2; i++ {
		ref := candidates[i].ref
		if s.proofDelete != nil {
			s.proofDelete(s.toExternal(s.arena.Literals(ref)))
		}
		s.arena.MarkGarbage(ref)
	}

	if s.arena.GarbageRatio() > 0.2 {
		s.compact()
	}
	s.reducer.DidReduce()
}

// compact rewrites the arena and propagates the resulting Reference remap
// into the watch lists and trail reasons, per the arena's ownership model
// (§9): the arena only knows about its own offsets, the solver owns every
// other place a Reference is stored.
func (s *Solver) compact() {
	remap := s.arena.Compact()
	s.watches.RewriteReferences(remap)
	s.trail.rewriteReferences(remap)
}
