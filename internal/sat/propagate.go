package sat

// conflict describes the clause that falsified during propagation, in
// enough detail for analyze.go to reconstruct its literals via
// reasonLiterals without a separate conflict-clause type.
type conflict struct {
	found  bool
	lit    Literal // representative literal, meaningful only for ReasonBinary
	reason Reason
}

// Propagate performs breadth-first unit propagation over the trail,
// maintaining the two-watched-literal invariant (§4.1). It runs until every
// trail literal has been propagated or a conflict is found.
//
// Grounded on the teacher's Clause.Propagate (clauses.go) for the
// watch-replacement scan, generalized to dispatch over the binary/long
// watcher tag instead of always dereferencing a *Clause, and driven from the
// Trail type instead of an ad hoc index.
func (s *Solver) Propagate() conflict {
	for s.trail.HasUnpropagated() {
		p := s.trail.NextToPropagate()
		s.numPropagations++
		falseLit := p.Opposite()

		lst := s.watches.List(falseLit)
		keep := lst[:0]
		for i := 0; i < len(lst); i++ {
			w := lst[i]

			if w.isBinary {
				switch s.LitValue(w.blocking) {
				case True:
					keep = append(keep, w)
				case False:
					keep = append(keep, w)
					keep = append(keep, lst[i+1:]...)
					s.watches.SetList(falseLit, keep)
					return conflict{found: true, lit: w.blocking, reason: Reason{Kind: ReasonBinary, Other: falseLit}}
				default:
					s.trail.Push(w.blocking, Reason{Kind: ReasonBinary, Other: falseLit})
					s.setAssign(w.blocking, True)
					keep = append(keep, w)
				}
				continue
			}

			if s.LitValue(w.blocking) == True {
				keep = append(keep, w)
				continue
			}

			lits := s.arena.Literals(w.ref)
			// Ensure falseLit sits at lits[1] so lits[0] is the "other" watch.
			if lits[0] == falseLit {
				lits[0], lits[1] = lits[1], lits[0]
			}
			other := lits[0]
			if other != w.blocking && s.LitValue(other) == True {
				w.blocking = other
				keep = append(keep, w)
				continue
			}

			replaced := false
			for k := 2; k < len(lits); k++ {
				if s.LitValue(lits[k]) != False {
					lits[1], lits[k] = lits[k], lits[1]
					s.watches.Add(lits[1], longWatcher(w.ref, other))
					replaced = true
					break
				}
			}
			if replaced {
				continue // watcher moved to lits[1]'s list, drop from this one
			}

			keep = append(keep, w) // lits[1] stays falseLit, watcher remains here

			switch s.LitValue(other) {
			case False:
				keep = append(keep, lst[i+1:]...)
				s.watches.SetList(falseLit, keep)
				return conflict{found: true, reason: Reason{Kind: ReasonLong, Ref: w.ref}}
			default:
				s.trail.Push(other, Reason{Kind: ReasonLong, Ref: w.ref})
				s.setAssign(other, True)
			}
		}
		s.watches.SetList(falseLit, keep)
	}
	return conflict{}
}
