package sat

// eliminateSingletons is a narrow, sound instance of the §4.7 simplification
// boundary: a variable that occurs in exactly one surviving long clause and
// in no binary clause can be removed from the search entirely, deferring
// its value to model extension (§4.9). This is the restricted case of
// bounded variable elimination safe to run without clause resolution:
// dropping the clause cannot affect satisfiability as long as the
// eliminated variable is free to satisfy it on its own, which
// extender.apply reconstructs afterwards.
//
// Only runs at decision level 0, like every simplifier under §4.7.
func (s *Solver) eliminateSingletons() int {
	nVar := s.NumVariables()
	occurrences := make([]int8, nVar) // saturates at 2: "0, 1, many"
	occLit := make([]Literal, nVar)
	occRef := make([]Reference, nVar)
	hasBinary := make([]bool, nVar)

	bump := func(v int) {
		if occurrences[v] < 2 {
			occurrences[v]++
		}
	}

	for lit := 0; lit < len(s.watches.lists); lit++ {
		for _, w := range s.watches.List(Literal(lit)) {
			if w.isBinary {
				hasBinary[Literal(lit).VarID()] = true
				hasBinary[w.blocking.VarID()] = true
			}
		}
	}

	for i := 0; i < s.arena.NumClauses(); i++ {
		ref := Reference(i)
		if s.arena.Garbage(ref) {
			continue
		}
		for _, l := range s.arena.Literals(ref) {
			v := l.VarID()
			bump(v)
			occLit[v] = l
			occRef[v] = ref
		}
	}

	eliminated := 0
	for v := 0; v < nVar; v++ {
		if !s.active[v] || s.VarValue(v) != Unknown {
			continue
		}
		if hasBinary[v] || occurrences[v] != 1 {
			continue
		}
		ref := occRef[v]
		if s.locked(ref) {
			continue
		}
		lits := s.arena.Literals(ref)
		rest := make([]Literal, 0, len(lits)-1)
		for _, l := range lits {
			if l.VarID() != v {
				rest = append(rest, l)
			}
		}
		s.extender.push(occLit[v], rest)
		s.arena.MarkGarbage(ref)
		s.watches.RemoveLongWatcher(lits[0], ref)
		s.watches.RemoveLongWatcher(lits[1], ref)
		s.deactivate(v)
		s.importTable[v].eliminated = true
		eliminated++
	}

	return eliminated
}
