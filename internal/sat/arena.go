package sat

// Reference addresses a long clause (size >= 3) stored in an Arena. Binary
// clauses never receive a Reference: they live only as watcher pairs (see
// watch.go). NoReference is the sentinel used by decisions and by binary
// reasons, matching the "variant reason" design note: a Reason is a small
// tagged struct, not a polymorphic clause handle.
//
// The source this was distilled from addresses clauses by byte offset into a
// single memory-mapped region. Go has no portable way to take a stable byte
// offset into a slice that survives reallocation without unsafe pointer
// arithmetic, so the Arena here is word-addressed instead: Reference indexes
// a headers table, and each header records the start/length of its literals
// in a flat backing slice. This keeps the same append-only-until-compaction
// contract (offsets are stable across growth, rewritten only by Compact)
// while staying within ordinary Go slices.
type Reference int32

// NoReference marks "not a long-clause reference": used by decisions, by
// binary reasons, and by clauses not yet allocated.
const NoReference Reference = -1

type clauseHeader struct {
	start     int32
	size      int32
	lbd       int32
	used      int32
	tier2Left int32 // remaining reductions this clause is exempt from, tier1 < glue <= tier2
	redundant bool  // learnt, as opposed to an original problem clause
	keep      bool  // never reduced away (glue <= tier1, or locked)
	garbage   bool
}

// Arena is the append-only backing store for long (size >= 3) clauses.
type Arena struct {
	lits    []Literal
	headers []clauseHeader
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{
		lits:    make([]Literal, 0, 1024),
		headers: make([]clauseHeader, 0, 256),
	}
}

// Alloc appends a new clause and returns its Reference. The backing slice for
// lits is copied; the caller's slice may be reused afterwards.
func (a *Arena) Alloc(lits []Literal, redundant bool, lbd int) Reference {
	start := int32(len(a.lits))
	a.lits = append(a.lits, lits...)
	ref := Reference(len(a.headers))
	a.headers = append(a.headers, clauseHeader{
		start:     start,
		size:      int32(len(lits)),
		lbd:       int32(lbd),
		redundant: redundant,
		keep:      !redundant,
	})
	return ref
}

// Literals returns the literals of the clause at ref. The returned slice
// aliases the arena and is only valid until the next Compact.
func (a *Arena) Literals(ref Reference) []Literal {
	h := &a.headers[ref]
	return a.lits[h.start : h.start+h.size]
}

// Swap exchanges the literals at positions i and j within the clause at ref;
// used by the propagator to move a freshly-watched literal into slot 0/1.
func (a *Arena) Swap(ref Reference, i, j int) {
	lits := a.Literals(ref)
	lits[i], lits[j] = lits[j], lits[i]
}

func (a *Arena) LBD(ref Reference) int        { return int(a.headers[ref].lbd) }
func (a *Arena) SetLBD(ref Reference, lbd int) { a.headers[ref].lbd = int32(lbd) }
func (a *Arena) Size(ref Reference) int       { return int(a.headers[ref].size) }
func (a *Arena) Redundant(ref Reference) bool { return a.headers[ref].redundant }
func (a *Arena) Keep(ref Reference) bool      { return a.headers[ref].keep }
func (a *Arena) SetKeep(ref Reference, v bool) { a.headers[ref].keep = v }
func (a *Arena) Garbage(ref Reference) bool    { return a.headers[ref].garbage }
func (a *Arena) MarkGarbage(ref Reference)     { a.headers[ref].garbage = true }
func (a *Arena) Used(ref Reference) int        { return int(a.headers[ref].used) }
func (a *Arena) SetUsed(ref Reference, n int)  { a.headers[ref].used = int32(n) }
func (a *Arena) Bump(ref Reference)            { a.headers[ref].used++ }
func (a *Arena) DecayUsed(ref Reference) {
	if a.headers[ref].used > 0 {
		a.headers[ref].used--
	}
}

// Tier2Left, SetTier2Left and DecTier2Left manage the bounded-exemption
// budget for clauses with tier1 < glue <= tier2 (§4.5): such a clause is kept
// through a fixed number of reduction rounds before becoming an ordinary
// reduction candidate.
func (a *Arena) Tier2Left(ref Reference) int { return int(a.headers[ref].tier2Left) }
func (a *Arena) SetTier2Left(ref Reference, n int) {
	a.headers[ref].tier2Left = int32(n)
}
func (a *Arena) DecTier2Left(ref Reference) {
	if a.headers[ref].tier2Left > 0 {
		a.headers[ref].tier2Left--
	}
}

// NumClauses returns the number of live (non-compacted-away) references,
// including those marked garbage but not yet compacted.
func (a *Arena) NumClauses() int { return len(a.headers) }

// GarbageRatio is the fraction of literal cells belonging to garbage clauses;
// the reduction scheduler uses it to decide whether Compact is worthwhile.
func (a *Arena) GarbageRatio() float64 {
	if len(a.lits) == 0 {
		return 0
	}
	var garbage int
	for _, h := range a.headers {
		if h.garbage {
			garbage += int(h.size)
		}
	}
	return float64(garbage) / float64(len(a.lits))
}

// Compact rewrites the arena, dropping garbage clauses, and returns a mapping
// from every surviving old Reference to its new Reference. The caller
// (Solver) is responsible for rewriting every stored Reference: watch lists,
// trail reasons, and any pending import/export queues. References to
// removed clauses are omitted from the map.
func (a *Arena) Compact() map[Reference]Reference {
	newLits := make([]Literal, 0, len(a.lits))
	newHeaders := make([]clauseHeader, 0, len(a.headers))
	remap := make(map[Reference]Reference, len(a.headers))

	for i, h := range a.headers {
		if h.garbage {
			continue
		}
		newStart := int32(len(newLits))
		newLits = append(newLits, a.lits[h.start:h.start+h.size]...)
		newRef := Reference(len(newHeaders))
		h.start = newStart
		newHeaders = append(newHeaders, h)
		remap[Reference(i)] = newRef
	}

	a.lits = newLits
	a.headers = newHeaders
	return remap
}
