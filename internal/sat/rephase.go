package sat

// rephaseScheme selects which saved-phase override to apply when rephasing
// fires (§4.6 "Phase selection": saved, inverted, best, or target).
type rephaseScheme int

const (
	rephaseSaved rephaseScheme = iota
	rephaseBest
	rephaseInverted
	rephaseTarget
)

// rephaseSchedule is the fixed cycle of overrides applied on successive
// rephase events. kissat_rephase's own walk through its scheme table
// (search.cc:331 calls it, but the table itself was not part of the
// retrieved excerpt) is reimplemented here as a short round-robin covering
// the same four kinds §4.6 names.
var rephaseSchedule = [...]rephaseScheme{rephaseBest, rephaseInverted, rephaseTarget, rephaseSaved}

// rephaseScheduler decides when rephasing fires, mirroring reduceScheduler's
// growing-interval shape (§4.4 step 10).
type rephaseScheduler struct {
	conflictsSinceRephase int64
	nextRephase           int64
	growth                int64
	cycle                 int
}

func newRephaseScheduler() *rephaseScheduler {
	return &rephaseScheduler{nextRephase: 1000, growth: 500}
}

func (r *rephaseScheduler) Conflict() { r.conflictsSinceRephase++ }

func (r *rephaseScheduler) ShouldRephase() bool {
	return r.conflictsSinceRephase >= r.nextRephase
}

// DidRephase advances the schedule and returns the scheme the caller should
// apply for the rephase that just fired.
func (r *rephaseScheduler) DidRephase() rephaseScheme {
	scheme := rephaseSchedule[r.cycle%len(rephaseSchedule)]
	r.cycle++
	r.conflictsSinceRephase = 0
	r.nextRephase += r.growth
	return scheme
}
