package sat

// restartMode distinguishes the two search modes of §4.4: focused mode
// restarts aggressively on an LBD quality signal, stable mode restarts
// rarely on a fixed combinatorial schedule. The mode does not affect phases.
type restartMode uint8

const (
	modeFocused restartMode = iota
	modeStable
)

// ema is a simple exponential moving average, the same shape as the
// teacher's sat/avg.go EMA (that package is retired at the trim pass; this
// reimplements the same idea directly inside the scheduler it serves).
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema { return ema{decay: decay} }

func (e *ema) add(x float64) {
	if !e.init {
		e.value = x
		e.init = true
		return
	}
	e.value = e.decay*e.value + (1-e.decay)*x
}

func (e *ema) val() float64 { return e.value }

// reluctant implements Knuth's reluctant-doubling algorithm for generating
// the Luby sequence in O(1) amortized per step, used by kissat's stable-mode
// restart schedule.
type reluctant struct {
	u, v int64
}

func newReluctant() *reluctant { return &reluctant{u: 1, v: 1} }

func (r *reluctant) next() int64 {
	result := r.v
	if r.u&(-r.u) == r.v {
		r.u++
		r.v = 1
	} else {
		r.v *= 2
	}
	return result
}

// restartScheduler decides when the search loop should restart, tracking
// both modes simultaneously so a mode switch does not lose state. Grounded
// on gophersat's solver/lbd.go (lbdStats: recent-vs-overall average trigger)
// for the focused-mode signal.
type restartScheduler struct {
	mode restartMode

	// focused mode: glucose-style recent/global LBD averages.
	recentLBD  ema
	globalLBD  ema
	conflictsSinceRestart int64
	minConflictsBetween   int64

	// stable mode: reluctant doubling, measured in conflicts since restart.
	reluctant    *reluctant
	stableUnit   int64
	nextInterval int64

	totalConflicts   int64 // conflicts seen across the whole search, any mode
	stableBoundary   int64 // conflict count at which to consider a mode switch
	modeSwitchGrowth int64 // growth applied to stableBoundary after each switch
}

func newRestartScheduler() *restartScheduler {
	s := &restartScheduler{
		recentLBD:           newEMA(1 - 1.0/50),
		globalLBD:           newEMA(1 - 1.0/10000),
		minConflictsBetween: 50,
		reluctant:           newReluctant(),
		stableUnit:          100,
		stableBoundary:      5000,
		modeSwitchGrowth:    5000,
	}
	s.nextInterval = s.reluctant.next() * s.stableUnit
	return s
}

// Conflict records a learned clause's glue and advances the bookkeeping. It
// must be called once per conflict regardless of mode so both EMAs and the
// reluctant sequence stay warm across mode switches.
func (s *restartScheduler) Conflict(lbd int) {
	s.recentLBD.add(float64(lbd))
	s.globalLBD.add(float64(lbd))
	s.conflictsSinceRestart++
	s.totalConflicts++
}

// ShouldSwitchMode reports whether the current conflict milestone calls for
// toggling between focused and stable search (§4.4: "Mode transitions happen
// on conflict milestones"). kissat's own switch_to_stable/switch_to_focus
// scheduling was not part of the retrieved excerpt, so this reimplements the
// idea as a simple growing boundary rather than following a specific ground
// truth.
func (s *restartScheduler) ShouldSwitchMode() bool {
	return s.totalConflicts >= s.stableBoundary
}

// DidSwitchMode toggles the mode and grows the next boundary.
func (s *restartScheduler) DidSwitchMode() {
	if s.mode == modeFocused {
		s.mode = modeStable
	} else {
		s.mode = modeFocused
	}
	s.stableBoundary += s.modeSwitchGrowth
}

// ShouldRestart reports whether the search loop should restart now.
func (s *restartScheduler) ShouldRestart() bool {
	switch s.mode {
	case modeFocused:
		if s.conflictsSinceRestart < s.minConflictsBetween {
			return false
		}
		// Glucose-style: restart once recent conflict quality is
		// meaningfully worse than the long-run average.
		return s.recentLBD.val()*0.8 > s.globalLBD.val()
	default: // modeStable
		return s.conflictsSinceRestart >= s.nextInterval
	}
}

// DidRestart resets the per-epoch counters after a restart has been carried
// out by the caller (Solver.restart).
func (s *restartScheduler) DidRestart() {
	s.conflictsSinceRestart = 0
	if s.mode == modeStable {
		s.nextInterval = s.reluctant.next() * s.stableUnit
	}
}

// SetMode switches between focused and stable restart policies.
func (s *restartScheduler) SetMode(m restartMode) {
	s.mode = m
}
