package sat

import (
	"sync/atomic"
	"time"
)

// Status is the outcome of a Solve call, using the same numeric convention
// as the exit codes of real CDCL CLIs (§6): 10 for SAT, 20 for UNSAT, 0 for
// UNKNOWN.
type Status int

const (
	StatusUnknown Status = 0
	StatusSAT     Status = 10
	StatusUNSAT   Status = 20
)

func (s Status) String() string {
	switch s {
	case StatusSAT:
		return "SATISFIABLE"
	case StatusUNSAT:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Options configures one Solver instance. Grounded on the teacher's
// sat.Options/DefaultOptions (solver.go), extended with the initial
// heuristic, bandit toggle, resource limits, probing/elimination switches,
// and sharing threshold SPEC_FULL.md adds on top of the teacher's
// single-heuristic design. Restart and reduction parameters are fixed
// constants, not options.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool

	InitialHeuristic HeuristicKind
	EnableBandit     bool

	MaxConflicts int64
	MaxDecisions int64
	Timeout      time.Duration

	EnableProbe     bool
	ProbeBudget     int
	EnableEliminate bool

	ExportGlue int
}

// DefaultOptions mirrors the teacher's DefaultOptions values where the
// teacher covers the same knob (ClauseDecay, VariableDecay, PhaseSaving) and
// picks plain, documented defaults for everything SPEC_FULL.md adds.
var DefaultOptions = Options{
	ClauseDecay:      0.999,
	VariableDecay:    0.95,
	PhaseSaving:      true,
	InitialHeuristic: HeuristicVSIDS,
	EnableBandit:     false,
	EnableProbe:      true,
	ProbeBudget:      64,
	EnableEliminate:  true,
	ExportGlue:       4,
}

// Solver is a single, strictly single-threaded CDCL instance (§5): every
// method below must only be called from one goroutine at a time. Concurrency
// across instances is the portfolio driver's job (internal/portfolio), which
// only ever touches a Solver through SetSharing's callbacks and Terminate.
type Solver struct {
	opts Options

	nVars   int
	active  []bool
	assigns []LBool

	arena   *Arena
	watches *WatchLists
	trail   *Trail
	seen    ResetSet

	vsids     *VarOrder
	chb       *chbOrder
	heuristic HeuristicKind
	bandit    *bandit

	restart *restartScheduler
	reducer *reduceScheduler
	rephase *rephaseScheduler

	targetAssignedCount int
	bestAssignedCount   int

	extender      extender
	importTable   []importRecord
	extendedValue []LBool
	extended      bool

	shareIssuer     any
	exportClauseFn  ExportClauseFunc
	importUnitFn    ImportUnitFunc
	importClauseFn  ImportClauseFunc
	exportGlueLimit int

	proofLearn  func([]int)
	proofDelete func([]int)

	numConstraints   int
	numBinaryLearnts int
	numLongLearnts   int
	numPropagations  int64
	conflicts        int64
	decisions        int64
	restarts         int64

	status       Status
	inconsistent bool
	terminate    int32
	startTime    time.Time

	stats *StatsSink

	// Models accumulates every satisfying assignment found across
	// successive Solve calls, following the teacher's Solver.Models field
	// (solver.go) and its use in yass_test.go's enumerate-all-models loop.
	Models [][]bool
}

// NewSolver returns an empty solver (no variables, no clauses) configured
// with opts.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:            opts,
		arena:           NewArena(),
		watches:         NewWatchLists(0),
		trail:           NewTrail(0),
		restart:         newRestartScheduler(),
		reducer:         newReduceScheduler(),
		rephase:         newRephaseScheduler(),
		heuristic:       opts.InitialHeuristic,
		exportGlueLimit: opts.ExportGlue,
	}
	s.vsids = newVarOrder(s, 0, opts.VariableDecay, opts.PhaseSaving)
	s.chb = newCHBOrder(s, 0, opts.PhaseSaving)
	s.bandit = newBandit(opts.EnableBandit, opts.InitialHeuristic)
	return s
}

// NewDefaultSolver returns a solver configured with DefaultOptions, matching
// the teacher's sat.NewDefaultSolver convenience constructor.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// SetStats attaches a progress sink; pass nil to disable reporting.
func (s *Solver) SetStats(sink *StatsSink) { s.stats = sink }

// SetProofHooks registers DRAT-style learn/delete callbacks (§1, §11): learn
// fires once per clause learned by conflict analysis and once per unit
// imported from a peer (in external literal numbering); imported clauses are
// not reported. Delete fires once per clause reclaimed by reduction. Either
// may be nil.
func (s *Solver) SetProofHooks(learn, del func([]int)) {
	s.proofLearn = learn
	s.proofDelete = del
}

// SetConflictLimit overrides the conflict budget set at construction time
// (§6 "Control"). A limit of 0 disables the check.
func (s *Solver) SetConflictLimit(n int64) { s.opts.MaxConflicts = n }

// SetDecisionLimit overrides the decision budget set at construction time
// (§6 "Control"). A limit of 0 disables the check.
func (s *Solver) SetDecisionLimit(n int64) { s.opts.MaxDecisions = n }

// SetHeuristic switches the branching heuristic driving decisions right now
// (§6 "Heuristic control"), independent of the bandit: a caller using the
// bandit can still call this to seed which arm starts active.
func (s *Solver) SetHeuristic(useVSIDS bool) {
	if useVSIDS {
		s.heuristic = HeuristicVSIDS
	} else {
		s.heuristic = HeuristicCHB
	}
}

// SetPolarity forces the saved decision phase for an external variable,
// overriding phase-saving and any rephase snapshot recorded so far (§6
// "Heuristic control"). polarity must be +1 (prefer true) or -1 (prefer
// false); extLit identifies the variable by absolute value, matching the
// other external-facing entry points in this file (e.g. Value).
func (s *Solver) SetPolarity(extLit int, polarity int) {
	if polarity != 1 && polarity != -1 {
		contractViolation("SetPolarity", "polarity must be +1 or -1, got %d", polarity)
	}
	v := abs(extLit) - 1
	if v < 0 || v >= s.nVars {
		contractViolation("SetPolarity", "variable for literal %d was never added", extLit)
	}
	val := True
	if polarity < 0 {
		val = False
	}
	s.vsids.SetPhase(v, val)
	s.chb.SetPhase(v, val)
}

func (s *Solver) PositiveLiteral(v int) Literal { return Literal(2 * v) }
func (s *Solver) NegativeLiteral(v int) Literal { return Literal(2*v + 1) }

func (s *Solver) VarValue(v int) LBool { return s.assigns[v] }

func (s *Solver) LitValue(l Literal) LBool {
	val := s.assigns[l.VarID()]
	if !l.IsPositive() {
		val = val.Opposite()
	}
	return val
}

func (s *Solver) setAssign(lit Literal, val LBool) {
	v := lit.VarID()
	if lit.IsPositive() {
		s.assigns[v] = val
	} else {
		s.assigns[v] = val.Opposite()
	}
}

func (s *Solver) NumVariables() int   { return s.nVars }
func (s *Solver) NumConstraints() int { return s.numConstraints }
func (s *Solver) NumLearnts() int     { return s.numBinaryLearnts + s.numLongLearnts }
func (s *Solver) NumAssigns() int     { return s.trail.Len() }
func (s *Solver) Active(v int) bool   { return s.active[v] }
func (s *Solver) deactivate(v int)    { s.active[v] = false }

func (s *Solver) Status() Status { return s.status }

// AddVariable activates a new variable and returns its internal id. Internal
// ids and external (DIMACS) variable numbers coincide 1:1 (external = id+1),
// so the Import table is populated eagerly rather than lazily.
func (s *Solver) AddVariable() int {
	if s.inconsistent {
		contractViolation("AddVariable", "solver is already inconsistent")
	}
	v := s.nVars
	s.nVars++
	s.active = append(s.active, true)
	s.assigns = append(s.assigns, Unknown)
	s.seen.Expand()
	s.trail.Grow(s.nVars)
	s.watches.Grow(2 * s.nVars)
	s.vsids.NewVar()
	s.chb.NewVar()
	s.importTable = append(s.importTable, importRecord{lit: s.PositiveLiteral(v), imported: true})
	return v
}

// Reserve preallocates variables up to maxVar (§6).
func (s *Solver) Reserve(maxVar int) {
	for s.nVars < maxVar {
		s.AddVariable()
	}
}

// AddClause registers a problem clause (§6 "add"). It always returns nil;
// the error result only satisfies collaborators (e.g. the dimacs.Builder
// interface) that expect one. A clause that makes the instance UNSAT is not
// itself an error; adding to an already-inconsistent solver is a contract
// violation.
func (s *Solver) AddClause(lits []Literal) error {
	if s.inconsistent {
		contractViolation("AddClause", "solver is already inconsistent (UNSAT)")
	}
	s.addOriginalClause(lits)
	return nil
}

// Terminate requests the search loop return UNKNOWN at its next check point
// (§5). Safe to call from another goroutine.
func (s *Solver) Terminate() {
	atomic.StoreInt32(&s.terminate, 1)
}

func (s *Solver) terminateRequested() bool {
	return atomic.LoadInt32(&s.terminate) != 0
}

// Solve runs the search loop to completion, a limit, or termination (§4.4).
// A non-empty assumptions slice is rejected outright (§9 open question
// resolution): this engine does not support incremental solving under
// assumptions; a portfolio cube must be applied as level-0 unit clauses
// before the first Solve call instead.
func (s *Solver) Solve(assumptions []int) Status {
	if len(assumptions) > 0 {
		contractViolation("Solve", "non-empty assumptions are not supported")
	}
	if s.inconsistent {
		s.status = StatusUNSAT
		return s.status
	}
	s.startTime = time.Now()
	atomic.StoreInt32(&s.terminate, 0)
	s.status = s.search()
	if s.stats != nil {
		s.stats.result(s.status, time.Since(s.startTime))
	}
	return s.status
}

func (s *Solver) search() Status {
	if s.stats != nil {
		s.stats.header()
	}
	for {
		if s.trail.Level() == 0 {
			s.importUnits()
			if s.importClauses() {
				s.inconsistent = true
				return StatusUNSAT
			}
		}

		if c := s.Propagate(); c.found {
			if s.trail.Level() == 0 {
				s.inconsistent = true
				return StatusUNSAT
			}
			s.handleConflict(c)
			continue
		}

		s.trackPhaseRecords()

		if s.allAssigned() {
			s.saveModel()
			s.backtrackToRoot()
			return StatusSAT
		}

		if s.terminateRequested() {
			return StatusUnknown
		}
		if s.opts.MaxConflicts > 0 && s.conflicts >= s.opts.MaxConflicts {
			return StatusUnknown
		}
		if s.opts.Timeout > 0 && time.Since(s.startTime) > s.opts.Timeout {
			return StatusUnknown
		}

		if s.reducer.ShouldReduce() {
			s.reduce()
			if s.trail.Level() == 0 {
				if s.runLevelZeroSimplifiers() {
					return StatusUNSAT
				}
			}
		}

		if s.restart.ShouldRestart() {
			s.doRestart()
		}
		if s.restart.ShouldSwitchMode() {
			s.restart.DidSwitchMode()
		}

		if s.rephase.ShouldRephase() {
			s.doRephase()
		}

		if s.opts.MaxDecisions > 0 && s.decisions >= s.opts.MaxDecisions {
			return StatusUnknown
		}

		s.decide()
	}
}

func (s *Solver) runLevelZeroSimplifiers() bool {
	if s.opts.EnableProbe {
		if s.probeFailedLiterals(s.opts.ProbeBudget) {
			s.inconsistent = true
			return true
		}
	}
	if s.opts.EnableEliminate {
		s.eliminateSingletons()
	}
	return false
}

func (s *Solver) handleConflict(c conflict) {
	res := s.analyze(c)
	s.decayUnbumpedAssigned()
	s.restart.Conflict(res.lbd)
	s.rephase.Conflict()
	s.reducer.Conflict()
	s.conflicts++
	s.targetAssignedCount = 0

	undone := s.trail.Backtrack(res.backjumpLevel)
	s.undoAssigns(undone)

	reason := s.registerLearnt(res.learnt, res.lbd)
	assertLit := res.learnt[0]
	s.trail.Push(assertLit, reason)
	s.setAssign(assertLit, True)

	if s.proofLearn != nil {
		s.proofLearn(s.toExternal(res.learnt))
	}
	s.maybeExport(res.learnt, res.lbd)

	s.vsids.Decay()
	s.chb.Decay()

	if s.stats != nil && s.conflicts%5000 == 0 {
		s.stats.row(int(s.conflicts), int(s.restarts), s.NumLearnts(), 0, s.heuristic.String())
	}
}

// decayUnbumpedAssigned applies CHB's decay-only update (zero reward) to
// every currently assigned variable that bumpVariable did not touch while
// analyzing the conflict just handled, matching §4.6's "non-participants
// receive a smaller decay" rule. Must run right after analyze: the bumped
// variables are exactly those analyze left in s.seen.
func (s *Solver) decayUnbumpedAssigned() {
	for i := 0; i < s.trail.Len(); i++ {
		v := s.trail.At(i).VarID()
		if !s.seen.Contains(v) {
			s.chb.decayOne(v)
		}
	}
}

// doRephase applies the phase override selected by the rephase scheduler to
// both heuristics' saved-phase arrays (§4.4 step 10, §4.6 "Phase selection").
func (s *Solver) doRephase() {
	scheme := s.rephase.DidRephase()
	s.vsids.Rephase(scheme)
	s.chb.Rephase(scheme)
}

// trackPhaseRecords updates the target phase (the deepest assignment reached
// since the last conflict) and the best phase (the deepest assignment ever
// reached) whenever the trail sets a new record, so a later rephase has a
// snapshot to restore. Must run only when propagation left no conflict.
func (s *Solver) trackPhaseRecords() {
	assigned := s.trail.Len()
	if assigned > s.targetAssignedCount {
		s.targetAssignedCount = assigned
		s.vsids.RecordTarget()
		s.chb.RecordTarget()
	}
	if assigned > s.bestAssignedCount {
		s.bestAssignedCount = assigned
		s.vsids.RecordBest()
		s.chb.RecordBest()
	}
}

func (s *Solver) decide() {
	var lit Literal
	if s.heuristic == HeuristicVSIDS {
		lit = s.vsids.Select()
	} else {
		lit = s.chb.Select()
	}
	s.trail.NewDecisionLevel()
	s.trail.Push(lit, decisionReason)
	s.setAssign(lit, True)
	s.decisions++
}

func (s *Solver) doRestart() {
	if s.opts.EnableBandit {
		reward := 1 - 1/(1+float64(s.restart.conflictsSinceRestart))
		s.bandit.Update(s.heuristic, reward)
		s.heuristic = s.bandit.NextArm()
	}
	s.backtrackToRoot()
	s.restart.DidRestart()
	s.restarts++
}

func (s *Solver) backtrackToRoot() {
	undone := s.trail.Backtrack(0)
	s.undoAssigns(undone)
}

func (s *Solver) undoAssigns(lits []Literal) {
	for _, l := range lits {
		v := l.VarID()
		s.vsids.Restore(v)
		s.chb.Restore(v)
		s.assigns[v] = Unknown
	}
}

func (s *Solver) allAssigned() bool {
	for v := 0; v < s.nVars; v++ {
		if s.active[v] && s.VarValue(v) == Unknown {
			return false
		}
	}
	return true
}

func (s *Solver) saveModel() {
	s.extended = false
	s.ensureExtended()
	model := make([]bool, s.nVars)
	for v := 0; v < s.nVars; v++ {
		if s.importTable[v].eliminated {
			model[v] = s.extendedValue[v] == True
		} else {
			model[v] = s.VarValue(v) == True
		}
	}
	s.Models = append(s.Models, model)
}

// bumpVariable rewards varID's participation in the just-analyzed conflict
// under both heuristics, regardless of which one is currently driving
// decisions: a heuristic that's about to be selected by the bandit still
// needs up-to-date activity for its first decision to be informed.
func (s *Solver) bumpVariable(v int) {
	s.vsids.Bump(v)
	s.chb.Bump(v, s.conflicts)
}

func (s *Solver) toExternal(lits []Literal) []int {
	out := make([]int, len(lits))
	for i, l := range lits {
		out[i] = s.externalLiteral(l)
	}
	return out
}
