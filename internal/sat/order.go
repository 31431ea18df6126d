package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// VarOrder is the VSIDS (Variable State Independent Decaying Sum) branching
// heuristic. Directly grounded on the teacher's ordering.go VarOrder, kept
// as its own heap per the design note that VSIDS and CHB must stay separate
// structures rather than one polymorphic heuristic, arbitrated by the small
// HeuristicKind enum on Solver instead of folded into this type.
type VarOrder struct {
	s           *Solver
	activities  []float64
	inc         float64
	decay       float64
	phase       []LBool // saved: last polarity this variable was assigned
	target      []LBool // deepest assignment reached since the last conflict
	best        []LBool // deepest assignment ever reached
	phaseSaving bool
	heap        *yagh.IntMap[float64]
}

func newVarOrder(s *Solver, nVar int, decay float64, phaseSaving bool) *VarOrder {
	vo := &VarOrder{
		s:           s,
		activities:  make([]float64, nVar),
		inc:         1.0,
		decay:       decay,
		phase:       make([]LBool, nVar),
		target:      make([]LBool, nVar),
		best:        make([]LBool, nVar),
		phaseSaving: phaseSaving,
		heap:        yagh.New[float64](nVar),
	}
	for v := 0; v < nVar; v++ {
		vo.heap.Put(v, 0)
	}
	return vo
}

// NewVar activates a new variable at zero activity.
func (vo *VarOrder) NewVar() {
	vo.activities = append(vo.activities, 0)
	vo.phase = append(vo.phase, Unknown)
	vo.target = append(vo.target, Unknown)
	vo.best = append(vo.best, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(len(vo.activities)-1, 0)
}

// SetPhase overrides the saved phase directly, bypassing phase-saving and
// any rephase snapshot (used by Solver.SetPolarity).
func (vo *VarOrder) SetPhase(varID int, val LBool) { vo.phase[varID] = val }

// RecordTarget snapshots every currently assigned variable's value as its
// target phase, called whenever the trail sets a new record since the last
// conflict (§4.6 "Phase selection").
func (vo *VarOrder) RecordTarget() {
	for v := range vo.target {
		if val := vo.s.VarValue(v); val != Unknown {
			vo.target[v] = val
		}
	}
}

// RecordBest is RecordTarget's counterpart for the all-time deepest
// assignment reached.
func (vo *VarOrder) RecordBest() {
	for v := range vo.best {
		if val := vo.s.VarValue(v); val != Unknown {
			vo.best[v] = val
		}
	}
}

// Rephase overrides the saved phase array per the chosen scheme. Variables
// with no recorded target/best value yet are left at their current saved
// phase.
func (vo *VarOrder) Rephase(scheme rephaseScheme) {
	switch scheme {
	case rephaseBest:
		for v := range vo.phase {
			if vo.best[v] != Unknown {
				vo.phase[v] = vo.best[v]
			}
		}
	case rephaseTarget:
		for v := range vo.phase {
			if vo.target[v] != Unknown {
				vo.phase[v] = vo.target[v]
			}
		}
	case rephaseInverted:
		for v := range vo.phase {
			vo.phase[v] = vo.phase[v].Opposite()
		}
	case rephaseSaved:
		// no override: keep whatever phase-saving has already recorded.
	}
}

// Bump increases a variable's activity on conflict-analysis participation
// and rescales every activity if it grows too large, matching the teacher's
// BumpVarActivity/rescale behavior.
func (vo *VarOrder) Bump(varID int) {
	vo.activities[varID] += vo.inc
	if vo.activities[varID] > 1e100 {
		for i := range vo.activities {
			vo.activities[i] *= 1e-100
		}
		vo.inc *= 1e-100
	}
	if vo.heap.Contains(varID) {
		vo.heap.Put(varID, -vo.activities[varID])
	}
}

// Decay grows the bump increment once per conflict, which is equivalent to
// decaying every activity relative to it (the teacher's DecayVarActivity).
func (vo *VarOrder) Decay() {
	vo.inc /= vo.decay
}

// Restore reinserts a variable into the heap after it becomes unassigned
// again (on backtrack), saving its last phase if phase saving is enabled.
func (vo *VarOrder) Restore(varID int) {
	if vo.phaseSaving {
		vo.phase[varID] = vo.s.VarValue(varID)
	}
	vo.heap.Put(varID, -vo.activities[varID])
}

// Select pops the highest-activity unassigned variable and returns the
// decision literal for it, applying its saved (or default negative) phase.
func (vo *VarOrder) Select() Literal {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			log.Fatalln("sat: decision requested with no unassigned variables left")
		}
		if vo.s.VarValue(next.Elem) != Unknown || !vo.s.Active(next.Elem) {
			continue
		}
		if vo.phase[next.Elem] == True {
			return vo.s.PositiveLiteral(next.Elem)
		}
		return vo.s.NegativeLiteral(next.Elem)
	}
}
