package portfolio

import (
	"sync"

	"github.com/solverkit/cdcl/internal/sat"
)

// sharedClause is an exported clause in external (DIMACS-signed) literals,
// queued for every worker but the one that produced it.
type sharedClause struct {
	lbd  int
	lits []int
}

// hub is the in-process analogue of painless's shared clause database: one
// inbox per worker instead of one global buffer, so a slow worker can't
// stall a fast one's exports. Built on the teacher's Queue[T] ring buffer
// (queue.go) rather than a channel, since exports must never block the
// solver goroutine that produced them.
type hub struct {
	mu     []sync.Mutex
	units  []*sat.Queue[int]
	claus  []*sat.Queue[sharedClause]
	cap    int
	nSkip  int
	muSkip sync.Mutex
}

func newHub(workers, capacity int) *hub {
	h := &hub{
		mu:    make([]sync.Mutex, workers),
		units: make([]*sat.Queue[int], workers),
		claus: make([]*sat.Queue[sharedClause], workers),
		cap:   capacity,
	}
	for i := 0; i < workers; i++ {
		h.units[i] = sat.NewQueue[int](capacity)
		h.claus[i] = sat.NewQueue[sharedClause](capacity)
	}
	return h
}

// exportClause fans a learned clause out to every other worker's inbox. A
// single literal is routed to the unit queue so importUnit's int-returning
// contract doesn't need to special-case size-1 clauses.
func (h *hub) exportClause(issuer any, lbd int, extLits []int) {
	from := issuer.(int)
	if len(extLits) == 1 {
		h.broadcastUnit(from, extLits[0])
		return
	}
	litsCopy := append([]int(nil), extLits...)
	h.broadcastClause(from, sharedClause{lbd: lbd, lits: litsCopy})
}

func (h *hub) broadcastUnit(from, lit int) {
	for i := range h.units {
		if i == from {
			continue
		}
		h.mu[i].Lock()
		if h.units[i].Size() < h.cap {
			h.units[i].Push(lit)
		} else {
			h.dropped()
		}
		h.mu[i].Unlock()
	}
}

func (h *hub) broadcastClause(from int, c sharedClause) {
	for i := range h.claus {
		if i == from {
			continue
		}
		h.mu[i].Lock()
		if h.claus[i].Size() < h.cap {
			h.claus[i].Push(c)
		} else {
			h.dropped()
		}
		h.mu[i].Unlock()
	}
}

func (h *hub) dropped() {
	h.muSkip.Lock()
	h.nSkip++
	h.muSkip.Unlock()
}

func (h *hub) importUnit(issuer any) int {
	id := issuer.(int)
	h.mu[id].Lock()
	defer h.mu[id].Unlock()
	if h.units[id].IsEmpty() {
		return 0
	}
	return h.units[id].Pop()
}

func (h *hub) importClause(issuer any) (int, []int, bool) {
	id := issuer.(int)
	h.mu[id].Lock()
	defer h.mu[id].Unlock()
	if h.claus[id].IsEmpty() {
		return 0, nil, false
	}
	c := h.claus[id].Pop()
	return c.lbd, c.lits, true
}
