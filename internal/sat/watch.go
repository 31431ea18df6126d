package sat

// watcher is a tagged union over "binary clause watch" and "long clause
// watch", following the design note to express variants as a small struct
// rather than an interface: the hot path (Propagate) dispatches on isBinary
// without ever allocating or type-asserting. Grounded on gophersat's
// solver/watcher.go split between wlistBin and wlist, merged into one slice
// per literal since both kinds share the same scan order requirement from
// the propagator (§4.1: watchers dropped for replacement are moved, never
// rotated, so propagation order stays stable).
type watcher struct {
	isBinary  bool
	blocking  Literal   // binary: the companion literal. long: a literal known to
	                     // possibly satisfy the clause, checked before the arena.
	ref       Reference // valid only when !isBinary
	redundant bool      // binary clauses: true if induced by a learnt clause
}

func binaryWatcher(companion Literal, redundant bool) watcher {
	return watcher{isBinary: true, blocking: companion, ref: NoReference, redundant: redundant}
}

func longWatcher(ref Reference, blocking Literal) watcher {
	return watcher{isBinary: false, blocking: blocking, ref: ref}
}

// WatchLists holds, for each literal, the watchers that must be examined
// whenever that literal becomes false: literal L's list holds watchers for
// clauses containing L.
type WatchLists struct {
	lists [][]watcher
}

// NewWatchLists preallocates lists for nLits literals (2*nVars).
func NewWatchLists(nLits int) *WatchLists {
	return &WatchLists{lists: make([][]watcher, nLits)}
}

// Grow extends the lists to cover newNLits literals.
func (w *WatchLists) Grow(newNLits int) {
	for len(w.lists) < newNLits {
		w.lists = append(w.lists, nil)
	}
}

func (w *WatchLists) Add(onFalse Literal, wr watcher) {
	w.lists[onFalse] = append(w.lists[onFalse], wr)
}

func (w *WatchLists) List(onFalse Literal) []watcher {
	return w.lists[onFalse]
}

func (w *WatchLists) SetList(onFalse Literal, l []watcher) {
	w.lists[onFalse] = l
}

// RemoveLongWatcher deletes the first long watcher on literal lit whose
// reference equals ref. Used when singleton elimination (eliminate.go)
// removes a long clause outright.
func (w *WatchLists) RemoveLongWatcher(lit Literal, ref Reference) {
	lst := w.lists[lit]
	for i, wr := range lst {
		if !wr.isBinary && wr.ref == ref {
			lst[i] = lst[len(lst)-1]
			w.lists[lit] = lst[:len(lst)-1]
			return
		}
	}
}

// RewriteReferences applies a Reference remap (as produced by Arena.Compact)
// to every long watcher. Watchers referring to a removed clause are dropped.
func (w *WatchLists) RewriteReferences(remap map[Reference]Reference) {
	for lit, lst := range w.lists {
		out := lst[:0]
		for _, wr := range lst {
			if wr.isBinary {
				out = append(out, wr)
				continue
			}
			if newRef, ok := remap[wr.ref]; ok {
				wr.ref = newRef
				out = append(out, wr)
			}
		}
		w.lists[lit] = out
	}
}
