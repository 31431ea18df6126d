package sat

import "testing"

func TestWatchListsAddAndList(t *testing.T) {
	w := NewWatchLists(4)
	w.Add(Literal(1), binaryWatcher(Literal(2), false))
	w.Add(Literal(1), longWatcher(Reference(5), Literal(3)))

	lst := w.List(Literal(1))
	if len(lst) != 2 {
		t.Fatalf("List(1) has %d entries, want 2", len(lst))
	}
	if !lst[0].isBinary || lst[0].blocking != Literal(2) {
		t.Errorf("first watcher = %+v, want a binary watcher on literal 2", lst[0])
	}
	if lst[1].isBinary || lst[1].ref != Reference(5) {
		t.Errorf("second watcher = %+v, want a long watcher on ref 5", lst[1])
	}
}

func TestWatchListsGrow(t *testing.T) {
	w := NewWatchLists(2)
	w.Grow(6)
	if len(w.lists) != 6 {
		t.Fatalf("len(lists) after Grow(6) = %d, want 6", len(w.lists))
	}
	w.Add(Literal(5), binaryWatcher(Literal(4), false))
	if len(w.List(Literal(5))) != 1 {
		t.Errorf("Add() after Grow() did not land in the right slot")
	}
}

func TestWatchListsRemoveLongWatcher(t *testing.T) {
	w := NewWatchLists(2)
	w.Add(Literal(0), longWatcher(Reference(1), Literal(2)))
	w.Add(Literal(0), longWatcher(Reference(2), Literal(3)))

	w.RemoveLongWatcher(Literal(0), Reference(1))
	lst := w.List(Literal(0))
	if len(lst) != 1 {
		t.Fatalf("List(0) has %d entries after removal, want 1", len(lst))
	}
	if lst[0].ref != Reference(2) {
		t.Errorf("remaining watcher ref = %d, want 2", lst[0].ref)
	}
}

func TestWatchListsRewriteReferencesDropsUnmappedLongWatchers(t *testing.T) {
	w := NewWatchLists(2)
	w.Add(Literal(0), binaryWatcher(Literal(1), false))
	w.Add(Literal(0), longWatcher(Reference(1), Literal(2)))
	w.Add(Literal(0), longWatcher(Reference(2), Literal(3)))

	w.RewriteReferences(map[Reference]Reference{1: 0})

	lst := w.List(Literal(0))
	if len(lst) != 2 {
		t.Fatalf("List(0) after rewrite has %d entries, want 2 (binary kept, ref 1 remapped, ref 2 dropped)", len(lst))
	}
	sawBinary, sawRemapped := false, false
	for _, wr := range lst {
		if wr.isBinary {
			sawBinary = true
		} else if wr.ref == Reference(0) {
			sawRemapped = true
		} else if wr.ref == Reference(2) {
			t.Errorf("watcher for an unmapped reference (2) should have been dropped")
		}
	}
	if !sawBinary || !sawRemapped {
		t.Errorf("rewrite did not preserve the expected watchers: %+v", lst)
	}
}
