package sat

import "testing"

func TestResetSetAddContainsClear(t *testing.T) {
	rs := &ResetSet{}
	for i := 0; i < 4; i++ {
		rs.Expand()
	}

	rs.Add(1)
	rs.Add(3)
	if !rs.Contains(1) || !rs.Contains(3) {
		t.Fatalf("added elements not reported as contained")
	}
	if rs.Contains(0) || rs.Contains(2) {
		t.Fatalf("untouched elements reported as contained")
	}

	rs.Clear()
	if rs.Contains(1) || rs.Contains(3) {
		t.Errorf("Clear() did not remove previously added elements")
	}
}

func TestResetSetClearIsReusableAcrossGenerations(t *testing.T) {
	rs := &ResetSet{}
	rs.Expand()

	rs.Add(0)
	rs.Clear()
	if rs.Contains(0) {
		t.Fatalf("element should not persist across Clear()")
	}
	rs.Add(0)
	if !rs.Contains(0) {
		t.Errorf("element added in the new generation should be contained")
	}
}
