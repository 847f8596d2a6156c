package daynight

import (
	"testing"
	"time"
)

func TestInWindow(t *testing.T) {
	tcs := []struct {
		hour, start, end int
		want             bool
	}{
		{23, 22, 7, true},  // crossing midnight, late side
		{3, 22, 7, true},   // crossing midnight, early side
		{7, 22, 7, false},  // end is exclusive
		{12, 22, 7, false}, // daytime
		{22, 22, 7, true},  // start is inclusive
		{10, 9, 17, true},  // plain window
		{8, 9, 17, false},
		{17, 9, 17, false},
		{5, 6, 6, false}, // empty window never matches
	}
	for _, tc := range tcs {
		if got := inWindow(tc.hour, tc.start, tc.end); got != tc.want {
			t.Errorf("inWindow(%d, %d, %d)=%v; want %v", tc.hour, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestComputeForcedWindowBeatsSun(t *testing.T) {
	// Noon inside a 0-24 style window: the window alone forces night.
	tr := New(40.0, -74.0, 11, 13)
	tr.now = func() time.Time {
		return time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	}

	if !tr.Update() {
		t.Fatal("Update should report a change from the initial day state")
	}
	if !tr.IsNight() {
		t.Error("noon inside the forced window should be night")
	}
}

func TestComputeMidnightIsNight(t *testing.T) {
	// Midnight UTC over New York is well after sunset even with no
	// forced window covering it.
	tr := New(40.0, -74.0, 2, 3)
	tr.now = func() time.Time {
		return time.Date(2024, 6, 21, 4, 30, 0, 0, time.UTC)
	}

	tr.Update()
	if !tr.IsNight() {
		t.Error("pre-dawn hours should be night")
	}
}

func TestSetNightOverrides(t *testing.T) {
	tr := New(40.0, -74.0, 22, 7)

	tr.SetNight(true)
	if !tr.IsNight() {
		t.Error("SetNight(true) not reflected")
	}
	tr.SetNight(false)
	if tr.IsNight() {
		t.Error("SetNight(false) not reflected")
	}
}
