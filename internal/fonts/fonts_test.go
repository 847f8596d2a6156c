package fonts

import "testing"

func TestGetUnknownSlotFallsBack(t *testing.T) {
	table := DefaultTable()
	want := table[Fallback]

	if got := table.Get(Slot(99)); got != want {
		t.Errorf("Get(99)=%+v; want fallback metrics %+v", got, want)
	}
	if got := table.Get(Slot(0)); got != want {
		t.Errorf("Get(0)=%+v; want fallback metrics %+v", got, want)
	}
}

func TestMax(t *testing.T) {
	if got := DefaultTable().Max(); got != Chunky {
		t.Errorf("Max()=%d; want %d", got, Chunky)
	}
}

func TestClamp(t *testing.T) {
	table := DefaultTable()
	tcs := []struct {
		in   int
		want Slot
	}{
		{-3, 1},
		{0, 1},
		{1, Small},
		{4, XLarge},
		{7, Chunky},
		{8, Chunky},
		{100, Chunky},
	}
	for _, tc := range tcs {
		if got := table.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%d)=%d; want %d", tc.in, got, tc.want)
		}
	}
}

func TestOnlyXXLargeIsNonNative(t *testing.T) {
	for slot, m := range DefaultTable() {
		if (slot == XXLarge) == m.Native {
			t.Errorf("slot %d: Native=%v", slot, m.Native)
		}
	}
}
