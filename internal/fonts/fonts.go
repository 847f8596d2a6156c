// Package fonts maps font size slots to pixel metrics and provides the two
// text backends the renderer draws with: a native bitmap-font backend
// (baseline-anchored, measures exactly) and an image-font backend
// (top-left-anchored, used for slots without a native font).
//
// The metrics table is configuration, not code: slots have been added over
// the life of the sign (4, then 6, now 7) and layout presets are keyed to
// slot combinations, so new slots must be additive.
package fonts

// Slot selects one of the configured font sizes.
type Slot int

// Slots of the default table, smallest to largest visual height.
const (
	Small   Slot = 1
	Medium  Slot = 2
	Large   Slot = 3
	XLarge  Slot = 4
	XXLarge Slot = 5
	Huge    Slot = 6
	Chunky  Slot = 7
)

// Fallback is the slot used when a command names a slot the table does
// not know.
const Fallback = Medium

// Metrics describes one font slot on a 32px-high panel.
type Metrics struct {
	Height  int // visual glyph-box height in pixels
	Ascent  int // baseline offset from the top of the glyph box
	Descent int // pixels below the baseline
	Spacing int // inter-line gap used by uniform multi-line layouts
	Nudge   int // upward start correction for slots that clip at the bottom
	Native  bool // slot is measured and drawn by the bitmap backend
}

// Table maps slots to metrics. Unknown slots resolve to the Fallback slot.
type Table map[Slot]Metrics

// DefaultTable returns the metrics for the current 7-slot configuration.
func DefaultTable() Table {
	return Table{
		Small:   {Height: 6, Ascent: 5, Descent: 1, Spacing: 1, Native: true},
		Medium:  {Height: 8, Ascent: 7, Descent: 1, Spacing: 1, Native: true},
		Large:   {Height: 9, Ascent: 8, Descent: 1, Spacing: 2, Native: true},
		XLarge:  {Height: 15, Ascent: 12, Descent: 3, Spacing: 2, Native: true},
		XXLarge: {Height: 20, Ascent: 16, Descent: 4, Spacing: 2, Native: false},
		// The huge slot clips at the bottom when stacked, hence the wider
		// spacing and the 1px upward nudge.
		Huge:   {Height: 24, Ascent: 19, Descent: 5, Spacing: 3, Nudge: 1, Native: true},
		Chunky: {Height: 11, Ascent: 10, Descent: 1, Spacing: 2, Native: true},
	}
}

// Get resolves a slot to its metrics, falling back to the Medium slot for
// unknown values.
func (t Table) Get(s Slot) Metrics {
	if m, ok := t[s]; ok {
		return m
	}
	return t[Fallback]
}

// Max returns the highest slot number in the table.
func (t Table) Max() Slot {
	max := Fallback
	for s := range t {
		if s > max {
			max = s
		}
	}
	return max
}

// Clamp forces n into the valid slot range [1, Max].
func (t Table) Clamp(n int) Slot {
	if n < 1 {
		return 1
	}
	if m := t.Max(); n > int(m) {
		return m
	}
	return Slot(n)
}
