// Package layout computes vertical pixel positions for parsed text lines.
//
// Horizontal placement is not decided here: the renderer measures each
// line with the active font backend and centers it. Every Y emitted is a
// top-left coordinate; backends that draw baseline-relative convert with
// the slot's ascent.
package layout

import (
	"matrixsign/internal/fonts"
	"matrixsign/internal/markup"
)

// PositionedLine is a parsed line plus its computed top-left Y.
type PositionedLine struct {
	markup.Line
	Y int
}

// pattern is a hand-tuned Y table for a known mixed-size slot combination.
// The literal values encode manual visual balancing against glyph kerning
// and clipping and must not be recomputed.
type pattern struct {
	slots []fonts.Slot
	ys    []int
}

var namedPatterns = []pattern{
	{slots: []fonts.Slot{4, 3, 2}, ys: []int{1, 17, 26}}, // xlarge/large/medium (ON-CALL)
	{slots: []fonts.Slot{6, 3}, ys: []int{1, 22}},        // huge/large (FREE)
	{slots: []fonts.Slot{4, 3}, ys: []int{1, 22}},        // xlarge/large
	{slots: []fonts.Slot{6, 2, 2}, ys: []int{1, 18, 26}}, // huge/medium/medium (QUIET)
	{slots: []fonts.Slot{4, 2, 2}, ys: []int{2, 16, 25}}, // xlarge/medium/medium (KNOCK)
}

// fallbackRows positions mixed-size combinations with no tuned table.
var fallbackRows = []int{2, 12, 22}

// Engine positions lines using a swappable metrics table.
type Engine struct {
	table fonts.Table
}

// NewEngine returns a layout engine over the given metrics table.
func NewEngine(table fonts.Table) *Engine {
	return &Engine{table: table}
}

// Layout assigns a top-left Y to every input line. The output always has
// the same length and order as the input.
func (e *Engine) Layout(lines []markup.Line, displayHeight int) []PositionedLine {
	if len(lines) == 0 {
		return nil
	}

	ys := e.positions(lines, displayHeight)
	out := make([]PositionedLine, len(lines))
	for i, ln := range lines {
		out[i] = PositionedLine{Line: ln, Y: ys[i]}
	}
	return out
}

func (e *Engine) positions(lines []markup.Line, displayHeight int) []int {
	if len(lines) == 1 {
		m := e.table.Get(lines[0].Slot)
		return []int{(displayHeight - m.Height) / 2}
	}

	if uniform(lines) {
		return e.distribute(lines[0].Slot, len(lines), displayHeight)
	}

	if ys, ok := matchPattern(lines); ok {
		return ys
	}

	ys := make([]int, len(lines))
	copy(ys, fallbackRows[:len(lines)])
	return ys
}

// distribute spaces count same-slot lines evenly and centers the block.
func (e *Engine) distribute(slot fonts.Slot, count, displayHeight int) []int {
	m := e.table.Get(slot)
	total := m.Height*count + m.Spacing*(count-1)

	start := (displayHeight - total) / 2
	if start < 0 {
		start = 0
	}
	start -= m.Nudge
	if start < 0 {
		start = 0
	}

	ys := make([]int, count)
	for i := range ys {
		ys[i] = start + i*(m.Height+m.Spacing)
	}
	return ys
}

func uniform(lines []markup.Line) bool {
	for _, ln := range lines[1:] {
		if ln.Slot != lines[0].Slot {
			return false
		}
	}
	return true
}

func matchPattern(lines []markup.Line) ([]int, bool) {
	for _, p := range namedPatterns {
		if len(p.slots) != len(lines) {
			continue
		}
		match := true
		for i, s := range p.slots {
			if lines[i].Slot != s {
				match = false
				break
			}
		}
		if match {
			ys := make([]int, len(p.ys))
			copy(ys, p.ys)
			return ys, true
		}
	}
	return nil, false
}
