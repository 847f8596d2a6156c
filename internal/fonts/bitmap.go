package fonts

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// BitmapBackend renders text with tinyfont bitmap fonts. It measures
// exactly and draws baseline-anchored, so top-left Y coordinates from the
// layout engine are converted using the slot's ascent.
type BitmapBackend struct {
	table Table
	faces map[Slot]tinyfont.Fonter
}

// NewBitmapBackend builds the backend for the given metrics table using
// the packaged bitmap fonts.
func NewBitmapBackend(table Table) *BitmapBackend {
	return &BitmapBackend{
		table: table,
		faces: map[Slot]tinyfont.Fonter{
			Small:   &tinyfont.TomThumb,
			Medium:  &tinyfont.Picopixel,
			Large:   &proggy.TinySZ8pt7b,
			XLarge:  &freemono.Bold9pt7b,
			XXLarge: &freesans.Regular12pt7b,
			Huge:    &freesans.Bold18pt7b,
			Chunky:  &freemono.Regular9pt7b,
		},
	}
}

// Native reports whether slot is drawn by this backend.
func (b *BitmapBackend) Native(slot Slot) bool {
	return b.table.Get(slot).Native
}

func (b *BitmapBackend) face(slot Slot) tinyfont.Fonter {
	if f, ok := b.faces[slot]; ok {
		return f
	}
	return b.faces[Fallback]
}

// Measure returns the pixel width of s in the slot's font.
func (b *BitmapBackend) Measure(slot Slot, s string) int {
	_, w := tinyfont.LineWidth(b.face(slot), s)
	return int(w)
}

// Draw writes s onto d with its glyph-box top-left at (x, yTop).
func (b *BitmapBackend) Draw(d drivers.Displayer, slot Slot, x, yTop int, c color.RGBA, s string) {
	baseline := yTop + b.table.Get(slot).Ascent
	tinyfont.WriteLine(d, b.face(slot), int16(x), int16(baseline), s, c)
}
