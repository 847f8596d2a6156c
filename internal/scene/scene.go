// Package scene composes full frames for the matrix: text scenes, the
// weather scene, and the forecast carousel. Scenes draw through the layout
// engine and the active font backend onto a display canvas; nothing here
// blocks on I/O and no failure escapes to the scheduler loop.
package scene

import (
	"image/color"
	"log/slog"
	"strings"

	"tinygo.org/x/drivers"

	"matrixsign/internal/display"
	"matrixsign/internal/fonts"
	"matrixsign/internal/layout"
	"matrixsign/internal/markup"
	"matrixsign/internal/palette"
)

// textBackend is the measure/draw contract both font backends satisfy.
type textBackend interface {
	Measure(slot fonts.Slot, s string) int
	Draw(d drivers.Displayer, slot fonts.Slot, x, yTop int, c color.RGBA, s string)
}

// PaletteFunc returns the currently active palette. Day/night selection
// belongs to its owner component, not to the renderer.
type PaletteFunc func() palette.Palette

// Renderer draws scenes onto a canvas. It owns no state beyond the frame
// being composed.
type Renderer struct {
	canvas *display.Canvas
	table  fonts.Table
	bitmap *fonts.BitmapBackend
	imagef *fonts.ImageBackend
	engine *layout.Engine
	icons  *IconSet
	pal    PaletteFunc
	night  func() bool
	logger *slog.Logger

	width  int
	height int
}

// New returns a renderer bound to canvas. iconDir may be empty; icons are
// then skipped.
func New(canvas *display.Canvas, table fonts.Table, iconDir string, pal PaletteFunc, night func() bool, logger *slog.Logger) *Renderer {
	w, h := canvas.Size()
	return &Renderer{
		canvas: canvas,
		table:  table,
		bitmap: fonts.NewBitmapBackend(table),
		imagef: fonts.NewImageBackend(table),
		engine: layout.NewEngine(table),
		icons:  NewIconSet(iconDir, logger),
		pal:    pal,
		night:  night,
		logger: logger,
		width:  int(w),
		height: int(h),
	}
}

// backendFor picks the backend a slot is drawn with.
func (r *Renderer) backendFor(slot fonts.Slot) textBackend {
	if r.table.Get(slot).Native {
		return r.bitmap
	}
	return r.imagef
}

// guard runs a scene composition and converts any panic into the fallback
// error scene. The physical display must always show something.
func (r *Renderer) guard(scene string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("scene render failed",
				slog.String("scene", scene),
				slog.Any("reason", rec),
			)
			r.renderFallback()
		}
	}()
	fn()
}

// renderFallback draws the two-line error scene with no layout machinery
// in the way. If even this fails the frame is left blank.
func (r *Renderer) renderFallback() {
	defer func() { _ = recover() }()

	pal := r.pal()
	r.canvas.Clear()
	r.drawCentered(r.canvas, fonts.Large, 6, pal.Color(palette.Red), "Error")
	r.drawCentered(r.canvas, fonts.Small, 20, pal.Color(palette.White), "see log")
	_ = r.canvas.Display()
}

// Clear blanks the display.
func (r *Renderer) Clear() {
	r.canvas.Clear()
	_ = r.canvas.Display()
}

// drawCentered measures s and draws it horizontally centered at yTop.
func (r *Renderer) drawCentered(target drivers.Displayer, slot fonts.Slot, yTop int, c color.RGBA, s string) {
	be := r.backendFor(slot)
	x := (r.width - be.Measure(slot, s)) / 2
	// The ON-CALL glyph run sits visually left of center; shift it 1px.
	if s == "ON-CALL" {
		x++
	}
	be.Draw(target, slot, x, yTop, c, s)
}

// presets are the pre-authored status screens, keyed by command word.
var presets = map[string][]markup.Line{
	"ON-CALL": {
		{Color: palette.Red, Slot: fonts.XLarge, Text: "ON-CALL"},
		{Color: palette.White, Slot: fonts.Large, Text: "Urgent"},
		{Color: palette.White, Slot: fonts.Medium, Text: "Needs Only"},
	},
	"FREE": {
		{Color: palette.Green, Slot: fonts.Huge, Text: "FREE"},
		{Color: palette.White, Slot: fonts.Large, Text: "But Knock"},
	},
	"BUSY": {
		{Color: palette.Red, Slot: fonts.Large, Text: "BUSY"},
		{Color: palette.Red, Slot: fonts.Large, Text: "DO NOT"},
		{Color: palette.Red, Slot: fonts.Large, Text: "ENTER"},
	},
	"QUIET": {
		{Color: palette.Purple, Slot: fonts.Huge, Text: "QUIET"},
		{Color: palette.Khaki, Slot: fonts.Medium, Text: "MEETING IN"},
		{Color: palette.Khaki, Slot: fonts.Medium, Text: "PROGRESS"},
	},
	"KNOCK": {
		{Color: palette.Purple, Slot: fonts.XLarge, Text: "KNOCK"},
		{Color: palette.Khaki, Slot: fonts.Medium, Text: "MEETING IN"},
		{Color: palette.Khaki, Slot: fonts.Medium, Text: "PROGRESS"},
	},
}

// PresetNames lists the known preset commands.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	return names
}

// IsPreset reports whether name maps to a preset.
func IsPreset(name string) bool {
	_, ok := presets[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// PresetLines returns the line sequence of a preset, for tests and the
// status API.
func PresetLines(name string) ([]markup.Line, bool) {
	lines, ok := presets[strings.ToUpper(strings.TrimSpace(name))]
	return lines, ok
}

// RenderPreset shows a named preset. Unknown names degrade to a generic
// message instead of failing.
func (r *Renderer) RenderPreset(name string) {
	lines, ok := presets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		r.logger.Warn("unknown preset", slog.String("name", name))
		r.RenderMessage("Unknown", "Preset")
		return
	}
	r.RenderText(lines)
}

// RenderMessage shows a simple one- or two-line message in the default
// style.
func (r *Renderer) RenderMessage(line1 string, line2 ...string) {
	lines := []markup.Line{{Color: palette.White, Slot: fonts.Medium, Text: line1}}
	for _, l := range line2 {
		if l == "" {
			continue
		}
		lines = append(lines, markup.Line{Color: palette.White, Slot: fonts.Medium, Text: l})
	}
	r.RenderText(lines)
}
