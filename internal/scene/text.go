package scene

import (
	"strings"

	"matrixsign/internal/display"
	"matrixsign/internal/markup"
)

// RenderText lays out and draws parsed text lines.
//
// When every line uses a bitmap-native slot the text is drawn straight
// onto the target canvas. Mixed or non-native slots are composed on an
// offscreen canvas first and blitted once, so partially drawn frames are
// never presented. Both paths produce visually equivalent output.
func (r *Renderer) RenderText(lines []markup.Line) {
	r.guard("text", func() { r.renderText(lines) })
}

func (r *Renderer) renderText(lines []markup.Line) {
	if len(lines) == 0 {
		r.Clear()
		return
	}

	pal := r.pal()
	positioned := r.engine.Layout(lines, r.height)

	allNative := true
	for _, pl := range positioned {
		if !r.table.Get(pl.Slot).Native {
			allNative = false
			break
		}
	}

	var target *display.Canvas
	if allNative {
		r.canvas.Clear()
		target = r.canvas
	} else {
		target = display.NewOffscreen(r.width, r.height)
	}

	for _, pl := range positioned {
		if strings.TrimSpace(pl.Text) == "" {
			continue
		}
		r.drawCentered(target, pl.Slot, pl.Y, pal.Color(pl.Color), pl.Text)
	}

	if !allNative {
		r.canvas.Clear()
		r.canvas.Blit(target)
	}
	_ = r.canvas.Display()
}
