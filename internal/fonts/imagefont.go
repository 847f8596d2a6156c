package fonts

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
)

// ImageBackend renders text through golang.org/x/image font faces. It is
// the fallback path for slots without a native bitmap font; faces are
// approximations of the slot heights, which is acceptable because the
// layout engine positions lines from the metrics table, not from the face.
type ImageBackend struct {
	table Table
	faces map[Slot]font.Face
}

// NewImageBackend builds the backend for the given metrics table.
func NewImageBackend(table Table) *ImageBackend {
	return &ImageBackend{
		table: table,
		faces: map[Slot]font.Face{
			Small:   basicfont.Face7x13,
			Medium:  basicfont.Face7x13,
			Large:   inconsolata.Regular8x16,
			XLarge:  inconsolata.Bold8x16,
			XXLarge: inconsolata.Bold8x16,
			Huge:    inconsolata.Bold8x16,
			Chunky:  inconsolata.Regular8x16,
		},
	}
}

func (b *ImageBackend) face(slot Slot) font.Face {
	if f, ok := b.faces[slot]; ok {
		return f
	}
	return b.faces[Fallback]
}

// Measure returns the advance width of s in the slot's face.
func (b *ImageBackend) Measure(slot Slot, s string) int {
	return font.MeasureString(b.face(slot), s).Round()
}

// Draw renders s with the glyph-box top-left at (x, yTop). The face draws
// baseline-relative, so yTop is adjusted by the face ascent before the
// pixels are copied onto d.
func (b *ImageBackend) Draw(d drivers.Displayer, slot Slot, x, yTop int, c color.RGBA, s string) {
	face := b.face(slot)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	height := ascent + metrics.Descent.Round()
	width := b.Measure(slot, s)
	if width <= 0 || height <= 0 {
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(s)

	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			r, g, bb, a := img.At(ix, iy).RGBA()
			if a == 0 {
				continue
			}
			d.SetPixel(int16(x+ix), int16(yTop+iy), color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(bb >> 8),
				A: uint8(a >> 8),
			})
		}
	}
}
