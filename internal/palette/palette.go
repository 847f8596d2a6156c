// Package palette holds the fixed 28-color table shared by every scene.
// Two variants exist: the full-brightness day palette and a night palette
// derived from it by integer-dividing each channel by a fixed dimming
// factor, so colors stay in proportion when the panel is dimmed.
package palette

import "image/color"

// Index selects a color from the palette. Indices outside the table
// resolve to white rather than failing.
type Index int

// Well-known indices used by presets and weather coloring.
const (
	Black     Index = 0
	White     Index = 1
	Red       Index = 2
	Green     Index = 3
	Blue      Index = 4
	Yellow    Index = 5
	Magenta   Index = 6
	Cyan      Index = 7
	OrangeRed Index = 8
	Purple    Index = 9
	Khaki     Index = 22
)

// Size is the number of valid palette entries. Valid indices are
// [0, Size-1].
const Size = 28

// dimDivisor is the per-channel divisor applied to build the night palette.
const dimDivisor = 4

// Palette maps color indices to RGB triples.
type Palette [Size]color.RGBA

var day = Palette{
	{0, 0, 0, 255},       // 0 black
	{255, 255, 255, 255}, // 1 white
	{255, 0, 0, 255},     // 2 red
	{0, 255, 0, 255},     // 3 green
	{0, 0, 255, 255},     // 4 blue
	{255, 128, 0, 255},   // 5 yellow/orange
	{255, 0, 255, 255},   // 6 magenta
	{0, 255, 255, 255},   // 7 cyan
	{255, 69, 0, 255},    // 8 orange red
	{128, 0, 255, 255},   // 9 purple
	{255, 105, 180, 255}, // 10 hot pink
	{50, 205, 50, 255},   // 11 lime green
	{255, 20, 147, 255},  // 12 deep pink
	{0, 191, 255, 255},   // 13 deep sky blue
	{255, 215, 0, 255},   // 14 gold
	{255, 69, 0, 255},    // 15 orange red
	{147, 112, 219, 255}, // 16 medium purple
	{0, 250, 154, 255},   // 17 medium spring green
	{255, 99, 71, 255},   // 18 tomato
	{64, 224, 208, 255},  // 19 turquoise
	{218, 112, 214, 255}, // 20 orchid
	{152, 251, 152, 255}, // 21 pale green
	{240, 230, 140, 255}, // 22 khaki
	{221, 160, 221, 255}, // 23 plum
	{135, 206, 235, 255}, // 24 sky blue
	{245, 222, 179, 255}, // 25 wheat
	{255, 160, 122, 255}, // 26 light salmon
	{32, 178, 170, 255},  // 27 light sea green
}

var night = dim(day)

func dim(p Palette) Palette {
	var out Palette
	for i, c := range p {
		out[i] = color.RGBA{
			R: c.R / dimDivisor,
			G: c.G / dimDivisor,
			B: c.B / dimDivisor,
			A: 255,
		}
	}
	return out
}

// Day returns the full-brightness palette.
func Day() Palette { return day }

// Night returns the dimmed palette.
func Night() Palette { return night }

// Active returns the palette matching the given mode.
func Active(isNight bool) Palette {
	if isNight {
		return night
	}
	return day
}

// Color resolves idx to an RGB triple. Out-of-range indices fall back
// to white so a bad command never blanks a line.
func (p Palette) Color(idx Index) color.RGBA {
	if idx < 0 || int(idx) >= len(p) {
		return color.RGBA{255, 255, 255, 255}
	}
	return p[idx]
}
