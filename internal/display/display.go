// Package display provides the framebuffer the scenes draw into and the
// panel contract used to push finished frames to hardware.
//
// A Canvas implements tinygo.org/x/drivers Displayer so both text backends
// can draw straight onto it. Display() hands the finished frame to the
// attached Panel, mirroring the double-buffered swap of the physical
// matrix driver.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Panel receives finished frames. Implementations are thin: the real
// HUB75 driver binding, the desktop simulator window, or the null panel
// used when no hardware is present.
type Panel interface {
	// Size reports the panel dimensions in pixels.
	Size() (w, h int)
	// Swap presents one frame. pix is row-major, len == w*h.
	Swap(pix []color.RGBA) error
	// SetBrightness adjusts panel brightness, clamped to [0, 100].
	SetBrightness(percent int)
	// Close blanks the panel and releases it.
	Close() error
}

// Canvas is a draw target for one frame. It satisfies drivers.Displayer.
type Canvas struct {
	w, h  int
	pix   []color.RGBA
	panel Panel
}

var _ drivers.Displayer = (*Canvas)(nil)

// New returns a canvas bound to panel, sized to match it.
func New(panel Panel) *Canvas {
	w, h := panel.Size()
	c := NewOffscreen(w, h)
	c.panel = panel
	return c
}

// NewOffscreen returns an unbound canvas used for composing scenes that
// mix font backends before a single blit to the target.
func NewOffscreen(w, h int) *Canvas {
	return &Canvas{
		w:   w,
		h:   h,
		pix: make([]color.RGBA, w*h),
	}
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	return int16(c.w), int16(c.h)
}

// SetPixel implements drivers.Displayer. Out-of-bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= c.w || iy < 0 || iy >= c.h {
		return
	}
	c.pix[iy*c.w+ix] = col
}

// Pixel returns the current color at (x, y). Out-of-bounds reads return
// black.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return color.RGBA{A: 255}
	}
	return c.pix[y*c.w+x]
}

// Display implements drivers.Displayer by swapping the frame to the
// panel. Offscreen canvases make it a no-op.
func (c *Canvas) Display() error {
	if c.panel == nil {
		return nil
	}
	return c.panel.Swap(c.pix)
}

// SetBrightness forwards to the bound panel. No-op when offscreen.
func (c *Canvas) SetBrightness(percent int) {
	if c.panel != nil {
		c.panel.SetBrightness(percent)
	}
}

// Clear resets every pixel to black.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = color.RGBA{A: 255}
	}
}

// FillRect paints an axis-aligned rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	x0 := clamp(x, 0, c.w)
	y0 := clamp(y, 0, c.h)
	x1 := clamp(x+w, 0, c.w)
	y1 := clamp(y+h, 0, c.h)
	for py := y0; py < y1; py++ {
		row := py * c.w
		for px := x0; px < x1; px++ {
			c.pix[row+px] = col
		}
	}
}

// Blit copies src onto c at the origin, clipping to c's bounds. Scenes
// compose on an offscreen canvas and blit the finished frame in one pass.
func (c *Canvas) Blit(src *Canvas) {
	w, h := src.w, src.h
	if w > c.w {
		w = c.w
	}
	if h > c.h {
		h = c.h
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.pix[y*c.w+x] = src.pix[y*src.w+x]
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
