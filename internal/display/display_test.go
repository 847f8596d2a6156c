package display

import (
	"image/color"
	"io"
	"log/slog"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCanvasBoundsChecked(t *testing.T) {
	c := NewOffscreen(4, 4)
	red := color.RGBA{255, 0, 0, 255}

	// None of these may panic or wrap into the buffer.
	c.SetPixel(-1, 0, red)
	c.SetPixel(0, -1, red)
	c.SetPixel(4, 0, red)
	c.SetPixel(0, 4, red)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := c.Pixel(x, y); got.R != 0 {
				t.Errorf("pixel (%d,%d)=%v; want untouched", x, y, got)
			}
		}
	}

	c.SetPixel(2, 3, red)
	if got := c.Pixel(2, 3); got != red {
		t.Errorf("pixel (2,3)=%v; want red", got)
	}
}

func TestFillRectClips(t *testing.T) {
	c := NewOffscreen(4, 4)
	red := color.RGBA{255, 0, 0, 255}

	c.FillRect(2, 2, 10, 10, red)

	lit := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c.Pixel(x, y) == red {
				lit++
			}
		}
	}
	if lit != 4 {
		t.Errorf("lit %d pixels; want the clipped 2x2 corner", lit)
	}
}

func TestDisplaySwapsToPanel(t *testing.T) {
	panel := NewNullPanel(4, 4, discard())
	c := New(panel)
	red := color.RGBA{255, 0, 0, 255}

	c.SetPixel(1, 1, red)
	if err := c.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}

	if panel.Swaps() != 1 {
		t.Errorf("swaps=%d; want 1", panel.Swaps())
	}
	if got := panel.Frame()[1*4+1]; got != red {
		t.Errorf("panel pixel=%v; want red", got)
	}
}

func TestBlitClips(t *testing.T) {
	dst := NewOffscreen(2, 2)
	src := NewOffscreen(4, 4)
	red := color.RGBA{255, 0, 0, 255}
	src.SetPixel(0, 0, red)
	src.SetPixel(3, 3, red)

	dst.Blit(src)

	if got := dst.Pixel(0, 0); got != red {
		t.Errorf("pixel (0,0)=%v; want red", got)
	}
	if got := dst.Pixel(1, 1); got == red {
		t.Error("out-of-range source pixel leaked into dst")
	}
}
